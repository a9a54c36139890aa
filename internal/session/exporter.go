package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ginjaninja78/bakery-order-report/internal/report"
	"github.com/ginjaninja78/bakery-order-report/internal/xlsxwriter"
	"github.com/ginjaninja78/bakery-order-report/pkg/utils"
)

// ErrExportInProgress is returned when an export is requested while another
// one has not finished.
var ErrExportInProgress = errors.New("export already in progress")

// Exporter writes the report of a session. Only one export runs at a time;
// the guard is released whether the export succeeds or fails, so a failed
// export can simply be retried.
type Exporter struct {
	files      *utils.FileManager
	fileFormat string
	labels     report.Labels
	logger     *slog.Logger

	inProgress atomic.Bool
	write      func(path string, sheets []report.Sheet) error
}

// NewExporter creates an Exporter writing files named by fileFormat (see
// utils.GenerateOutputFileName) into the file manager's output directory.
func NewExporter(files *utils.FileManager, fileFormat string, labels report.Labels, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		files:      files,
		fileFormat: fileFormat,
		labels:     labels,
		logger:     logger.With(slog.String("component", "exporter")),
		write:      xlsxwriter.WriteFile,
	}
}

// InProgress reports whether an export is running.
func (e *Exporter) InProgress() bool {
	return e.inProgress.Load()
}

// Export serializes the session's results and writes the workbook.
//
// RETURNS:
//   - The path of the written file.
//   - ErrExportInProgress, ErrNotRun, or an error wrapping
//     xlsxwriter.ErrExportFailed.
func (e *Exporter) Export(s *Session) (string, error) {
	if !e.inProgress.CompareAndSwap(false, true) {
		return "", ErrExportInProgress
	}
	defer e.inProgress.Store(false)

	if s.results == nil {
		return "", ErrNotRun
	}

	if err := e.files.EnsureOutputDir(); err != nil {
		return "", fmt.Errorf("%w: %w", xlsxwriter.ErrExportFailed, err)
	}

	sheets := report.SerializeWithLabels(s.results, s.table, s.prices, e.labels)
	path := e.files.OutputPath(e.fileFormat, nil)

	if err := e.write(path, sheets); err != nil {
		e.logger.Error("export failed", slog.String("run_id", s.runID), slog.Any("error", err))
		return "", err
	}

	e.logger.Info("report written",
		slog.String("run_id", s.runID),
		slog.String("path", path),
		slog.Int("sheets", len(sheets)))
	return path, nil
}
