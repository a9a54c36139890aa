package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ginjaninja78/bakery-order-report/internal/config"
	"github.com/ginjaninja78/bakery-order-report/internal/converter"
	"github.com/ginjaninja78/bakery-order-report/internal/grouping"
	"github.com/ginjaninja78/bakery-order-report/internal/report"
	"github.com/ginjaninja78/bakery-order-report/internal/session"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// loadOptions are the inputs shared by the commands that read an upload.
type loadOptions struct {
	input       string
	jobFile     string
	pricesFile  string
	groupByDate bool
}

// loadSession reads the upload and applies, in order: the job's mapping
// overrides, its price overrides, a saved price file, and the groups.
func loadSession(opts loadOptions) (*session.Session, error) {
	if opts.input == "" {
		return nil, errors.New("--input is required")
	}

	job, err := config.LoadJobConfig(opts.jobFile)
	if err != nil {
		return nil, err
	}

	table, err := converter.LoadTable(opts.input, job.Sheet, mainConfig.CSV)
	if err != nil {
		return nil, err
	}
	log.Info("upload loaded",
		slog.String("input", opts.input),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Rows)))

	engine := converter.New(engineOptions(mainConfig), log)
	s := session.New(table, engine, log)
	s = s.WithMapping(job.ApplyMapping(s.Mapping()))
	s = s.WithPrices(job.ApplyPrices(s.Prices()))

	if opts.pricesFile != "" {
		data, err := os.ReadFile(opts.pricesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read price file: %w", err)
		}
		if s, err = s.ImportPrices(data); err != nil {
			return nil, err
		}
	}

	groups := job.Groups
	if len(groups) == 0 && (opts.groupByDate || job.GroupByDate) {
		groups = grouping.PerDate(s.Dates())
	}
	s = s.WithGroups(groups)

	return s, nil
}

// engineOptions maps the main configuration onto the engine.
func engineOptions(cfg *config.MainConfig) converter.Options {
	return converter.Options{
		IdentityBaseURL: cfg.IdentityBaseURL,
		InitialStatus:   types.StatusPendingPayment,
		StatusLabel:     cfg.Labels.Status,
		TotalLabel:      cfg.Labels.Total,
		IdentityLabel:   cfg.Labels.Identity,
	}
}

// reportLabels maps the main configuration onto the serializer.
func reportLabels(cfg *config.MainConfig) report.Labels {
	return report.Labels{
		AllSheet:      cfg.Labels.AllSheet,
		ShippingSheet: cfg.Labels.ShippingSheet,
		PickupSheet:   cfg.Labels.PickupSheet,
		Summary:       cfg.Labels.Summary,
	}
}
