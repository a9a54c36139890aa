package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/bakery-order-report/internal/report"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
	"github.com/ginjaninja78/bakery-order-report/internal/xlsxwriter"
	"github.com/ginjaninja78/bakery-order-report/pkg/utils"
)

func sampleTable() *types.RawTable {
	return types.NewRawTable(
		[]string{"IG 帳號", "日期", "取貨方式", "餅$30"},
		[][]string{
			{"abc", "12/24", "面交", "2"},
			{"def", "12/25", "宅配", "1"},
		},
	)
}

func TestNewInfersConfiguration(t *testing.T) {
	s := New(sampleTable(), nil, nil)

	assert.Equal(t, "IG 帳號", s.Mapping().IdentityColumn)
	assert.Equal(t, "日期", s.Mapping().DateColumn)
	assert.Len(t, s.Prices(), 4)
	assert.Equal(t, []string{"12/24", "12/25"}, s.Dates())
	assert.Nil(t, s.Results())
	assert.Empty(t, s.Check())
}

func TestStepsAreImmutable(t *testing.T) {
	base := New(sampleTable(), nil, nil).Run()
	require.NotNil(t, base.Results())
	require.NotEmpty(t, base.RunID())

	grouped := base.WithGroups([]types.GroupDefinition{{Name: "平安夜", DateValues: []string{"12/24"}}})
	assert.Nil(t, grouped.Results(), "changing configuration drops results")
	assert.NotNil(t, base.Results())
	assert.Empty(t, base.Groups())
	assert.Equal(t, []string{"12/25"}, grouped.UnassignedDates())

	prices := base.Prices()
	prices[3].UnitPrice = decimal.NewFromInt(100)
	assert.True(t, decimal.NewFromInt(30).Equal(base.Prices()[3].UnitPrice), "Prices returns a copy")

	run := grouped.WithPrices(prices).Run()
	assert.True(t, decimal.NewFromInt(200).Equal(run.Results().All[0].TotalAmount))
	assert.Len(t, run.Results().Group("平安夜"), 1)
	assert.NotEqual(t, base.RunID(), run.RunID())
}

func TestWithMapping(t *testing.T) {
	s := New(sampleTable(), nil, nil)
	mapping := s.Mapping()
	mapping.FulfillmentColumn = "missing"

	run := s.WithMapping(mapping).Run()
	assert.Empty(t, run.Results().Pickup)
	assert.Len(t, run.Check(), 1)
}

func TestImportPrices(t *testing.T) {
	s := New(sampleTable(), nil, nil)

	imported, err := s.ImportPrices([]byte(`[{"itemName": "餅$30", "price": 40, "displayName": "餅"}]`))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(imported.Prices()[3].UnitPrice))
	assert.Equal(t, "餅", imported.Prices()[3].DisplayLabel)

	_, err = s.ImportPrices([]byte(`{"bad": true}`))
	assert.Error(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(s.Prices()[3].UnitPrice))
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	files := utils.NewFileManager(dir)
	files.Now = func() time.Time { return time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC) }
	exporter := NewExporter(files, "BakeryReport_{date}.xlsx", report.DefaultLabels(), nil)

	s := New(sampleTable(), nil, nil)
	_, err := exporter.Export(s)
	assert.ErrorIs(t, err, ErrNotRun)
	assert.False(t, exporter.InProgress())

	path, err := exporter.Export(s.Run())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "BakeryReport_2024-12-20.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"所有訂單", "寄送訂單", "面交訂單"}, f.GetSheetList())
}

func TestExportGuard(t *testing.T) {
	files := utils.NewFileManager(t.TempDir())
	exporter := NewExporter(files, "report.xlsx", report.DefaultLabels(), nil)

	started := make(chan struct{})
	release := make(chan struct{})
	exporter.write = func(string, []report.Sheet) error {
		close(started)
		<-release
		return nil
	}

	s := New(sampleTable(), nil, nil).Run()
	done := make(chan error)
	go func() {
		_, err := exporter.Export(s)
		done <- err
	}()

	<-started
	assert.True(t, exporter.InProgress())
	_, err := exporter.Export(s)
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, exporter.InProgress())
}

func TestExportFailureResetsGuard(t *testing.T) {
	files := utils.NewFileManager(t.TempDir())
	exporter := NewExporter(files, "report.xlsx", report.DefaultLabels(), nil)

	cause := errors.New("disk full")
	exporter.write = func(string, []report.Sheet) error {
		return errors.Join(xlsxwriter.ErrExportFailed, cause)
	}

	s := New(sampleTable(), nil, nil).Run()
	_, err := exporter.Export(s)
	assert.ErrorIs(t, err, xlsxwriter.ErrExportFailed)
	assert.False(t, exporter.InProgress())

	exporter.write = xlsxwriter.WriteFile
	_, err = exporter.Export(s)
	assert.NoError(t, err, "a failed export can be retried")
}
