package xlsxwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/bakery-order-report/internal/report"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

func sampleSheets() []report.Sheet {
	return []report.Sheet{
		{
			Name: "所有訂單",
			Rows: [][]types.Cell{
				{types.Text("選項"), types.Text("總額"), types.Text("IG 網址")},
				{types.Text("待匯款"), types.Number(decimal.NewFromInt(60)), types.Text("https://www.instagram.com/abc")},
				{types.Text("總計"), types.Number(decimal.NewFromInt(60)), types.Empty()},
			},
			Orders: 1,
		},
		{
			Name: "12_25",
			Rows: [][]types.Cell{{types.Text("選項")}},
		},
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "BakeryReport_2024-12-20.xlsx")

	require.NoError(t, WriteFile(path, sampleSheets()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"所有訂單", "12_25"}, f.GetSheetList())

	rows, err := f.GetRows("所有訂單")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"待匯款", "60", "https://www.instagram.com/abc"}, rows[1])
	assert.Equal(t, []string{"總計", "60"}, rows[2])

	cellType, err := f.GetCellType("所有訂單", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
}

func TestWriteFileFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")

	sheets := []report.Sheet{
		{Name: "A", Rows: [][]types.Cell{{types.Text("x")}}},
		{Name: "bad[name]", Rows: [][]types.Cell{{types.Text("y")}}},
	}

	err := WriteFile(path, sheets)
	assert.ErrorIs(t, err, ErrExportFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteNoSheets(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "report.xlsx"), nil)
	assert.ErrorIs(t, err, ErrExportFailed)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "report.xlsx"), sampleSheets())
	assert.ErrorIs(t, err, ErrExportFailed)
}
