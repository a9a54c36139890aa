package xlsxparser

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates a workbook whose first sheet holds rows, starting at A1.
func writeWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}
	return f
}

func TestParseFileReadsFirstSheet(t *testing.T) {
	f := writeWorkbook(t, [][]interface{}{
		{"IG 帳號", "日期", "取貨方式", "餅$30"},
		{"abc", "2024-01-01", "面交", 2},
		{},
		{"def", "2024-01-02", "宅配", 1},
	})
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Other", "A1", "ignored"))

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "orders.xlsx", table.Source)
	assert.Equal(t, []string{"IG 帳號", "日期", "取貨方式", "餅$30"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "abc", table.Rows[0].At(0).String())
	assert.Equal(t, "2", table.Rows[0].At(3).String())
	assert.Equal(t, "def", table.Rows[1].At(0).String())
}

func TestParseSheetFile(t *testing.T) {
	f := writeWorkbook(t, [][]interface{}{{"A"}, {"1"}})
	_, err := f.NewSheet("訂單")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("訂單", "A1", "IG"))
	require.NoError(t, f.SetCellValue("訂單", "A2", "abc"))

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ParseSheetFile(path, "訂單")
	require.NoError(t, err)
	assert.Equal(t, []string{"IG"}, table.Headers)
	assert.Equal(t, "abc", table.Rows[0].At(0).String())

	_, err = ParseSheetFile(path, "missing")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	names, err := SheetNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "訂單"}, names)
}

func TestParseFromReader(t *testing.T) {
	f := writeWorkbook(t, [][]interface{}{
		{"IG", "", "備註"},
		{"abc", "x", ""},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"IG", "", "備註"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.True(t, table.Rows[0].At(2).IsEmpty())
}

func TestParseEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
