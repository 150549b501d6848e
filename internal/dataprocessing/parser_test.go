package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseTabularCSV(t *testing.T) {
	data := []byte("Merchant ID,Amount,State\nM-1,10,Remitted\nM-2,\"1,250\",Rejected\n")

	rows, err := ParseTabular("export.csv", data)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Merchant ID", "Amount", "State"}, rows[0])
	assert.Equal(t, "1,250", rows[2][1], "quoted separators survive")
}

func TestParseTabularCSVRaggedRows(t *testing.T) {
	data := []byte("Merchant ID,Amount,State\nM-1,10\nM-2,20,Remitted,extra\n")

	rows, err := ParseTabular("ragged.csv", data)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestParseTabularXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Merchant ID", "Amount", "State"},
		{"M-1", 100.5, "Remitted"},
	})

	rows, err := ParseTabular("export.xlsx", data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "M-1", rows[1][0])
}

func TestParseTabularUnknownExtensionUsesWorkbookParser(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Merchant ID"},
		{"M-1"},
	})

	rows, err := ParseTabular("export.xlsm", data)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseTabularErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{name: "corrupt workbook", filename: "bad.xlsx", data: []byte("not a zip archive")},
		{name: "corrupt legacy workbook", filename: "bad.xls", data: []byte("not ole2")},
		{name: "empty csv", filename: "empty.csv", data: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTabular(tt.filename, tt.data)
			assert.Error(t, err)
		})
	}
}
