package spreadsheet

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

func xlsxFile(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReader_ReadRecords_XLSX(t *testing.T) {
	body := xlsxFile(t, [][]interface{}{
		{"Date", " Customer  Name ", "Direct Hire Gross", "Boat"},
		{"Sat 8/4", "Jane Doe", "$1,200.50", "Aurora"},
		{"", "", "", ""},
		{"Sun 8/5", "", "900", "Aurora"},
	})

	records, err := NewReader(0).ReadRecords("bookings_2023.XLSX", body)
	require.NoError(t, err)

	assert.Equal(t, []domain.LegacyCharterRecord{
		{"date": "Sat 8/4", "customer_name": "Jane Doe", "direct_hire_gross": "$1,200.50", "boat": "Aurora"},
		{"date": "Sun 8/5", "direct_hire_gross": "900", "boat": "Aurora"},
	}, records)
}

func TestReader_ReadRecords_XLSXDateCells(t *testing.T) {
	body := xlsxFile(t, [][]interface{}{
		{"Start Date", "Net Total"},
		{time.Date(2023, time.August, 4, 0, 0, 0, 0, time.UTC), 1200.5},
	})

	records, err := NewReader(0).ReadRecords("bookings_2024.xlsx", body)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "1200.5", records[0]["net_total"])

	raw, ok := records[0]["start_date"].(string)
	require.True(t, ok)
	serial, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err, "date cell must be read as a serial number, got %q", raw)

	parsed, err := excelize.ExcelDateToTime(serial, false)
	require.NoError(t, err)
	assert.Equal(t, "2023-08-04", parsed.Format("2006-01-02"))
}

func TestReader_ReadRecords_Errors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewReader(0).ReadRecords("bookings.csv", strings.NewReader("a,b"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := NewReader(0).ReadRecords("bookings.xlsx", strings.NewReader("definitely not a zip"))
		assert.ErrorIs(t, err, ErrRead)
	})

	t.Run("empty sheet", func(t *testing.T) {
		_, err := NewReader(0).ReadRecords("bookings.xlsx", xlsxFile(t, nil))
		assert.ErrorIs(t, err, ErrEmptySheet)
	})

	t.Run("row limit", func(t *testing.T) {
		body := xlsxFile(t, [][]interface{}{
			{"date"},
			{"Sat 8/4"},
			{"Sun 8/5"},
			{"Mon 8/6"},
		})
		_, err := NewReader(2).ReadRecords("bookings.xlsx", body)
		assert.ErrorIs(t, err, ErrTooManyRows)
	})
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "customer_name", NormalizeHeader("  Customer   Name "))
	assert.Equal(t, "clickboat_gross_amount", NormalizeHeader("Clickboat Gross Amount"))
	assert.Equal(t, "", NormalizeHeader("   "))
}
