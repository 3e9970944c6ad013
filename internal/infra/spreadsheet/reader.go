package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// DefaultMaxRows лимит строк данных в одной выгрузке
const DefaultMaxRows = 20000

// Reader читает выгрузки исторических бронирований (.xlsx, .xls).
// Используется только первый лист, первая строка - заголовок.
type Reader struct {
	maxRows int
}

// NewReader создает новый экземпляр Reader
func NewReader(maxRows int) *Reader {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Reader{maxRows: maxRows}
}

// ReadRecords читает файл и превращает строки в записи: ключи - нормализованные заголовки.
// Пустые ячейки в запись не попадают, полностью пустые строки пропускаются.
func (r *Reader) ReadRecords(fileName string, body io.Reader) ([]domain.LegacyCharterRecord, error) {
	rows, err := r.readRows(fileName, body)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(rows[0]))
	hasHeader := false
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
		if headers[i] != "" {
			hasHeader = true
		}
	}
	if !hasHeader {
		return nil, ErrEmptySheet
	}

	if len(rows)-1 > r.maxRows {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", ErrTooManyRows, len(rows)-1, r.maxRows)
	}

	records := make([]domain.LegacyCharterRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(domain.LegacyCharterRecord, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if value := cellValue(row, i); value != "" {
				record[header] = value
			}
		}
		if len(record) == 0 {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *Reader) readRows(fileName string, body io.Reader) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	if ext == ".xls" {
		// заголовок + maxRows строк данных + одна строка для проверки лимита
		return readXLS(data, r.maxRows+1)
	}
	return readXLSX(data)
}

func readXLS(data []byte, lastRow int) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if workbook.NumSheets() == 0 {
		return nil, ErrNoWorksheet
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoWorksheet
	}

	last := int(sheet.MaxRow)
	if last > lastRow {
		last = lastRow
	}

	rows := make([][]string, 0, last+1)
	for i := 0; i <= last; i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}

		cells := make([]string, row.LastCol()+1)
		for col := row.FirstCol(); col <= row.LastCol(); col++ {
			cells[col] = row.Col(col)
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}

	// Даты читаются серийными номерами, без формата ячейки
	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	return rows, nil
}

// NormalizeHeader приводит заголовок к ключу записи: "Customer Name" -> "customer_name"
func NormalizeHeader(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(header)), "_")
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
