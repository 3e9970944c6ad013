package spreadsheet

import "errors"

var (
	// ErrUnsupportedFormat возвращается для файлов, кроме .xlsx и .xls
	ErrUnsupportedFormat = errors.New("spreadsheet: unsupported file format")

	// ErrNoWorksheet возвращается, когда в книге нет листов
	ErrNoWorksheet = errors.New("spreadsheet: no worksheet found")

	// ErrEmptySheet возвращается, когда на листе нет строки заголовка
	ErrEmptySheet = errors.New("spreadsheet: worksheet is empty")

	// ErrTooManyRows возвращается, когда выгрузка превышает лимит строк
	ErrTooManyRows = errors.New("spreadsheet: too many rows")

	// ErrRead возвращается при ошибке чтения файла
	ErrRead = errors.New("spreadsheet: failed to read file")
)
