package normalize_bookings

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// isoLayouts форматы дат ISO-схем
var isoLayouts = []string{
	domain.DateFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Серийные номера Excel в этом диапазоне - даты 1954..2119, а не годы или суммы
const (
	minExcelDateSerial = 20000
	maxExcelDateSerial = 80000
)

// lookup возвращает значение первого кандидата, который есть в записи и не пуст
func lookup(record domain.LegacyCharterRecord, fields []string) (any, bool) {
	for _, field := range fields {
		v, ok := record[field]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// lookupString первый непустой кандидат в виде строки
func lookupString(record domain.LegacyCharterRecord, fields []string) string {
	v, ok := lookup(record, fields)
	if !ok {
		return ""
	}
	return strings.TrimSpace(toString(v))
}

// lookupMoney первый кандидат, который читается как конечное число
func lookupMoney(record domain.LegacyCharterRecord, fields []string) float64 {
	for _, field := range fields {
		if amount, ok := toMoney(record[field]); ok {
			return roundCents(amount)
		}
	}
	return 0
}

// lookupInt первый кандидат, который читается как неотрицательное число
func lookupInt(record domain.LegacyCharterRecord, fields []string) int {
	for _, field := range fields {
		if n, ok := toMoney(record[field]); ok && n >= 0 {
			return int(n)
		}
	}
	return 0
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(domain.DateFormat)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// toMoney приводит значение к числу: числа, json.Number, строки вида "$1,200.50"
func toMoney(v any) (float64, bool) {
	var f float64

	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(t))
		if cleaned == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}

// parseISODate разбирает дату ISO-схемы. Время суток отбрасывается.
func parseISODate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(t.Year(), t.Month(), t.Day()), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range isoLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return dateOnly(parsed.Year(), parsed.Month(), parsed.Day()), true
			}
		}
		// Выгрузки xls отдают даты серийными номерами
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return excelSerialDate(serial)
		}
	case float64:
		return excelSerialDate(t)
	case json.Number:
		if serial, err := t.Float64(); err == nil {
			return excelSerialDate(serial)
		}
	}
	return time.Time{}, false
}

func excelSerialDate(serial float64) (time.Time, bool) {
	if serial < minExcelDateSerial || serial > maxExcelDateSerial {
		return time.Time{}, false
	}
	parsed, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return dateOnly(parsed.Year(), parsed.Month(), parsed.Day()), true
}

// parseDayNameMonthDay разбирает "Sat 8/4": последний токен, месяц/день, год источника
func parseDayNameMonthDay(v any, year int) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}

	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return time.Time{}, false
	}

	parts := strings.Split(tokens[len(tokens)-1], "/")
	if len(parts) != 2 {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	date := dateOnly(year, time.Month(month), day)
	// 2/30 и т.п.: time.Date переносит на следующий месяц
	if date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}

	return date, true
}

// splitName делит имя по первому пробелу: "Mary Ann Smith" -> "Mary", "Ann Smith"
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}

	idx := strings.IndexFunc(name, isSpace)
	if idx < 0 {
		return name, ""
	}

	return name[:idx], strings.TrimSpace(name[idx:])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func dateOnly(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
