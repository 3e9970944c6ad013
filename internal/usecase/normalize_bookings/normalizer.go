package normalize_bookings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Годы, представимые датой YYYY-MM-DD
const (
	minISOYear = 1
	maxISOYear = 9999
)

// bookingNamespace пространство имен UUIDv5 для записей без собственного ID
var bookingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("smc-charter-service/canonical-booking"))

// Normalizer приводит записи разных лет к CanonicalBooking по таблице вариантов схем.
// Не выполняет I/O и безопасен для конкурентного использования.
type Normalizer struct {
	variants map[domain.SchemaVariant]FieldMapping
	years    map[int]domain.SchemaVariant
}

// NewNormalizer создает нормализатор. Некорректная таблица - ошибка конфигурации.
func NewNormalizer(variants map[domain.SchemaVariant]FieldMapping, years map[int]domain.SchemaVariant) (*Normalizer, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: schema variant table is empty", domain.ErrConfiguration)
	}

	v := make(map[domain.SchemaVariant]FieldMapping, len(variants))
	for name, mapping := range variants {
		if err := mapping.Validate(); err != nil {
			return nil, fmt.Errorf("%w: schema variant %q: %v", domain.ErrConfiguration, name, err)
		}
		v[name] = mapping
	}

	y := make(map[int]domain.SchemaVariant, len(years))
	for year, name := range years {
		if _, ok := v[name]; !ok {
			return nil, fmt.Errorf("%w: year %d refers to unknown schema variant %q", domain.ErrConfiguration, year, name)
		}
		y[year] = name
	}

	return &Normalizer{variants: v, years: y}, nil
}

// HasVariant проверяет наличие варианта в таблице
func (n *Normalizer) HasVariant(variant domain.SchemaVariant) bool {
	_, ok := n.variants[variant]
	return ok
}

// VariantForYear возвращает вариант схемы для года источника
func (n *Normalizer) VariantForYear(year int) (domain.SchemaVariant, error) {
	variant, ok := n.years[year]
	if !ok {
		return "", fmt.Errorf("%w: no schema variant for year %d", domain.ErrConfiguration, year)
	}
	return variant, nil
}

// Normalize приводит запись к канонической форме.
//
// Ошибку возвращает неизвестный вариант схемы и год источника вне 1..9999,
// для которого нельзя построить ISO дату. Грязные данные ошибкой
// не считаются: нераспознанная дата заменяется на 1 января года источника с
// флагом DateParseFallback, отсутствующие суммы равны нулю, имя - пустой строке.
// Запись с полем dataPeriod уже каноническая и возвращается без повторного маппинга.
func (n *Normalizer) Normalize(record domain.LegacyCharterRecord, sourceYear int, variant domain.SchemaVariant) (domain.CanonicalBooking, error) {
	mapping, ok := n.variants[variant]
	if !ok {
		return domain.CanonicalBooking{}, fmt.Errorf("%w: unknown schema variant %q", domain.ErrConfiguration, variant)
	}

	if sourceYear < minISOYear || sourceYear > maxISOYear {
		return domain.CanonicalBooking{}, fmt.Errorf("%w: source year %d out of range", domain.ErrConfiguration, sourceYear)
	}

	if period, ok := record[domain.FieldDataPeriod].(string); ok && period != "" {
		return decodeCanonical(record, sourceYear), nil
	}

	start, fallback := resolveStartDate(record, mapping, sourceYear)

	end := start
	if v, ok := lookup(record, mapping.EndDateFields); ok {
		if parsed, ok := parseDate(v, mapping.DateFormat, sourceYear); ok && !parsed.Before(start) {
			end = parsed
		}
	}

	bookingDate := start
	if v, ok := lookup(record, mapping.BookedOnFields); ok {
		if parsed, ok := parseISODate(v); ok {
			bookingDate = parsed
		}
	}

	fullName := strings.Join(strings.Fields(lookupString(record, mapping.GuestNameFields)), " ")
	first, last := splitName(fullName)

	total := lookupMoney(record, mapping.CharterTotalFields)
	paid := lookupMoney(record, mapping.PaidAmountFields)

	status := lookupString(record, mapping.StatusFields)
	if status == "" {
		status = mapping.DefaultStatus
	}

	booking := domain.CanonicalBooking{
		Locator:           lookupString(record, mapping.LocatorFields),
		StartDate:         start.Format(domain.DateFormat),
		EndDate:           end.Format(domain.DateFormat),
		Boat:              lookupString(record, mapping.BoatFields),
		GuestFirstName:    first,
		GuestLastName:     last,
		GuestFullName:     fullName,
		CharterTotal:      total,
		PaidAmount:        paid,
		OutstandingAmount: outstanding(total, paid),
		TotalGuests:       lookupInt(record, mapping.TotalGuestsFields),
		BookingStatus:     strings.ToLower(status),
		DataPeriod:        mapping.Period,
		SchemaVariant:     variant,
		BookingYear:       start.Year(),
		BookingMonth:      int(start.Month()),
		BookingDate:       bookingDate.Format(domain.DateFormat),
		DateParseFallback: fallback,
	}

	booking.ID = lookupString(record, mapping.IDFields)
	if booking.ID == "" {
		booking.ID = deterministicID(booking, sourceYear)
	}

	return booking, nil
}

func resolveStartDate(record domain.LegacyCharterRecord, mapping FieldMapping, sourceYear int) (time.Time, bool) {
	if v, ok := lookup(record, mapping.StartDateFields); ok {
		if parsed, ok := parseDate(v, mapping.DateFormat, sourceYear); ok {
			return parsed, false
		}
	}
	return fallbackDate(sourceYear), true
}

func parseDate(v any, format DateFormat, sourceYear int) (time.Time, bool) {
	switch format {
	case DateFormatDayNameMonthDay:
		return parseDayNameMonthDay(v, sourceYear)
	default:
		return parseISODate(v)
	}
}

func fallbackDate(sourceYear int) time.Time {
	return dateOnly(sourceYear, time.January, 1)
}

// decodeCanonical читает уже каноническую запись (в т.ч. после JSON round trip).
// Дата и остаток проверяются повторно, чтобы инварианты выполнялись для любой записи.
func decodeCanonical(record domain.LegacyCharterRecord, sourceYear int) domain.CanonicalBooking {
	str := func(key string) string {
		v, ok := record[key]
		if !ok || v == nil {
			return ""
		}
		return toString(v)
	}
	num := func(key string) float64 {
		f, _ := toMoney(record[key])
		return f
	}

	booking := domain.CanonicalBooking{
		ID:                str(domain.FieldID),
		Locator:           str(domain.FieldLocator),
		StartDate:         str(domain.FieldStartDate),
		EndDate:           str(domain.FieldEndDate),
		Boat:              str(domain.FieldBoat),
		GuestFirstName:    str(domain.FieldGuestFirstName),
		GuestLastName:     str(domain.FieldGuestLastName),
		GuestFullName:     str(domain.FieldGuestFullName),
		CharterTotal:      roundCents(num(domain.FieldCharterTotal)),
		PaidAmount:        roundCents(num(domain.FieldPaidAmount)),
		TotalGuests:       int(num(domain.FieldTotalGuests)),
		BookingStatus:     str(domain.FieldBookingStatus),
		DataPeriod:        domain.DataPeriod(str(domain.FieldDataPeriod)),
		SchemaVariant:     domain.SchemaVariant(str(domain.FieldSchemaVariant)),
		BookingYear:       int(num(domain.FieldBookingYear)),
		BookingMonth:      int(num(domain.FieldBookingMonth)),
		BookingDate:       str(domain.FieldBookingDate),
		DateParseFallback: toBool(record[domain.FieldDateParseFallback]),
	}
	booking.OutstandingAmount = outstanding(booking.CharterTotal, booking.PaidAmount)

	start, err := time.Parse(domain.DateFormat, booking.StartDate)
	if err != nil {
		start = fallbackDate(sourceYear)
		booking.StartDate = start.Format(domain.DateFormat)
		booking.DateParseFallback = true
	}
	booking.BookingYear = start.Year()
	booking.BookingMonth = int(start.Month())

	if _, err := time.Parse(domain.DateFormat, booking.EndDate); err != nil {
		booking.EndDate = booking.StartDate
	}
	if _, err := time.Parse(domain.DateFormat, booking.BookingDate); err != nil {
		booking.BookingDate = booking.StartDate
	}

	return booking
}

func outstanding(total, paid float64) float64 {
	if o := roundCents(total - paid); o > 0 {
		return o
	}
	return 0
}

// deterministicID UUIDv5 от содержимого записи: повторный импорт дает тот же ID
func deterministicID(b domain.CanonicalBooking, sourceYear int) string {
	key := strings.Join([]string{
		string(b.SchemaVariant),
		strconv.Itoa(sourceYear),
		b.Locator,
		b.StartDate,
		b.GuestFullName,
		b.Boat,
		strconv.FormatFloat(b.CharterTotal, 'f', 2, 64),
	}, "|")
	return uuid.NewSHA1(bookingNamespace, []byte(key)).String()
}
