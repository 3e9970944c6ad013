package domain

// LegacyCharterRecord нетипизированная запись исторического источника.
// Имена полей и формат дат зависят от года/схемы.
type LegacyCharterRecord map[string]any

// StoredLegacyRecord сохраненная историческая запись с вариантом схемы,
// выбранным при импорте. Пустой Variant - вариант по таблице годов.
type StoredLegacyRecord struct {
	Variant SchemaVariant
	Record  LegacyCharterRecord
}

// DataPeriod происхождение канонической записи
type DataPeriod string

const (
	DataPeriodCurrent    DataPeriod = "current"
	DataPeriodHistorical DataPeriod = "historical"
)

// SchemaVariant вариант схемы исходных данных
type SchemaVariant string

const (
	SchemaCurrent        SchemaVariant = "current"
	SchemaHistorical2022 SchemaVariant = "historical_2022"
	SchemaHistorical2023 SchemaVariant = "historical_2023"
	SchemaHistorical2024 SchemaVariant = "historical_2024"
)

// Ключи канонической записи (CanonicalBooking.Record)
const (
	FieldID                = "id"
	FieldLocator           = "locator"
	FieldStartDate         = "startDate"
	FieldEndDate           = "endDate"
	FieldBoat              = "boat"
	FieldGuestFirstName    = "guestFirstName"
	FieldGuestLastName     = "guestLastName"
	FieldGuestFullName     = "guestFullName"
	FieldCharterTotal      = "charterTotal"
	FieldPaidAmount        = "paidAmount"
	FieldOutstandingAmount = "outstandingAmount"
	FieldTotalGuests       = "totalGuests"
	FieldBookingStatus     = "bookingStatus"
	FieldDataPeriod        = "dataPeriod"
	FieldSchemaVariant     = "schemaVariant"
	FieldBookingYear       = "bookingYear"
	FieldBookingMonth      = "bookingMonth"
	FieldBookingDate       = "bookingDate"
	FieldDateParseFallback = "dateParseFallback"
)

// CanonicalBooking единое представление бронирования независимо от года и источника
type CanonicalBooking struct {
	ID                string
	Locator           string
	StartDate         string // YYYY-MM-DD, всегда валидна
	EndDate           string // YYYY-MM-DD
	Boat              string
	GuestFirstName    string
	GuestLastName     string
	GuestFullName     string
	CharterTotal      float64
	PaidAmount        float64
	OutstandingAmount float64
	TotalGuests       int
	BookingStatus     string
	DataPeriod        DataPeriod
	SchemaVariant     SchemaVariant
	BookingYear       int
	BookingMonth      int
	BookingDate       string // YYYY-MM-DD

	// DateParseFallback дата не распознана, StartDate = 1 января года источника
	DateParseFallback bool
}

// Record представляет каноническую запись в виде LegacyCharterRecord.
// Повторная нормализация такой записи возвращает ту же CanonicalBooking.
func (b *CanonicalBooking) Record() LegacyCharterRecord {
	return LegacyCharterRecord{
		FieldID:                b.ID,
		FieldLocator:           b.Locator,
		FieldStartDate:         b.StartDate,
		FieldEndDate:           b.EndDate,
		FieldBoat:              b.Boat,
		FieldGuestFirstName:    b.GuestFirstName,
		FieldGuestLastName:     b.GuestLastName,
		FieldGuestFullName:     b.GuestFullName,
		FieldCharterTotal:      b.CharterTotal,
		FieldPaidAmount:        b.PaidAmount,
		FieldOutstandingAmount: b.OutstandingAmount,
		FieldTotalGuests:       b.TotalGuests,
		FieldBookingStatus:     b.BookingStatus,
		FieldDataPeriod:        string(b.DataPeriod),
		FieldSchemaVariant:     string(b.SchemaVariant),
		FieldBookingYear:       b.BookingYear,
		FieldBookingMonth:      b.BookingMonth,
		FieldBookingDate:       b.BookingDate,
		FieldDateParseFallback: b.DateParseFallback,
	}
}
