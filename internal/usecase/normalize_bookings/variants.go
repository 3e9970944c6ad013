package normalize_bookings

import (
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// DateFormat способ кодирования даты в исходной схеме
type DateFormat string

const (
	// DateFormatISO "2023-08-04", RFC3339, "2023-08-04 10:00:00" или серийный номер Excel
	DateFormatISO DateFormat = "iso"

	// DateFormatDayNameMonthDay "Sat 8/4" - год берется из года источника
	DateFormatDayNameMonthDay DateFormat = "day_name_month_day"
)

// FieldMapping строка таблицы вариантов: где в записи лежит каждое каноническое поле.
// Для каждого поля задается упорядоченный список кандидатов, берется первый непустой.
type FieldMapping struct {
	Period     domain.DataPeriod
	DateFormat DateFormat

	StartDateFields    []string
	EndDateFields      []string
	BookedOnFields     []string // дата создания брони, всегда ISO
	IDFields           []string
	LocatorFields      []string
	BoatFields         []string
	GuestNameFields    []string // имя целиком, делится по первому пробелу
	CharterTotalFields []string
	PaidAmountFields   []string
	TotalGuestsFields  []string
	StatusFields       []string

	DefaultStatus string
}

// Validate проверяет строку таблицы вариантов
func (m FieldMapping) Validate() error {
	switch m.DateFormat {
	case DateFormatISO, DateFormatDayNameMonthDay:
	default:
		return fmt.Errorf("unknown date format %q", m.DateFormat)
	}

	switch m.Period {
	case domain.DataPeriodCurrent, domain.DataPeriodHistorical:
	default:
		return fmt.Errorf("unknown data period %q", m.Period)
	}

	if len(m.StartDateFields) == 0 {
		return fmt.Errorf("no start date fields")
	}

	if len(m.CharterTotalFields) == 0 {
		return fmt.Errorf("no charter total fields")
	}

	return nil
}

// historicalMoneyFields кандидаты суммы чартера: нетто, затем брутто по каналам продаж
var historicalMoneyFields = []string{
	"net_total",
	"charter_total",
	"direct_hire_gross",
	"clickboat_gross_amount",
	"airbnb_gross_amount",
}

// DefaultVariants встроенная таблица вариантов схем
func DefaultVariants() map[domain.SchemaVariant]FieldMapping {
	return map[domain.SchemaVariant]FieldMapping{
		domain.SchemaCurrent: {
			Period:             domain.DataPeriodCurrent,
			DateFormat:         DateFormatISO,
			StartDateFields:    []string{"start_date"},
			EndDateFields:      []string{"end_date"},
			BookedOnFields:     []string{"created_at"},
			IDFields:           []string{"id", "locator"},
			LocatorFields:      []string{"locator"},
			BoatFields:         []string{"boat_name"},
			GuestNameFields:    []string{"guest_name", "customer_name"},
			CharterTotalFields: []string{"charter_total"},
			PaidAmountFields:   []string{"paid_amount"},
			TotalGuestsFields:  []string{"total_guests"},
			StatusFields:       []string{"booking_status"},
			DefaultStatus:      "confirmed",
		},
		domain.SchemaHistorical2022: {
			Period:             domain.DataPeriodHistorical,
			DateFormat:         DateFormatISO,
			StartDateFields:    []string{"charter_date", "date"},
			BookedOnFields:     []string{"booked_on"},
			IDFields:           []string{"id"},
			LocatorFields:      []string{"booking_ref", "confirmation"},
			BoatFields:         []string{"boat", "vessel"},
			GuestNameFields:    []string{"customer_name"},
			CharterTotalFields: []string{"net_total", "direct_hire_gross", "gross"},
			PaidAmountFields:   []string{"amount_paid", "paid"},
			TotalGuestsFields:  []string{"guests", "party_size"},
			StatusFields:       []string{"status"},
			DefaultStatus:      "completed",
		},
		domain.SchemaHistorical2023: {
			Period:             domain.DataPeriodHistorical,
			DateFormat:         DateFormatDayNameMonthDay,
			StartDateFields:    []string{"date", "charter_date"},
			BookedOnFields:     []string{"booked_on"},
			IDFields:           []string{"id"},
			LocatorFields:      []string{"booking_ref", "confirmation"},
			BoatFields:         []string{"boat", "vessel"},
			GuestNameFields:    []string{"customer_name"},
			CharterTotalFields: historicalMoneyFields,
			PaidAmountFields:   []string{"amount_paid", "deposit_paid"},
			TotalGuestsFields:  []string{"guests", "party_size"},
			StatusFields:       []string{"status"},
			DefaultStatus:      "completed",
		},
		domain.SchemaHistorical2024: {
			Period:             domain.DataPeriodHistorical,
			DateFormat:         DateFormatISO,
			StartDateFields:    []string{"start_date", "charter_date"},
			EndDateFields:      []string{"end_date"},
			BookedOnFields:     []string{"booked_on", "created_at"},
			IDFields:           []string{"id"},
			LocatorFields:      []string{"locator", "booking_ref"},
			BoatFields:         []string{"boat_name", "boat"},
			GuestNameFields:    []string{"customer_name", "guest_name"},
			CharterTotalFields: historicalMoneyFields,
			PaidAmountFields:   []string{"paid_amount", "amount_paid"},
			TotalGuestsFields:  []string{"total_guests", "guests"},
			StatusFields:       []string{"booking_status", "status"},
			DefaultStatus:      "completed",
		},
	}
}

// DefaultYearVariants встроенное соответствие года источника и варианта схемы
func DefaultYearVariants() map[int]domain.SchemaVariant {
	return map[int]domain.SchemaVariant{
		2022: domain.SchemaHistorical2022,
		2023: domain.SchemaHistorical2023,
		2024: domain.SchemaHistorical2024,
	}
}
