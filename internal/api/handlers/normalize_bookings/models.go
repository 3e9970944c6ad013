package normalize_bookings

import (
	"github.com/m04kA/SMC-CharterService/internal/domain"
	normalizeBookings "github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
)

// CanonicalBookingsResponse HTTP response model
type CanonicalBookingsResponse struct {
	Year            int                `json:"year"`
	Total           int                `json:"total"`
	CurrentCount    int                `json:"currentCount"`
	HistoricalCount int                `json:"historicalCount"`
	FallbackCount   int                `json:"fallbackCount"`
	Bookings        []CanonicalBooking `json:"bookings"`
}

// ImportResponse HTTP response model
type ImportResponse struct {
	Year          int                `json:"year"`
	SchemaVariant string             `json:"schemaVariant"`
	Rows          int                `json:"rows"`
	FallbackCount int                `json:"fallbackCount"`
	Persisted     int64              `json:"persisted"`
	Bookings      []CanonicalBooking `json:"bookings"`
}

// CanonicalBooking каноническая запись бронирования
type CanonicalBooking struct {
	ID                string  `json:"id"`
	Locator           string  `json:"locator,omitempty"`
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	Boat              string  `json:"boat,omitempty"`
	GuestFirstName    string  `json:"guestFirstName"`
	GuestLastName     string  `json:"guestLastName"`
	GuestFullName     string  `json:"guestFullName"`
	CharterTotal      float64 `json:"charterTotal"`
	PaidAmount        float64 `json:"paidAmount"`
	OutstandingAmount float64 `json:"outstandingAmount"`
	TotalGuests       int     `json:"totalGuests"`
	BookingStatus     string  `json:"bookingStatus"`
	DataPeriod        string  `json:"dataPeriod"`
	SchemaVariant     string  `json:"schemaVariant"`
	BookingYear       int     `json:"bookingYear"`
	BookingMonth      int     `json:"bookingMonth"`
	BookingDate       string  `json:"bookingDate"`
	DateParseFallback bool    `json:"dateParseFallback"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *normalizeBookings.Response) *CanonicalBookingsResponse {
	return &CanonicalBookingsResponse{
		Year:            resp.Year,
		Total:           len(resp.Bookings),
		CurrentCount:    resp.CurrentCount,
		HistoricalCount: resp.HistoricalCount,
		FallbackCount:   resp.FallbackCount,
		Bookings:        fromBookings(resp.Bookings),
	}
}

// FromImportResponse конвертирует результат импорта в HTTP response
func FromImportResponse(resp *normalizeBookings.ImportResponse) *ImportResponse {
	return &ImportResponse{
		Year:          resp.Year,
		SchemaVariant: string(resp.Variant),
		Rows:          resp.Rows,
		FallbackCount: resp.FallbackCount,
		Persisted:     resp.Persisted,
		Bookings:      fromBookings(resp.Bookings),
	}
}

func fromBookings(bookings []domain.CanonicalBooking) []CanonicalBooking {
	result := make([]CanonicalBooking, len(bookings))
	for i, b := range bookings {
		result[i] = CanonicalBooking{
			ID:                b.ID,
			Locator:           b.Locator,
			StartDate:         b.StartDate,
			EndDate:           b.EndDate,
			Boat:              b.Boat,
			GuestFirstName:    b.GuestFirstName,
			GuestLastName:     b.GuestLastName,
			GuestFullName:     b.GuestFullName,
			CharterTotal:      b.CharterTotal,
			PaidAmount:        b.PaidAmount,
			OutstandingAmount: b.OutstandingAmount,
			TotalGuests:       b.TotalGuests,
			BookingStatus:     b.BookingStatus,
			DataPeriod:        string(b.DataPeriod),
			SchemaVariant:     string(b.SchemaVariant),
			BookingYear:       b.BookingYear,
			BookingMonth:      b.BookingMonth,
			BookingDate:       b.BookingDate,
			DateParseFallback: b.DateParseFallback,
		}
	}
	return result
}
