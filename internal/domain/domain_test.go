package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatus_IsOccupying(t *testing.T) {
	tests := []struct {
		status ReservationStatus
		want   bool
	}{
		{status: "confirmed", want: true},
		{status: "Confirmed", want: true},
		{status: " BOOKED ", want: true},
		{status: "PreBooked", want: true},
		{status: "cancelled", want: false},
		{status: "pending", want: false},
		{status: "", want: false},
		{status: "unknown", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := Reservation{Status: tt.status}
			assert.Equal(t, tt.want, r.IsOccupying())
		})
	}
}

func TestCharter_TracksPaymentSplit(t *testing.T) {
	cash := 100.0

	assert.False(t, (&Charter{}).TracksPaymentSplit())
	assert.True(t, (&Charter{CashPayment: &cash}).TracksPaymentSplit())
	assert.True(t, (&Charter{CardPayment: &cash}).TracksPaymentSplit())
}

func TestReconciliationResult_NeedsAction(t *testing.T) {
	assert.False(t, (&ReconciliationResult{Status: ReconciliationReconciled, Urgency: UrgencyNone}).NeedsAction())
	assert.True(t, (&ReconciliationResult{Status: ReconciliationPending, Urgency: UrgencySoon}).NeedsAction())
	assert.True(t, (&ReconciliationResult{Status: ReconciliationOverdue, Urgency: UrgencyNone}).NeedsAction())
}

func TestDayAvailability_IsBookable(t *testing.T) {
	day := DayAvailability{
		Status:        AvailabilityPartiallyBooked,
		PerSlotBooked: map[string]bool{"morning": true},
	}
	assert.True(t, day.IsBookable())
	assert.True(t, day.IsSlotBooked("morning"))
	assert.False(t, day.IsSlotBooked("sunset"))

	day.Status = AvailabilityFullyBooked
	assert.False(t, day.IsBookable())
}

func TestCanonicalBooking_Record(t *testing.T) {
	b := CanonicalBooking{
		ID:            "id-1",
		Locator:       "SMC-001",
		StartDate:     "2023-08-04",
		DataPeriod:    DataPeriodHistorical,
		SchemaVariant: SchemaHistorical2023,
		CharterTotal:  1200,
	}

	rec := b.Record()
	assert.Equal(t, "historical", rec[FieldDataPeriod])
	assert.Equal(t, "historical_2023", rec[FieldSchemaVariant])
	assert.Equal(t, 1200.0, rec[FieldCharterTotal])
	assert.Equal(t, false, rec[FieldDateParseFallback])
}
