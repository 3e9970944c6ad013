package get_day_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

func testCatalog() []domain.TimeSlot {
	return []domain.TimeSlot{
		{ID: "morning", Label: "Morning", StartTime: "08:00", DurationHours: 4, MinPrice: 400},
		{ID: "afternoon", Label: "Afternoon", StartTime: "13:00", DurationHours: 4, MinPrice: 450},
		{ID: "sunset", Label: "Sunset", StartTime: "18:00", DurationHours: 3, MinPrice: 500},
	}
}

func day() time.Time {
	return time.Date(2024, time.August, 3, 0, 0, 0, 0, time.UTC)
}

func reservationAt(hour, minute int, status domain.ReservationStatus) *domain.Reservation {
	d := day()
	start := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
	return &domain.Reservation{ID: int64(hour*100 + minute), BoatID: 1, StartAt: start, EndAt: start.Add(4 * time.Hour), Status: status}
}

func TestResolve_OffsetStartTimesMatchSlotWindows(t *testing.T) {
	reservations := []*domain.Reservation{
		reservationAt(8, 30, domain.ReservationConfirmed),
		reservationAt(13, 30, domain.ReservationBooked),
	}

	got, err := Resolve(day(), testCatalog(), reservations, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, got.BookedSlotCount)
	assert.Equal(t, domain.AvailabilityPartiallyBooked, got.Status)
	assert.Equal(t, map[string]bool{"morning": true, "afternoon": true, "sunset": false}, got.PerSlotBooked)
	assert.Zero(t, got.UnresolvedReservations)
	assert.Equal(t, day(), got.Date)
}

func TestResolve_Statuses(t *testing.T) {
	tests := []struct {
		name         string
		reservations []*domain.Reservation
		threshold    int
		wantCount    int
		wantStatus   domain.AvailabilityStatus
	}{
		{
			name:       "no reservations",
			threshold:  3,
			wantStatus: domain.AvailabilityAvailable,
		},
		{
			name: "non occupying statuses are ignored",
			reservations: []*domain.Reservation{
				reservationAt(8, 0, domain.ReservationCancelled),
				reservationAt(13, 0, domain.ReservationPending),
			},
			threshold:  3,
			wantStatus: domain.AvailabilityAvailable,
		},
		{
			name: "all slots booked",
			reservations: []*domain.Reservation{
				reservationAt(8, 0, domain.ReservationConfirmed),
				reservationAt(13, 0, domain.ReservationConfirmed),
				reservationAt(18, 0, domain.ReservationPrebooked),
			},
			threshold:  3,
			wantCount:  3,
			wantStatus: domain.AvailabilityFullyBooked,
		},
		{
			name: "status matching ignores case",
			reservations: []*domain.Reservation{
				reservationAt(9, 0, "Confirmed"),
				reservationAt(14, 0, " BOOKED "),
			},
			threshold:  3,
			wantCount:  2,
			wantStatus: domain.AvailabilityPartiallyBooked,
		},
		{
			name: "lower threshold",
			reservations: []*domain.Reservation{
				reservationAt(8, 0, domain.ReservationConfirmed),
				reservationAt(13, 0, domain.ReservationConfirmed),
			},
			threshold:  2,
			wantCount:  2,
			wantStatus: domain.AvailabilityFullyBooked,
		},
		{
			name: "non positive threshold falls back to default",
			reservations: []*domain.Reservation{
				reservationAt(8, 0, domain.ReservationConfirmed),
				reservationAt(13, 0, domain.ReservationConfirmed),
			},
			threshold:  0,
			wantCount:  2,
			wantStatus: domain.AvailabilityPartiallyBooked,
		},
		{
			name: "two reservations in one slot count once",
			reservations: []*domain.Reservation{
				reservationAt(8, 0, domain.ReservationConfirmed),
				reservationAt(10, 0, domain.ReservationConfirmed),
			},
			threshold:  3,
			wantCount:  1,
			wantStatus: domain.AvailabilityPartiallyBooked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(day(), testCatalog(), tt.reservations, tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, got.BookedSlotCount)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestResolve_UnresolvedReservations(t *testing.T) {
	t.Run("start outside every window", func(t *testing.T) {
		got, err := Resolve(day(), testCatalog(), []*domain.Reservation{
			reservationAt(6, 0, domain.ReservationConfirmed),
		}, 3)
		require.NoError(t, err)

		assert.Equal(t, 1, got.UnresolvedReservations)
		assert.Equal(t, 1, got.BookedSlotCount)
		assert.Equal(t, domain.AvailabilityPartiallyBooked, got.Status)
		assert.False(t, got.IsSlotBooked("morning"))
	})

	t.Run("window end is exclusive", func(t *testing.T) {
		got, err := Resolve(day(), testCatalog(), []*domain.Reservation{
			reservationAt(12, 0, domain.ReservationConfirmed),
		}, 3)
		require.NoError(t, err)

		assert.False(t, got.IsSlotBooked("morning"))
		assert.Equal(t, 1, got.UnresolvedReservations)
	})

	t.Run("missing start time", func(t *testing.T) {
		got, err := Resolve(day(), testCatalog(), []*domain.Reservation{
			{ID: 1, Status: domain.ReservationBooked},
		}, 3)
		require.NoError(t, err)

		assert.Equal(t, 1, got.UnresolvedReservations)
		assert.Equal(t, domain.AvailabilityPartiallyBooked, got.Status)
	})

	t.Run("count is capped by catalog size", func(t *testing.T) {
		reservations := []*domain.Reservation{
			reservationAt(8, 0, domain.ReservationConfirmed),
			reservationAt(13, 0, domain.ReservationConfirmed),
			reservationAt(18, 0, domain.ReservationConfirmed),
			reservationAt(23, 0, domain.ReservationConfirmed),
		}
		got, err := Resolve(day(), testCatalog(), reservations, 3)
		require.NoError(t, err)

		assert.Equal(t, 3, got.BookedSlotCount)
		assert.Equal(t, domain.AvailabilityFullyBooked, got.Status)
	})
}

func TestResolve_UsesDateLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	date := time.Date(2024, time.August, 3, 15, 0, 0, 0, loc)

	// 05:30 UTC = 08:30 по местному времени
	reservation := &domain.Reservation{
		ID:      1,
		StartAt: time.Date(2024, time.August, 3, 5, 30, 0, 0, time.UTC),
		Status:  domain.ReservationConfirmed,
	}

	got, err := Resolve(date, testCatalog(), []*domain.Reservation{reservation}, 3)
	require.NoError(t, err)

	assert.True(t, got.IsSlotBooked("morning"))
	assert.Equal(t, time.Date(2024, time.August, 3, 0, 0, 0, 0, loc), got.Date)
}

func TestResolve_Monotonic(t *testing.T) {
	all := []*domain.Reservation{
		reservationAt(8, 15, domain.ReservationConfirmed),
		reservationAt(7, 0, domain.ReservationConfirmed),
		reservationAt(13, 0, domain.ReservationBooked),
		reservationAt(18, 30, domain.ReservationPrebooked),
		reservationAt(22, 0, domain.ReservationConfirmed),
	}

	prev := -1
	for i := 0; i <= len(all); i++ {
		got, err := Resolve(day(), testCatalog(), all[:i], 3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.BookedSlotCount, prev, "adding reservation #%d decreased the count", i)
		assert.LessOrEqual(t, got.BookedSlotCount, len(testCatalog()))
		prev = got.BookedSlotCount
	}
}

func TestResolve_InvalidCatalog(t *testing.T) {
	tests := []struct {
		name    string
		catalog []domain.TimeSlot
	}{
		{name: "empty", catalog: nil},
		{name: "missing id", catalog: []domain.TimeSlot{{StartTime: "08:00", DurationHours: 4}}},
		{
			name: "duplicate id",
			catalog: []domain.TimeSlot{
				{ID: "a", StartTime: "08:00", DurationHours: 4},
				{ID: "a", StartTime: "13:00", DurationHours: 4},
			},
		},
		{name: "bad start time", catalog: []domain.TimeSlot{{ID: "a", StartTime: types.TimeString("8am"), DurationHours: 4}}},
		{name: "zero duration", catalog: []domain.TimeSlot{{ID: "a", StartTime: "08:00"}}},
		{name: "negative duration", catalog: []domain.TimeSlot{{ID: "a", StartTime: "08:00", DurationHours: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(day(), tt.catalog, nil, 3)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.ErrorIs(t, ValidateCatalog(tt.catalog), domain.ErrConfiguration)
		})
	}
}

func TestDisplayPrice(t *testing.T) {
	slot := domain.TimeSlot{ID: "morning", MinPrice: 400}

	assert.Equal(t, 850.0, DisplayPrice(85, 10, slot))
	assert.Equal(t, 400.0, DisplayPrice(85, 2, slot))
	assert.Equal(t, 400.0, DisplayPrice(0, 0, slot))
	assert.Equal(t, 400.0, DisplayPrice(-50, 10, slot))
	assert.Equal(t, 0.0, DisplayPrice(-50, 10, domain.TimeSlot{ID: "free"}))
}
