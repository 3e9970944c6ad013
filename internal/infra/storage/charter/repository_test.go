package charter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectColumns = "SELECT locator, boat_name, guest_name, start_date, end_date, total_guests, " +
	"charter_total, paid_amount, cash_payment, card_payment, outstanding_amount, " +
	"contract_signed, booking_status, created_at FROM charters"

func TestBuildYearQuery(t *testing.T) {
	query, args, err := buildYearQuery(2023).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectColumns+" WHERE start_date >= $1 AND start_date < $2 ORDER BY start_date ASC, locator ASC", query)
	assert.Equal(t, []interface{}{
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, args)
}

func TestBuildBalanceQuery(t *testing.T) {
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.July, 8, 0, 0, 0, 0, time.UTC)

	query, args, err := buildBalanceQuery(from, to).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectColumns+
		" WHERE start_date >= $1 AND start_date <= $2 AND charter_total > paid_amount ORDER BY start_date ASC, locator ASC",
		query)
	assert.Equal(t, []interface{}{from, to}, args)
}

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.values[i].(string)
		case *float64:
			*p = f.values[i].(float64)
		case *bool:
			*p = f.values[i].(bool)
		case *time.Time:
			*p = f.values[i].(time.Time)
		default:
			if s, ok := d.(interface{ Scan(any) error }); ok {
				if err := s.Scan(f.values[i]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func TestScanCharter_NullableColumns(t *testing.T) {
	start := time.Date(2024, time.August, 4, 0, 0, 0, 0, time.UTC)

	charter, err := scanCharter(fakeRow{values: []any{
		"AB12", "Aurora", nil, start, nil, nil,
		1200.0, 600.0, 250.0, nil, nil,
		true, nil, nil,
	}})
	require.NoError(t, err)

	assert.Equal(t, "AB12", charter.Locator)
	assert.Equal(t, "", charter.GuestName)
	assert.Equal(t, start, charter.StartDate)
	require.NotNil(t, charter.CashPayment)
	assert.Equal(t, 250.0, *charter.CashPayment)
	assert.Nil(t, charter.CardPayment)
	assert.True(t, charter.TracksPaymentSplit())
	assert.True(t, charter.ContractSigned)
}

func TestScanCharter_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := scanCharter(fakeRow{err: boom})
	assert.ErrorIs(t, err, boom)
}
