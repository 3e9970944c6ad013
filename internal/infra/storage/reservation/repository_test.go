package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDayQuery(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	date := time.Date(2024, time.August, 3, 17, 45, 0, 0, loc)

	query, args, err := buildDayQuery(42, date).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, boat_id, start_at, end_at, status FROM reservations "+
			"WHERE boat_id = $1 AND start_at >= $2 AND start_at < $3 "+
			"AND lower(trim(status)) IN ($4,$5,$6) ORDER BY start_at ASC",
		query,
	)
	assert.Equal(t, []interface{}{
		int64(42),
		time.Date(2024, time.August, 3, 0, 0, 0, 0, loc),
		time.Date(2024, time.August, 4, 0, 0, 0, 0, loc),
		"confirmed",
		"booked",
		"prebooked",
	}, args)
}
