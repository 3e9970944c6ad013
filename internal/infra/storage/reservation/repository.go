package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/psqlbuilder"
)

// Repository репозиторий резерваций лодок (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBoatAndDate получает занимающие резервации лодки, начинающиеся в календарный день date.
// Границы дня берутся в часовом поясе date.
func (r *Repository) GetByBoatAndDate(ctx context.Context, boatID int64, date time.Time) ([]*domain.Reservation, error) {
	query, args, err := buildDayQuery(boatID, date).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBoatAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBoatAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

func buildDayQuery(boatID int64, date time.Time) squirrel.SelectBuilder {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Статусы в исторических данных записаны в разном регистре
	occupying := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		occupying[i] = string(s)
	}

	return psqlbuilder.Select(
		"id",
		"boat_id",
		"start_at",
		"end_at",
		"status",
	).
		From("reservations").
		Where(squirrel.Eq{"boat_id": boatID}).
		Where(squirrel.GtOrEq{"start_at": dayStart}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		Where(squirrel.Eq{"lower(trim(status))": occupying}).
		OrderBy("start_at ASC")
}

// scanReservations сканирует результаты запроса в слайс резерваций
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation
		var endAt sql.NullTime

		err := rows.Scan(
			&reservation.ID,
			&reservation.BoatID,
			&reservation.StartAt,
			&endAt,
			&reservation.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		reservation.EndAt = endAt.Time
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
