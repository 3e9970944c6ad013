package charter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/psqlbuilder"
)

var columns = []string{
	"locator",
	"boat_name",
	"guest_name",
	"start_date",
	"end_date",
	"total_guests",
	"charter_total",
	"paid_amount",
	"cash_payment",
	"card_payment",
	"outstanding_amount",
	"contract_signed",
	"booking_status",
	"created_at",
}

// Repository репозиторий чартеров (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория чартеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByLocator получает чартер по локатору
func (r *Repository) GetByLocator(ctx context.Context, locator string) (*domain.Charter, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("charters").
		Where(squirrel.Eq{"locator": locator}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLocator - build select query: %v", ErrBuildQuery, err)
	}

	charter, err := scanCharter(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCharterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLocator - scan charter: %v", ErrScanRow, err)
	}

	return charter, nil
}

// GetByYear получает чартеры, начинающиеся в указанном году
func (r *Repository) GetByYear(ctx context.Context, year int) ([]*domain.Charter, error) {
	query, args, err := buildYearQuery(year).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByYear - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByYear - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCharters(rows)
}

// GetWithBalanceBetween получает чартеры с неоплаченным остатком, начинающиеся в [from, to].
// Остаток считается по charter_total и paid_amount, хранимый outstanding_amount не используется.
func (r *Repository) GetWithBalanceBetween(ctx context.Context, from, to time.Time) ([]*domain.Charter, error) {
	query, args, err := buildBalanceQuery(from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithBalanceBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithBalanceBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCharters(rows)
}

func buildYearQuery(year int) squirrel.SelectBuilder {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	return psqlbuilder.Select(columns...).
		From("charters").
		Where(squirrel.GtOrEq{"start_date": from}).
		Where(squirrel.Lt{"start_date": to}).
		OrderBy("start_date ASC", "locator ASC")
}

func buildBalanceQuery(from, to time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("charters").
		Where(squirrel.GtOrEq{"start_date": from}).
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.Expr("charter_total > paid_amount")).
		OrderBy("start_date ASC", "locator ASC")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharter(row rowScanner) (*domain.Charter, error) {
	var charter domain.Charter
	var (
		guestName     sql.NullString
		endDate       sql.NullTime
		totalGuests   sql.NullInt64
		cashPayment   sql.NullFloat64
		cardPayment   sql.NullFloat64
		outstanding   sql.NullFloat64
		bookingStatus sql.NullString
		createdAt     sql.NullTime
	)

	err := row.Scan(
		&charter.Locator,
		&charter.BoatName,
		&guestName,
		&charter.StartDate,
		&endDate,
		&totalGuests,
		&charter.CharterTotal,
		&charter.PaidAmount,
		&cashPayment,
		&cardPayment,
		&outstanding,
		&charter.ContractSigned,
		&bookingStatus,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	charter.GuestName = guestName.String
	charter.EndDate = endDate.Time
	charter.TotalGuests = int(totalGuests.Int64)
	charter.OutstandingAmount = outstanding.Float64
	charter.BookingStatus = bookingStatus.String
	charter.CreatedAt = createdAt.Time

	if cashPayment.Valid {
		charter.CashPayment = &cashPayment.Float64
	}
	if cardPayment.Valid {
		charter.CardPayment = &cardPayment.Float64
	}

	return &charter, nil
}

// scanCharters сканирует результаты запроса в слайс чартеров
func scanCharters(rows *sql.Rows) ([]*domain.Charter, error) {
	charters := make([]*domain.Charter, 0)

	for rows.Next() {
		charter, err := scanCharter(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanCharters - scan row: %v", ErrScanRow, err)
		}
		charters = append(charters, charter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCharters - rows error: %v", ErrScanRow, err)
	}

	return charters, nil
}
