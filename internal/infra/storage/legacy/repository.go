package legacy

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/psqlbuilder"
)

// Repository репозиторий исторических записей.
// Записи хранятся как есть (JSONB), нормализация происходит при чтении.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исторических записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByYear получает записи исходного года в порядке импорта
func (r *Repository) GetByYear(ctx context.Context, year int) ([]domain.StoredLegacyRecord, error) {
	query, args, err := psqlbuilder.Select("schema_variant", "payload").
		From("legacy_charters").
		Where(squirrel.Eq{"source_year": year}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByYear - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByYear - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.StoredLegacyRecord, 0)
	for rows.Next() {
		var (
			variant sql.NullString
			payload []byte
		)
		if err := rows.Scan(&variant, &payload); err != nil {
			return nil, fmt.Errorf("%w: GetByYear - scan row: %v", ErrScanRow, err)
		}

		record, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByYear: %v", ErrScanRow, err)
		}
		records = append(records, domain.StoredLegacyRecord{
			Variant: domain.SchemaVariant(variant.String),
			Record:  record,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByYear - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// SaveBatch сохраняет записи исходного года одним INSERT вместе с вариантом схемы
func (r *Repository) SaveBatch(ctx context.Context, year int, variant domain.SchemaVariant, records []domain.LegacyCharterRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	query, args, err := buildInsertQuery(year, variant, records)
	if err != nil {
		return 0, fmt.Errorf("%w: SaveBatch - build insert query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SaveBatch - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SaveBatch - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func buildInsertQuery(year int, variant domain.SchemaVariant, records []domain.LegacyCharterRecord) (string, []interface{}, error) {
	insert := psqlbuilder.Insert("legacy_charters").Columns("source_year", "schema_variant", "payload")

	var schemaVariant sql.NullString
	if variant != "" {
		schemaVariant = sql.NullString{String: string(variant), Valid: true}
	}

	for i, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return "", nil, fmt.Errorf("record #%d: %v", i, err)
		}
		insert = insert.Values(year, schemaVariant, string(payload))
	}

	return insert.ToSql()
}

// decodePayload декодирует JSON объект, сохраняя числа как json.Number
func decodePayload(payload []byte) (domain.LegacyCharterRecord, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPayload)
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var record domain.LegacyCharterRecord
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: null", ErrInvalidPayload)
	}

	return record, nil
}
