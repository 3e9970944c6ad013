package normalize_bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/infra/spreadsheet"
)

// UseCase use case единого представления текущих и исторических бронирований
type UseCase struct {
	charterRepo CharterRepository
	legacyRepo  LegacyRepository
	reader      SpreadsheetReader
	normalizer  *Normalizer
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	charterRepo CharterRepository,
	legacyRepo LegacyRepository,
	reader SpreadsheetReader,
	normalizer *Normalizer,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		charterRepo: charterRepo,
		legacyRepo:  legacyRepo,
		reader:      reader,
		normalizer:  normalizer,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute возвращает текущие чартеры и исторические записи года в каноническом виде
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("NormalizeBookings: year=%d", req.Year)

	// 1. Валидация входных данных
	if err := validateYear(req.Year); err != nil {
		uc.logger.Warn("NormalizeBookings: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущие чартеры
	charters, err := uc.charterRepo.GetByYear(ctx, req.Year)
	if err != nil {
		uc.logger.Error("NormalizeBookings: failed to get charters for year=%d: %v", req.Year, err)
		return nil, fmt.Errorf("%w: failed to get charters: %v", ErrInternal, err)
	}

	records := make([]domain.LegacyCharterRecord, 0, len(charters))
	for _, charter := range charters {
		records = append(records, charterRecord(charter))
	}

	current, err := uc.normalizeAll(records, req.Year, domain.SchemaCurrent)
	if err != nil {
		uc.logger.Error("NormalizeBookings: failed to normalize current charters: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Исторические записи года
	legacy, err := uc.legacyRepo.GetByYear(ctx, req.Year)
	if err != nil {
		uc.logger.Error("NormalizeBookings: failed to get legacy records for year=%d: %v", req.Year, err)
		return nil, fmt.Errorf("%w: failed to get legacy records: %v", ErrInternal, err)
	}

	historical, err := uc.normalizeStored(legacy, req.Year)
	if err != nil {
		uc.logger.Error("NormalizeBookings: failed to normalize legacy records of year=%d: %v", req.Year, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Объединяем и сортируем
	bookings := make([]domain.CanonicalBooking, 0, len(current)+len(historical))
	bookings = append(bookings, current...)
	bookings = append(bookings, historical...)
	sortBookings(bookings)

	fallbacks := countFallbacks(bookings)
	if fallbacks > 0 {
		uc.logger.Warn("NormalizeBookings: %d record(s) of year=%d have unparseable dates", fallbacks, req.Year)
	}

	uc.logger.Info("NormalizeBookings: year=%d, current=%d, historical=%d", req.Year, len(current), len(historical))

	return &Response{
		Year:            req.Year,
		Bookings:        bookings,
		CurrentCount:    len(current),
		HistoricalCount: len(historical),
		FallbackCount:   fallbacks,
	}, nil
}

// Import читает выгрузку таблицы, нормализует строки и возвращает превью.
// С Persist исходные строки сохраняются как есть, нормализация повторяется при чтении.
func (uc *UseCase) Import(ctx context.Context, req *ImportRequest) (*ImportResponse, error) {
	uc.logger.Info("ImportLegacy: year=%d, variant=%q, file=%q, persist=%t", req.Year, req.Variant, req.FileName, req.Persist)

	// 1. Валидация входных данных
	if err := validateImportRequest(req); err != nil {
		uc.logger.Warn("ImportLegacy: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем вариант схемы
	variant := req.Variant
	if variant == "" {
		resolved, err := uc.normalizer.VariantForYear(req.Year)
		if err != nil {
			uc.logger.Warn("ImportLegacy: no schema variant for year=%d", req.Year)
			return nil, fmt.Errorf("%w: no schema variant for year %d", ErrUnknownVariant, req.Year)
		}
		variant = resolved
	}
	if !uc.normalizer.HasVariant(variant) {
		uc.logger.Warn("ImportLegacy: unknown schema variant %q", variant)
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	// 3. Читаем выгрузку
	records, err := uc.reader.ReadRecords(req.FileName, req.Body)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrUnsupportedFormat) {
			uc.logger.Warn("ImportLegacy: unsupported file %q", req.FileName)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Warn("ImportLegacy: failed to read %q: %v", req.FileName, err)
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	// 4. Нормализуем
	bookings, err := uc.normalizeAll(records, req.Year, variant)
	if err != nil {
		uc.logger.Error("ImportLegacy: failed to normalize: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	fallbacks := countFallbacks(bookings)
	if fallbacks > 0 {
		uc.logger.Warn("ImportLegacy: %d of %d row(s) have unparseable dates", fallbacks, len(records))
	}

	// 5. Сохраняем исходные строки
	var persisted int64
	if req.Persist {
		persisted, err = uc.legacyRepo.SaveBatch(ctx, req.Year, variant, records)
		if err != nil {
			uc.logger.Error("ImportLegacy: failed to save %d record(s) for year=%d: %v", len(records), req.Year, err)
			return nil, fmt.Errorf("%w: failed to save records: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ImportLegacy: file=%q, rows=%d, persisted=%d", req.FileName, len(records), persisted)

	return &ImportResponse{
		Year:          req.Year,
		Variant:       variant,
		Rows:          len(records),
		Bookings:      bookings,
		FallbackCount: fallbacks,
		Persisted:     persisted,
	}, nil
}

func (uc *UseCase) normalizeAll(records []domain.LegacyCharterRecord, year int, variant domain.SchemaVariant) ([]domain.CanonicalBooking, error) {
	bookings := make([]domain.CanonicalBooking, 0, len(records))
	for _, record := range records {
		booking, err := uc.normalizer.Normalize(record, year, variant)
		if err != nil {
			return nil, err
		}
		uc.metrics.ObserveNormalization(string(variant), booking.DateParseFallback)
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// normalizeStored нормализует сохраненные записи вариантом, выбранным при импорте.
// Записи без варианта нормализуются по таблице годов.
func (uc *UseCase) normalizeStored(stored []domain.StoredLegacyRecord, year int) ([]domain.CanonicalBooking, error) {
	bookings := make([]domain.CanonicalBooking, 0, len(stored))
	for i, s := range stored {
		variant := s.Variant
		if variant == "" {
			resolved, err := uc.normalizer.VariantForYear(year)
			if err != nil {
				return nil, fmt.Errorf("record #%d: %v", i, err)
			}
			variant = resolved
		}

		booking, err := uc.normalizer.Normalize(s.Record, year, variant)
		if err != nil {
			return nil, fmt.Errorf("record #%d: %v", i, err)
		}
		uc.metrics.ObserveNormalization(string(variant), booking.DateParseFallback)
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// charterRecord представляет текущий чартер записью схемы current
func charterRecord(c *domain.Charter) domain.LegacyCharterRecord {
	record := domain.LegacyCharterRecord{
		"locator":        c.Locator,
		"boat_name":      c.BoatName,
		"guest_name":     c.GuestName,
		"start_date":     c.StartDate,
		"charter_total":  c.CharterTotal,
		"paid_amount":    c.PaidAmount,
		"total_guests":   c.TotalGuests,
		"booking_status": c.BookingStatus,
	}
	if !c.EndDate.IsZero() {
		record["end_date"] = c.EndDate
	}
	if !c.CreatedAt.IsZero() {
		record["created_at"] = c.CreatedAt
	}
	return record
}

func sortBookings(bookings []domain.CanonicalBooking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].StartDate != bookings[j].StartDate {
			return bookings[i].StartDate < bookings[j].StartDate
		}
		if bookings[i].Locator != bookings[j].Locator {
			return bookings[i].Locator < bookings[j].Locator
		}
		return bookings[i].ID < bookings[j].ID
	})
}

func countFallbacks(bookings []domain.CanonicalBooking) int {
	n := 0
	for _, b := range bookings {
		if b.DateParseFallback {
			n++
		}
	}
	return n
}
