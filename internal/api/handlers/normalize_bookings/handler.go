package normalize_bookings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	normalizeBookings "github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
)

const (
	msgInvalidYear     = "некорректный год"
	msgInvalidPersist  = "некорректный параметр persist"
	msgMissingFile     = "файл выгрузки обязателен"
	msgFileTooLarge    = "файл выгрузки слишком большой"
	msgUnknownVariant  = "неизвестная схема исторических данных"
	msgUnreadableFile  = "не удалось прочитать файл выгрузки"
	msgInvalidFileType = "поддерживаются только файлы .xlsx и .xls"
	msgUnauthorized    = "пользователь не авторизован"
)

// formFileField имя поля файла в multipart/form-data
const formFileField = "file"

type Handler struct {
	useCase       NormalizeBookingsUseCase
	maxUploadSize int64
	logger        Logger
}

// NewHandler создает handler. maxUploadSize - лимит тела импорта в байтах.
func NewHandler(useCase NormalizeBookingsUseCase, maxUploadSize int64, logger Logger) *Handler {
	return &Handler{
		useCase:       useCase,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// HandleCanonical GET /api/v1/bookings/canonical
// Query params: year (required)
func (h *Handler) HandleCanonical(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.logger.Warn("GET /bookings/canonical - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &normalizeBookings.Request{Year: year})
	if err != nil {
		switch {
		case errors.Is(err, normalizeBookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/canonical - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidYear)

		default:
			h.logger.Error("GET /bookings/canonical - Failed to normalize bookings: year=%d, error=%v", year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/canonical - Bookings normalized: year=%d, current=%d, historical=%d, fallback=%d",
		year, result.CurrentCount, result.HistoricalCount, result.FallbackCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleImport POST /api/v1/legacy/import
// Query params: year (required), variant (optional), filename (для сырого тела), persist (optional)
// Body: файл выгрузки как есть или multipart/form-data с полем file
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	// Получаем ID оператора из контекста (через middleware Auth)
	operatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /legacy/import - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.logger.Warn("POST /legacy/import - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	persist := false
	if raw := query.Get("persist"); raw != "" {
		persist, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("POST /legacy/import - Invalid persist flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPersist)
			return
		}
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	fileName, body, err := h.readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("POST /legacy/import - Upload too large: limit=%d", tooLarge.Limit)
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		h.logger.Warn("POST /legacy/import - Invalid upload: %v", err)
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}

	result, err := h.useCase.Import(r.Context(), &normalizeBookings.ImportRequest{
		Year:     year,
		Variant:  domain.SchemaVariant(query.Get("variant")),
		FileName: fileName,
		Body:     bytes.NewReader(body),
		Persist:  persist,
	})
	if err != nil {
		switch {
		case errors.Is(err, normalizeBookings.ErrInvalidInput):
			h.logger.Warn("POST /legacy/import - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFileType)

		case errors.Is(err, normalizeBookings.ErrUnknownVariant):
			h.logger.Warn("POST /legacy/import - Unknown schema variant: year=%d, variant=%s", year, query.Get("variant"))
			handlers.RespondBadRequest(w, msgUnknownVariant)

		case errors.Is(err, normalizeBookings.ErrUnreadableFile):
			h.logger.Warn("POST /legacy/import - Unreadable file: %v", err)
			handlers.RespondUnprocessable(w, msgUnreadableFile)

		default:
			h.logger.Error("POST /legacy/import - Failed to import: year=%d, error=%v", year, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /legacy/import - Import done: operator_id=%d, year=%d, variant=%s, rows=%d, persisted=%d",
		operatorID, year, result.Variant, result.Rows, result.Persisted)

	status := http.StatusOK
	if result.Persisted > 0 {
		status = http.StatusCreated
	}
	handlers.RespondJSON(w, status, FromImportResponse(result))
}

// readUpload читает файл из multipart/form-data или сырого тела запроса
func (h *Handler) readUpload(r *http.Request) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile(formFileField)
		if err != nil {
			return "", nil, err
		}
		defer file.Close()

		body, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		return header.Filename, body, nil
	}

	fileName := r.URL.Query().Get("filename")
	if fileName == "" {
		return "", nil, fmt.Errorf("filename query param is required for raw upload")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	if len(body) == 0 {
		return "", nil, fmt.Errorf("empty body")
	}
	return fileName, body, nil
}
