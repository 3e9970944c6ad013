package normalize_bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	normalizeBookings "github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
)

type fakeUseCase struct {
	gotReq       *normalizeBookings.Request
	gotImport    *normalizeBookings.ImportRequest
	gotImportRaw []byte
	resp         *normalizeBookings.Response
	importResp   *normalizeBookings.ImportResponse
	err          error
}

func (f *fakeUseCase) Execute(_ context.Context, req *normalizeBookings.Request) (*normalizeBookings.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

func (f *fakeUseCase) Import(_ context.Context, req *normalizeBookings.ImportRequest) (*normalizeBookings.ImportResponse, error) {
	f.gotImport = req
	f.gotImportRaw, _ = io.ReadAll(req.Body)
	return f.importResp, f.err
}

func historicalBooking() domain.CanonicalBooking {
	return domain.CanonicalBooking{
		ID:             "b5a0c7a2-0000-5000-8000-000000000001",
		StartDate:      "2023-07-04",
		EndDate:        "2023-07-04",
		GuestFirstName: "Jane",
		GuestLastName:  "Doe",
		GuestFullName:  "Jane Doe",
		CharterTotal:   1200,
		PaidAmount:     1200,
		BookingStatus:  "completed",
		DataPeriod:     domain.DataPeriodHistorical,
		SchemaVariant:  domain.SchemaHistorical2023,
		BookingYear:    2023,
		BookingMonth:   7,
		BookingDate:    "2023-07-04",
	}
}

func TestHandler_HandleCanonical(t *testing.T) {
	uc := &fakeUseCase{resp: &normalizeBookings.Response{
		Year:            2023,
		Bookings:        []domain.CanonicalBooking{historicalBooking()},
		HistoricalCount: 1,
	}}
	h := NewHandler(uc, 1<<20, logger.Nop{})

	rec := httptest.NewRecorder()
	h.HandleCanonical(rec, httptest.NewRequest(http.MethodGet, "/bookings/canonical?year=2023", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2023, uc.gotReq.Year)

	var body CanonicalBookingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, 1, body.HistoricalCount)
	assert.Equal(t, "historical", body.Bookings[0].DataPeriod)
	assert.Equal(t, "historical_2023", body.Bookings[0].SchemaVariant)
	assert.Equal(t, "Jane", body.Bookings[0].GuestFirstName)
}

func TestHandler_HandleCanonical_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
	}{
		{name: "missing year", target: "/bookings/canonical", wantStatus: http.StatusBadRequest},
		{name: "out of range", target: "/bookings/canonical?year=1899", ucErr: normalizeBookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", target: "/bookings/canonical?year=2023", ucErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, 1<<20, logger.Nop{})
			rec := httptest.NewRecorder()
			h.HandleCanonical(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func withOperator(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), 11))
}

func TestHandler_HandleImport_RawBody(t *testing.T) {
	uc := &fakeUseCase{importResp: &normalizeBookings.ImportResponse{
		Year:      2023,
		Variant:   domain.SchemaHistorical2023,
		Rows:      1,
		Bookings:  []domain.CanonicalBooking{historicalBooking()},
		Persisted: 1,
	}}
	h := NewHandler(uc, 1<<20, logger.Nop{})

	req := withOperator(httptest.NewRequest(http.MethodPost,
		"/legacy/import?year=2023&variant=historical_2023&filename=export.xlsx&persist=true",
		bytes.NewReader([]byte("xlsx-bytes"))))
	rec := httptest.NewRecorder()
	h.HandleImport(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.gotImport)
	assert.Equal(t, 2023, uc.gotImport.Year)
	assert.Equal(t, domain.SchemaHistorical2023, uc.gotImport.Variant)
	assert.Equal(t, "export.xlsx", uc.gotImport.FileName)
	assert.True(t, uc.gotImport.Persist)
	assert.Equal(t, []byte("xlsx-bytes"), uc.gotImportRaw)

	var body ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Persisted)
	assert.Len(t, body.Bookings, 1)
}

func TestHandler_HandleImport_Multipart(t *testing.T) {
	uc := &fakeUseCase{importResp: &normalizeBookings.ImportResponse{Year: 2022, Variant: domain.SchemaHistorical2022}}
	h := NewHandler(uc, 1<<20, logger.Nop{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "charters_2022.xls")
	require.NoError(t, err)
	_, err = part.Write([]byte("xls-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := withOperator(httptest.NewRequest(http.MethodPost, "/legacy/import?year=2022", &buf))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.HandleImport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "charters_2022.xls", uc.gotImport.FileName)
	assert.Equal(t, domain.SchemaVariant(""), uc.gotImport.Variant)
	assert.False(t, uc.gotImport.Persist)
	assert.Equal(t, []byte("xls-bytes"), uc.gotImportRaw)
}

func TestHandler_HandleImport_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		anonymous  bool
		limit      int64
		ucErr      error
		wantStatus int
	}{
		{name: "no operator", target: "/legacy/import?year=2023&filename=a.xlsx", body: "x", anonymous: true, wantStatus: http.StatusUnauthorized},
		{name: "bad year", target: "/legacy/import?year=abc&filename=a.xlsx", body: "x", wantStatus: http.StatusBadRequest},
		{name: "bad persist", target: "/legacy/import?year=2023&filename=a.xlsx&persist=maybe", body: "x", wantStatus: http.StatusBadRequest},
		{name: "missing filename", target: "/legacy/import?year=2023", body: "x", wantStatus: http.StatusBadRequest},
		{name: "empty body", target: "/legacy/import?year=2023&filename=a.xlsx", wantStatus: http.StatusBadRequest},
		{name: "too large", target: "/legacy/import?year=2023&filename=a.xlsx", body: "0123456789", limit: 4, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "unsupported format", target: "/legacy/import?year=2023&filename=a.csv", body: "x", ucErr: normalizeBookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown variant", target: "/legacy/import?year=2023&filename=a.xlsx&variant=v9", body: "x", ucErr: normalizeBookings.ErrUnknownVariant, wantStatus: http.StatusBadRequest},
		{name: "unreadable", target: "/legacy/import?year=2023&filename=a.xlsx", body: "x", ucErr: normalizeBookings.ErrUnreadableFile, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", target: "/legacy/import?year=2023&filename=a.xlsx", body: "x", ucErr: normalizeBookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := tt.limit
			if limit == 0 {
				limit = 1 << 20
			}
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, limit, logger.Nop{})

			req := httptest.NewRequest(http.MethodPost, tt.target, bytes.NewReader([]byte(tt.body)))
			if !tt.anonymous {
				req = withOperator(req)
			}
			rec := httptest.NewRecorder()
			h.HandleImport(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
