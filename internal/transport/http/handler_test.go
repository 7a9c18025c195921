package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/metrics"
	"github.com/njprem/Fit_city_Booking/internal/service"
)

type memoryCache struct {
	mu      sync.Mutex
	stored  []domain.Booking
	saveErr error
}

func (m *memoryCache) LoadBookings(context.Context) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.CloneBookings(m.stored), nil
}

func (m *memoryCache) SaveBookings(_ context.Context, list []domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = domain.CloneBookings(list)
	return nil
}

type memoryRecords struct {
	mu      sync.Mutex
	records []domain.BookingRecord
	err     error
}

func (m *memoryRecords) Append(_ context.Context, r domain.BookingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, r)
	return nil
}

func (m *memoryRecords) List(context.Context) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]json.RawMessage, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.Payload)
	}
	return out, nil
}

var handlerNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Destinations: []domain.Destination{
			{ID: 1, Name: "Santorini", Location: "Greece", Country: "Greece", Category: "Beach", Price: 500, Rating: 4.8},
			{ID: 2, Name: "Kyoto", Location: "Japan", Country: "Japan", Category: "Culture", Price: 900, Rating: 4.6},
			{ID: 3, Name: "Banff", Location: "Canada", Country: "Canada", Category: "Adventure", Price: 1200, Rating: 4.2},
		},
		Packages: []domain.Package{
			{ID: 101, DestinationID: 1, Name: "Island Escape", Price: 1500, Duration: "5 days"},
			{ID: 102, DestinationID: 2, Name: "Temple Trail", Price: 2100, Duration: "7 days"},
		},
	}
}

type apiHarness struct {
	e     *echo.Echo
	cache *memoryCache
	store *service.Store
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	cache := &memoryCache{}
	store := service.NewStore(context.Background(), testCatalog(), cache, zap.NewNop())
	svc := service.NewBookingService(store, nil, service.BookingServiceConfig{})
	svc.SetClock(func() time.Time { return handlerNow })
	svc.SetIDGenerator(func() string { return "bk-1" })

	e := NewRouter([]string{"*"}, zap.NewNop(), metrics.New("test"))
	RegisterCatalog(e, store)
	RegisterPreferences(e, store)
	RegisterBookings(e, store, svc)
	return &apiHarness{e: e, cache: cache, store: store}
}

func (h *apiHarness) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	h.do(http.MethodGet, "/api/v1/packages", "")
	rec = h.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/packages"`)
}

func TestListDestinationsUsesQuery(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/api/v1/destinations?search=KYO", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Destinations []domain.Destination `json:"destinations"`
		Count        int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Kyoto", body.Destinations[0].Name)
}

func TestListDestinationsFallsBackToStoredFilters(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPatch, "/api/v1/filters", `{"category":"Adventure"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/destinations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Destinations []domain.Destination `json:"destinations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Destinations, 1)
	assert.Equal(t, 3, body.Destinations[0].ID)

	// explicit query parameters replace the stored criteria
	rec = h.do(http.MethodGet, "/api/v1/destinations?location=All", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Destinations, 3)
}

func TestListDestinationsRejectsBadNumber(t *testing.T) {
	h := newAPIHarness(t)
	rec := h.do(http.MethodGet, "/api/v1/destinations?min_price=cheap", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_price")
}

func TestDestinationOptionsAndDetail(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/api/v1/destinations/options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var opts struct {
		Locations  []string `json:"locations"`
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"All", "Greece", "Japan", "Canada"}, opts.Locations)
	assert.Equal(t, []string{"All", "Beach", "Culture", "Adventure"}, opts.Categories)

	rec = h.do(http.MethodGet, "/api/v1/destinations/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Destination domain.Destination `json:"destination"`
		Packages    []domain.Package   `json:"packages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Santorini", detail.Destination.Name)
	require.Len(t, detail.Packages, 1)
	assert.Equal(t, 101, detail.Packages[0].ID)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/destinations/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/destinations/abc", "").Code)
}

func TestFeaturedPackages(t *testing.T) {
	h := newAPIHarness(t)
	rec := h.do(http.MethodGet, "/api/v1/packages/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Packages []domain.Package `json:"packages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Packages, 2)
}

func TestProfileUpdate(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPatch, "/api/v1/profile", `{"name":"  Ada  "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", h.store.User().Name)

	rec = h.do(http.MethodPatch, "/api/v1/profile", `{"email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, string(body["fields"]), "email")
}

const validBooking = `{
	"full_name": "Ada Lovelace",
	"email": "ada@example.com",
	"phone": "+44 20 7946 0000",
	"destination_id": 1,
	"start_date": "2026-04-01",
	"travelers": 2,
	"extras": ["insurance", " "]
}`

func TestCreateAndCancelBooking(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/bookings", validBooking)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Booking domain.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "bk-1", created.Booking.ID)
	assert.Equal(t, 1000.0, created.Booking.TotalPrice)
	assert.Equal(t, []string{"insurance"}, created.Booking.Extras)
	assert.Equal(t, "Santorini", created.Booking.DestinationName)
	assert.Len(t, h.cache.stored, 1)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/v1/bookings/bk-1", "").Code)

	rec = h.do(http.MethodDelete, "/api/v1/bookings/bk-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, h.cache.stored)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, "/api/v1/bookings/bk-1", "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/bookings/bk-1", "").Code)
}

func TestCreateBookingValidation(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/bookings", `{"destination_id": 42, "travelers": 0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, field := range []string{"full_name", "email", "phone", "start_date", "travelers", "destination_id"} {
		assert.Contains(t, body.Fields, field)
	}
	assert.Empty(t, h.store.Bookings())
}

func TestCreateBookingRejectsBadDate(t *testing.T) {
	h := newAPIHarness(t)
	body := strings.Replace(validBooking, "2026-04-01", "April first", 1)
	rec := h.do(http.MethodPost, "/api/v1/bookings", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")
}

func TestCreateBookingLocalWriteFailure(t *testing.T) {
	h := newAPIHarness(t)
	h.cache.saveErr = errors.New("disk full")

	rec := h.do(http.MethodPost, "/api/v1/bookings", validBooking)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "saved locally")
	assert.Empty(t, h.store.Bookings())
}

func TestParseStartDate(t *testing.T) {
	got, err := parseStartDate("2026-05-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), got)

	got, err = parseStartDate("2026-05-02T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC), got)

	got, err = parseStartDate("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func newRecordsRouter(t *testing.T, repo *memoryRecords, logger *zap.Logger) *echo.Echo {
	t.Helper()
	svc, err := service.NewBookingRecordService(repo, zap.NewNop(), nil)
	require.NoError(t, err)
	e := NewRouter([]string{"*"}, logger, nil)
	RegisterBookingRecords(e, svc)
	return e
}

func postRecord(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecordAPI(t *testing.T) {
	repo := &memoryRecords{}
	e := newRecordsRouter(t, repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = postRecord(e, `{"id":"r-1","full_name":"Ada","travelers":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"id":"r-1","full_name":"Ada","travelers":2}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.JSONEq(t, `[{"id":"r-1","full_name":"Ada","travelers":2}]`, rec.Body.String())
}

func TestRecordAPIEchoesBodyVerbatim(t *testing.T) {
	repo := &memoryRecords{}
	e := newRecordsRouter(t, repo, zap.NewNop())

	bodies := []string{
		`{"id":"r-1","start_date":"2026-11-20"}`,
		`{"id":"r-2","date":"2026-11-20","totalPrice":1500,"user":{"name":"Ada","tier":"gold"},"notes":null}`,
		`{"id":1760606400000,"destination":"Kyoto"}`,
	}
	for _, body := range bodies {
		rec := postRecord(e, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, body, rec.Body.String())
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "["+strings.Join(bodies, ",")+"]", rec.Body.String())
	require.Len(t, repo.records, 3)
	assert.Equal(t, "1760606400000", repo.records[2].ID)
}

func TestRecordAPIRejectsMissingID(t *testing.T) {
	repo := &memoryRecords{}
	e := newRecordsRouter(t, repo, zap.NewNop())

	for _, body := range []string{`{"full_name":"Ada"}`, `{"id":""}`, `{"id":`, `[]`, ``} {
		rec := postRecord(e, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	assert.Empty(t, repo.records)
}

func TestRecordAPIStorageFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := newRecordsRouter(t, &memoryRecords{err: errors.New("bucket gone")}, zap.New(core))

	rec := postRecord(e, `{"id":"r-1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	stored := logs.FilterMessage("store booking record").All()
	require.Len(t, stored, 1)
	assert.Equal(t, "/api/bookings", stored[0].ContextMap()["route"])
	assert.Equal(t, "bucket gone", stored[0].ContextMap()["error"])
	assert.Len(t, logs.FilterMessage("list booking records").All(), 1)
}

func TestWriteErrorLogsThroughRouterLogger(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := NewRouter([]string{"*"}, zap.New(core), nil)
	e.GET("/boom", func(c echo.Context) error {
		return writeError(c, errors.New("disk on fire"))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := logs.FilterMessage("unhandled error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "disk on fire", entries[0].ContextMap()["error"])
	assert.Equal(t, http.MethodGet, entries[0].ContextMap()["method"])
}

func TestValidationFieldsFlattensJoinedErrors(t *testing.T) {
	err := errors.Join(
		domain.ValidationError{Field: "email", Msg: "email is required"},
		domain.ValidationError{Field: "email", Msg: "email is invalid"},
		domain.ValidationError{Field: "phone", Msg: "phone number is required"},
	)
	fields := validationFields(err)
	assert.Equal(t, map[string]string{
		"email": "email is required",
		"phone": "phone number is required",
	}, fields)
}

func TestSwaggerDocServedAsJSON(t *testing.T) {
	e := echo.New()
	RegisterSwagger(e, "../../../docs/swagger.yaml")

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])

	core, logs := observer.New(zap.ErrorLevel)
	e = NewRouter([]string{"*"}, zap.New(core), nil)
	RegisterSwagger(e, "missing.yaml")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, logs.FilterMessage("load swagger document").All(), 1)
}
