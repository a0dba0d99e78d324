package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triplog/backend/internal/domain"
	"github.com/triplog/backend/internal/handler"
)

// ---- mock servicers --------------------------------------------------------

// mockTripServicer is a hand-written test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, tripID string) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, tripID string, changes domain.TripChanges) (domain.Trip, error)
	delete  func(ctx context.Context, tripID string) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, tripID string) (domain.Trip, error) {
	return m.getByID(ctx, tripID)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, tripID string, changes domain.TripChanges) (domain.Trip, error) {
	return m.update(ctx, tripID, changes)
}
func (m *mockTripServicer) Delete(ctx context.Context, tripID string) error {
	return m.delete(ctx, tripID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

// newRouter wires the mocks into the full route tree so tests exercise real
// URL params and method matching, not just the handler funcs.
func newRouter(trips *mockTripServicer, steps *mockStepServicer) http.Handler {
	return handler.NewRouter(handler.NewServer(trips, steps))
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "response body: %s", rec.Body.String())
	return v
}

func wireDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTrip() domain.Trip {
	d := wireDate(2014, 3, 1)
	return domain.Trip{
		ID:          "south-america-2014",
		Name:        "South America",
		TripDate:    &d,
		Description: "six months on the road",
		Steps:       []domain.StepSummary{},
		CreatedAt:   wireDate(2014, 2, 1),
		UpdatedAt:   wireDate(2014, 2, 2),
	}
}

// ---- CreateTrip ------------------------------------------------------------

func TestCreateTrip(t *testing.T) {
	var received domain.Trip
	router := newRouter(&mockTripServicer{
		create: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			received = trip
			out := sampleTrip()
			out.Name = trip.Name
			return out, nil
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodPost, "/trips",
		`{"tripName":"South America","tripDate":"2014-03-01","description":"six months on the road"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "South America", received.Name)
	require.NotNil(t, received.TripDate)
	assert.Equal(t, wireDate(2014, 3, 1), *received.TripDate)
	assert.Equal(t, "six months on the road", received.Description)

	body := decodeBody[handler.TripResponse](t, rec)
	assert.Equal(t, "south-america-2014", body.TripID)
}

func TestCreateTrip_ValidationError(t *testing.T) {
	router := newRouter(&mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ValidateTrip(domain.Trip{})
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodPost, "/trips", `{"tripName":""}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.NotEmpty(t, body.Error.Message)
}

func TestCreateTrip_MalformedBody(t *testing.T) {
	router := newRouter(&mockTripServicer{}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodPost, "/trips", `{"tripName": nope}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
}

func TestCreateTrip_UnknownFieldRejected(t *testing.T) {
	router := newRouter(&mockTripServicer{}, &mockStepServicer{})

	// A typo'd field must fail loudly, not silently mean "absent".
	rec := doJSON(t, router, http.MethodPost, "/trips", `{"tirpName":"South America"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- ListTrips / GetTrip ---------------------------------------------------

func TestListTrips(t *testing.T) {
	router := newRouter(&mockTripServicer{
		list: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{sampleTrip()}, nil
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodGet, "/trips", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[[]handler.TripResponse](t, rec)
	require.Len(t, body, 1)
	assert.Equal(t, "south-america-2014", body[0].TripID)
	assert.Equal(t, "South America", body[0].TripName)
	require.NotNil(t, body[0].TripDate)
	assert.Equal(t, "2014-03-01", body[0].TripDate.Format("2006-01-02"))
}

func TestListTrips_EmptyIsJSONArray(t *testing.T) {
	router := newRouter(&mockTripServicer{
		list: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{}, nil
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodGet, "/trips", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetTrip(t *testing.T) {
	router := newRouter(&mockTripServicer{
		getByID: func(_ context.Context, tripID string) (domain.Trip, error) {
			assert.Equal(t, "south-america-2014", tripID)
			trip := sampleTrip()
			trip.Steps = []domain.StepSummary{{
				ID: "lake-titicaca-2014-03-28", TripID: tripID, Name: "Lake Titicaca",
				FromDate: wireDate(2014, 3, 28), ToDate: wireDate(2014, 3, 30),
			}}
			return trip, nil
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodGet, "/trips/south-america-2014", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[handler.TripResponse](t, rec)
	require.Len(t, body.Steps, 1)
	assert.Equal(t, "lake-titicaca-2014-03-28", body.Steps[0].StepID)
	assert.Equal(t, "Lake Titicaca", body.Steps[0].StepName)
}

func TestGetTrip_NotFound(t *testing.T) {
	router := newRouter(&mockTripServicer{
		getByID: func(_ context.Context, _ string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodGet, "/trips/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[handler.ErrorResponse](t, rec)
	assert.Equal(t, "not_found", body.Error.Code)
}

// ---- UpdateTrip ------------------------------------------------------------

func TestUpdateTrip_SparseBody(t *testing.T) {
	var received domain.TripChanges
	router := newRouter(&mockTripServicer{
		update: func(_ context.Context, tripID string, changes domain.TripChanges) (domain.Trip, error) {
			received = changes
			return sampleTrip(), nil
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodPut, "/trips/south-america-2014",
		`{"description":"rewritten"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, received.Name, "absent fields arrive as nil pointers")
	assert.Nil(t, received.TripDate)
	require.NotNil(t, received.Description)
	assert.Equal(t, "rewritten", *received.Description)
}

func TestUpdateTrip_NotFound(t *testing.T) {
	router := newRouter(&mockTripServicer{
		update: func(_ context.Context, _ string, _ domain.TripChanges) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodPut, "/trips/missing", `{}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTrip_ValidationError(t *testing.T) {
	router := newRouter(&mockTripServicer{
		update: func(_ context.Context, _ string, _ domain.TripChanges) (domain.Trip, error) {
			return domain.Trip{}, domain.ValidateTrip(domain.Trip{})
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodPut, "/trips/south-america-2014", `{"tripName":""}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- DeleteTrip ------------------------------------------------------------

func TestDeleteTrip(t *testing.T) {
	var deletedID string
	router := newRouter(&mockTripServicer{
		delete: func(_ context.Context, tripID string) error {
			deletedID = tripID
			return nil
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodDelete, "/trips/south-america-2014", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "south-america-2014", deletedID)
}

func TestDeleteTrip_NotFound(t *testing.T) {
	router := newRouter(&mockTripServicer{
		delete: func(_ context.Context, _ string) error {
			return domain.ErrNotFound
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodDelete, "/trips/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTrip_InternalError(t *testing.T) {
	router := newRouter(&mockTripServicer{
		delete: func(_ context.Context, _ string) error {
			return errors.New("store unavailable")
		},
	}, &mockStepServicer{})

	rec := doJSON(t, router, http.MethodDelete, "/trips/south-america-2014", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[handler.ErrorResponse](t, rec)
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "store unavailable",
		"internal details must not leak to clients")
}
