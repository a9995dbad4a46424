package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/skyfare/config"
	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*App, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Defaults()
	cfg.Search.Latency = -1
	cfg.Payment.Latency = -1
	cfg.HTTP.RateLimit = 1000
	cfg.HTTP.RateBurst = 1000

	app, err := NewApp(cfg, storage.NewMemoryStore(), nil, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, app.Seed(context.Background()))
	return app, NewRouter(cfg, app.Deps, zap.NewNop())
}

func call(t *testing.T, h http.Handler, method, path, token string, body, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestRouter_BookingJourney(t *testing.T) {
	_, h := newTestApp(t)

	var sess domain.Session
	code := call(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "hunter22",
	}, &sess)
	require.Equal(t, http.StatusCreated, code)
	token := sess.Token

	var found struct {
		Segments [][]domain.SegmentFlight `json:"segments"`
		Airlines []string                 `json:"airlines"`
	}
	code = call(t, h, http.MethodPost, "/api/v1/search", token, map[string]interface{}{
		"tripType": "one-way",
		"routes":   []map[string]string{{"from": "Delhi", "to": "Mumbai", "date": "2030-01-15"}},
	}, &found)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, found.Segments, 1)
	require.NotEmpty(t, found.Segments[0])
	flight := found.Segments[0][0]

	var booked domain.Booking
	code = call(t, h, http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"flightId":      flight.ID,
		"paymentMethod": "card",
		"passengers":    []map[string]interface{}{{"name": "Asha", "age": 29}, {"name": "Ravi", "age": 31}},
		"card":          map[string]string{"cardNumber": "4111 1111 1111 1111", "expiry": "09/29", "cvv": "123", "cardName": "Asha"},
	}, &booked)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, flight.Price*2, booked.TotalPrice)

	var after domain.Flight
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/v1/flights/"+flight.ID, "", nil, &after))
	assert.Equal(t, flight.SeatsBooked+2, after.SeatsBooked)

	var mine []domain.BookingView
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/v1/bookings", token, nil, &mine))
	require.Len(t, mine, 1)
	assert.True(t, mine[0].FlightResolved)

	var cancelled domain.Booking
	require.Equal(t, http.StatusOK, call(t, h, http.MethodDelete, "/api/v1/bookings/"+booked.ID, token, nil, &cancelled))
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)

	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/v1/flights/"+flight.ID, "", nil, &after))
	assert.Equal(t, flight.SeatsBooked, after.SeatsBooked)

	require.Equal(t, http.StatusNoContent, call(t, h, http.MethodPost, "/api/v1/auth/logout", token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, call(t, h, http.MethodGet, "/api/v1/bookings", token, nil, nil))
}

func TestRouter_AdminGuard(t *testing.T) {
	_, h := newTestApp(t)

	var user, admin domain.Session
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": "U", "email": "u@example.com", "password": "hunter22",
	}, &user))
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": "A", "email": "a@example.com", "password": "hunter22", "role": "Admin",
	}, &admin))

	newFlight := map[string]interface{}{
		"from": "Pune", "to": "Goa", "airline": "IndiGo", "price": 3100, "departureTime": "07:00", "arrivalTime": "08:10",
	}
	assert.Equal(t, http.StatusForbidden, call(t, h, http.MethodPost, "/api/v1/flights", user.Token, newFlight, nil))

	var created domain.Flight
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/api/v1/flights", admin.Token, newFlight, &created))
	assert.Equal(t, 50, created.SeatsAvailable)

	var summary struct {
		Flights int `json:"flights"`
	}
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/v1/admin/summary", admin.Token, nil, &summary))
	assert.Equal(t, 21, summary.Flights)
}

func TestRouter_Health(t *testing.T) {
	app, _ := newTestApp(t)
	cfg := config.Defaults()

	app.Deps.Health["store"] = func(context.Context) error { return nil }
	h := NewRouter(cfg, app.Deps, zap.NewNop())
	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/v1/health", "", nil, nil))

	app.Deps.Health["kafka"] = func(context.Context) error { return errors.New("unreachable") }
	h = NewRouter(cfg, app.Deps, zap.NewNop())
	var body map[string]interface{}
	assert.Equal(t, http.StatusServiceUnavailable, call(t, h, http.MethodGet, "/api/v1/health", "", nil, &body))
	assert.Equal(t, "unreachable", body["checks"].(map[string]interface{})["kafka"])
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, _ := newTestApp(t)
	cfg := config.Defaults()
	cfg.HTTP.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, Run(ctx, cfg, app.Deps, zap.NewNop()))
}
