package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/service/flights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlightHandler_list(t *testing.T) {
	svc := &MockFlightUseCase{}
	r := newRouter(NewFlightHandler(svc), "/flights")

	list := []domain.Flight{{ID: "FL001", From: "Delhi", To: "Mumbai", Price: 5200, SeatsAvailable: 50}}
	svc.On("List", mock.Anything).Return(list, nil).Once()

	w := doJSON(r, http.MethodGet, "/flights", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got []domain.Flight
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, list, got)
	svc.AssertExpectations(t)
}

func TestFlightHandler_get(t *testing.T) {
	svc := &MockFlightUseCase{}
	r := newRouter(NewFlightHandler(svc), "/flights")

	svc.On("GetByID", mock.Anything, "FL001").Return(&domain.Flight{ID: "FL001"}, nil).Once()
	svc.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrFlightNotFound).Once()

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/flights/FL001", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/flights/nope", "", nil).Code)
	svc.AssertExpectations(t)
}

func TestFlightHandler_create_RequiresAdmin(t *testing.T) {
	svc := &MockFlightUseCase{}
	r := newRouter(NewFlightHandler(svc), "/flights")
	body := flights.FlightInput{From: "Pune", To: "Goa", Airline: "IndiGo", Price: 3000, DepartureTime: "08:00", ArrivalTime: "09:10"}

	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPost, "/flights", "", body).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(r, http.MethodPost, "/flights", userToken, body).Code)
	svc.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)

	svc.On("Add", mock.Anything, body).Return(&domain.Flight{ID: "new", From: "Pune", To: "Goa"}, nil).Once()
	w := doJSON(r, http.MethodPost, "/flights", adminToken, body)
	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestFlightHandler_create_ValidationError(t *testing.T) {
	svc := &MockFlightUseCase{}
	r := newRouter(NewFlightHandler(svc), "/flights")

	svc.On("Add", mock.Anything, mock.Anything).
		Return(nil, &domain.ValidationError{Message: "invalid flight", Fields: map[string]string{"price": "must be positive"}}).Once()

	w := doJSON(r, http.MethodPost, "/flights", adminToken, flights.FlightInput{From: "Pune"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "must be positive", resp.Fields["price"])
}

func TestFlightHandler_update(t *testing.T) {
	svc := &MockFlightUseCase{}
	r := newRouter(NewFlightHandler(svc), "/flights")

	svc.On("GetByID", mock.Anything, "FL001").Return(&domain.Flight{ID: "FL001", Price: 5200}, nil).Once()
	svc.On("Edit", mock.Anything, flights.FlightInput{ID: "FL001", Price: 6000}).Return(nil).Once()
	svc.On("GetByID", mock.Anything, "FL001").Return(&domain.Flight{ID: "FL001", Price: 6000}, nil).Once()

	w := doJSON(r, http.MethodPut, "/flights/FL001", adminToken, map[string]interface{}{"price": 6000})
	assert.Equal(t, http.StatusOK, w.Code)

	var got domain.Flight
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(6000), got.Price)
	svc.AssertExpectations(t)
}

func TestFlightHandler_update_UnknownFlight(t *testing.T) {
	svc := &MockFlightUseCase{}
	r := newRouter(NewFlightHandler(svc), "/flights")

	svc.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrFlightNotFound).Once()

	w := doJSON(r, http.MethodPut, "/flights/ghost", adminToken, map[string]interface{}{"price": 6000})
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything)
}

func TestFlightHandler_delete(t *testing.T) {
	svc := &MockFlightUseCase{}
	r := newRouter(NewFlightHandler(svc), "/flights")

	svc.On("Delete", mock.Anything, "FL001").Return(nil).Once()

	w := doJSON(r, http.MethodDelete, "/flights/FL001", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
