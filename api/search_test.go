package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func segmentResults() [][]domain.SegmentFlight {
	return [][]domain.SegmentFlight{{
		{Flight: domain.Flight{ID: "a", Airline: "IndiGo", Price: 4000, TimeSlot: domain.TimeSlotMorning}, FlightDate: "2025-06-10", Segment: "Outbound"},
		{Flight: domain.Flight{ID: "b", Airline: "Vistara", Price: 9000, TimeSlot: domain.TimeSlotEvening}, FlightDate: "2025-06-10", Segment: "Outbound"},
	}}
}

func TestSearchHandler_search(t *testing.T) {
	svc := &MockSearchUseCase{}
	r := newRouter(NewSearchHandler(svc, 20000), "")

	req := domain.SearchRequest{TripType: domain.TripTypeOneWay, Routes: []domain.Route{{From: "Delhi", To: "Mumbai", Date: "2025-06-10"}}}
	svc.On("Search", mock.Anything, req).Return(segmentResults(), nil).Once()

	w := doJSON(r, http.MethodPost, "/search", userToken, searchRequest{SearchRequest: req, Filters: &domain.SearchFilters{PriceMax: 5000}})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Segments, 1)
	require.Len(t, resp.Segments[0], 1)
	assert.Equal(t, "a", resp.Segments[0][0].ID)
	assert.Equal(t, []string{"IndiGo", "Vistara"}, resp.Airlines)
	assert.Equal(t, [][]string{{"2025-06-10"}}, resp.DateWindows)
	assert.Equal(t, int64(20000), resp.PriceMax)
	svc.AssertExpectations(t)
}

func TestSearchHandler_NoFlights(t *testing.T) {
	svc := &MockSearchUseCase{}
	r := newRouter(NewSearchHandler(svc, 20000), "")

	svc.On("Search", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w for segment 2 (Goa → Pune)", domain.ErrNoFlights)).Once()

	w := doJSON(r, http.MethodPost, "/search", userToken, domain.SearchRequest{TripType: domain.TripTypeMultiCity})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "segment 2")
}

func TestSearchHandler_RequiresSession(t *testing.T) {
	svc := &MockSearchUseCase{}
	r := newRouter(NewSearchHandler(svc, 20000), "")

	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPost, "/search", "", domain.SearchRequest{}).Code)
	svc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}
