package domain

import "time"

type TripType string

const (
	TripTypeOneWay    TripType = "one-way"
	TripTypeRoundTrip TripType = "round-trip"
	TripTypeMultiCity TripType = "multi-city"
)

type Route struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

type SearchRequest struct {
	Routes        []Route  `json:"routes"`
	TripType      TripType `json:"tripType"`
	MaxDuration   float64  `json:"maxDuration,omitempty"`
	AircraftTypes []string `json:"aircraftTypes,omitempty"`
	FlexibleDates bool     `json:"flexibleDates,omitempty"`
}

// SegmentFlight is a matched flight tagged with the leg it answers.
type SegmentFlight struct {
	Flight
	FlightDate string `json:"flightDate"`
	Segment    string `json:"segment"`
}

type SearchFilters struct {
	PriceMax  int64    `json:"priceMax"`
	Airlines  []string `json:"airlines"`
	Stops     []string `json:"stops"`
	TimeSlots []string `json:"timeSlots"`
}

type SearchCacheEntry struct {
	Data      [][]SegmentFlight `json:"data"`
	Timestamp time.Time         `json:"timestamp"`
}
