package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/skyfare/internal/domain"
)

const (
	dateLayout         = "2006-01-02"
	maxMultiCityRoutes = 3
)

// Normalize trims the city names of every route. The request's route slice
// is not modified.
func Normalize(req domain.SearchRequest) domain.SearchRequest {
	routes := make([]domain.Route, len(req.Routes))
	for i, r := range req.Routes {
		r.From, r.To = strings.TrimSpace(r.From), strings.TrimSpace(r.To)
		routes[i] = r
	}
	req.Routes = routes
	return req
}

// Validate checks a trip request before any inventory is read. Cities are
// compared after Normalize.
func Validate(req domain.SearchRequest) error {
	req = Normalize(req)
	switch req.TripType {
	case domain.TripTypeOneWay:
		if len(req.Routes) != 1 {
			return domain.NewValidationError("one-way trips require exactly one route")
		}
	case domain.TripTypeRoundTrip:
		if len(req.Routes) != 2 {
			return domain.NewValidationError("round-trip requires exactly two routes")
		}
	case domain.TripTypeMultiCity:
		if len(req.Routes) == 0 {
			return domain.NewValidationError("multi-city trips require at least one route")
		}
		if len(req.Routes) > maxMultiCityRoutes {
			return domain.NewValidationError("multi-city trips are limited to %d destinations", maxMultiCityRoutes)
		}
	default:
		return domain.NewValidationError("invalid trip type %q", req.TripType)
	}

	dates := make([]time.Time, len(req.Routes))
	for i, r := range req.Routes {
		if r.From == "" || r.To == "" || r.From == r.To {
			return domain.NewValidationError("invalid route for segment %d: missing or same from/to city", i+1)
		}
		if r.Date != "" {
			d, err := time.Parse(dateLayout, r.Date)
			if err != nil {
				return domain.NewValidationError("invalid date %q for segment %d", r.Date, i+1)
			}
			dates[i] = d
		}
	}

	switch req.TripType {
	case domain.TripTypeRoundTrip:
		out, back := req.Routes[0], req.Routes[1]
		if out.From != back.To || out.To != back.From {
			return domain.NewValidationError("round-trip requires return route to match origin and destination")
		}
		if before(dates[1], dates[0]) {
			return domain.NewValidationError("return date must not be before departure date")
		}
	case domain.TripTypeMultiCity:
		for i := 1; i < len(dates); i++ {
			if before(dates[i], dates[i-1]) {
				return domain.NewValidationError("date for segment %d must not be before segment %d", i+1, i)
			}
		}
	}

	seen := make(map[string]int, len(req.Routes))
	for i, r := range req.Routes {
		key := r.From + "\x00" + r.To
		if prev, ok := seen[key]; ok {
			return domain.NewValidationError("duplicate route %s → %s in segments %d and %d", r.From, r.To, prev+1, i+1)
		}
		seen[key] = i
	}
	return nil
}

// before compares two parsed dates; unset dates never order.
func before(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return a.Before(b)
}

func segmentLabel(tripType domain.TripType, i int) string {
	switch {
	case tripType == domain.TripTypeMultiCity:
		return fmt.Sprintf("segment%d", i+1)
	case i == 0:
		return "outbound"
	default:
		return "return"
	}
}
