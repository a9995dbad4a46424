package search

import (
	"sort"
	"strconv"

	"github.com/Domenick1991/skyfare/internal/domain"
)

// ApplyFilters projects a result set through the client-side filters. It
// allocates new slices and never touches its input.
func ApplyFilters(results [][]domain.SegmentFlight, f domain.SearchFilters) [][]domain.SegmentFlight {
	airlines := toSet(f.Airlines)
	stops := toSet(f.Stops)
	slots := toSet(f.TimeSlots)

	out := make([][]domain.SegmentFlight, len(results))
	for i, segment := range results {
		kept := make([]domain.SegmentFlight, 0, len(segment))
		for _, sf := range segment {
			if f.PriceMax > 0 && sf.Price > f.PriceMax {
				continue
			}
			if len(airlines) > 0 && !airlines[sf.Airline] {
				continue
			}
			if len(stops) > 0 && !stops[strconv.Itoa(sf.Stops)] {
				continue
			}
			if len(slots) > 0 && !slots[string(sf.TimeSlot)] {
				continue
			}
			kept = append(kept, sf)
		}
		out[i] = kept
	}
	return out
}

// AirlineOptions lists the distinct airlines in a result set, sorted.
func AirlineOptions(results [][]domain.SegmentFlight) []string {
	set := map[string]bool{}
	for _, segment := range results {
		for _, sf := range segment {
			if sf.Airline != "" {
				set[sf.Airline] = true
			}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
