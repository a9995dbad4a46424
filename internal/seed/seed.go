// Package seed fills an empty store with the demo flight catalogue.
package seed

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/logger"
	"go.uber.org/zap"
)

type Prober interface {
	Exists(ctx context.Context) (bool, error)
}

type Replacer interface {
	Replace(ctx context.Context, flights []domain.Flight) error
}

// Flights writes the catalogue only when the flights key has never been
// set. An empty list written by an admin counts as set.
func Flights(ctx context.Context, repo Prober, inventory Replacer, log *zap.Logger) (bool, error) {
	log = logger.OrNop(log)

	found, err := repo.Exists(ctx)
	if err != nil {
		return false, err
	}
	if found {
		log.Debug("flight catalogue present")
		return false, nil
	}

	flights := Catalogue()
	if err := inventory.Replace(ctx, flights); err != nil {
		return false, err
	}
	log.Info("seeded flight catalogue", zap.Int("flights", len(flights)))
	return true, nil
}

// Catalogue returns a fresh copy of the demo flights.
func Catalogue() []domain.Flight {
	out := make([]domain.Flight, len(catalogue))
	copy(out, catalogue)
	return out
}

var catalogue = []domain.Flight{
	flight("FL001", "Delhi", "Mumbai", "IndiGo", 5200, 0, "06:00", "08:10", "2h 10m", "A320neo"),
	flight("FL002", "Delhi", "Mumbai", "Air India", 6100, 0, "13:30", "15:45", "2h 15m", "A321"),
	flight("FL003", "Delhi", "Mumbai", "Vistara", 7400, 1, "19:15", "23:05", "3h 50m", "Boeing 737"),
	flight("FL004", "Mumbai", "Delhi", "IndiGo", 5000, 0, "07:20", "09:30", "2h 10m", "A320neo"),
	flight("FL005", "Mumbai", "Delhi", "SpiceJet", 4300, 0, "21:40", "23:55", "2h 15m", "Boeing 737"),
	flight("FL006", "Bengaluru", "Delhi", "Air India", 6900, 0, "09:00", "11:50", "2h 50m", "A321"),
	flight("FL007", "Delhi", "Bengaluru", "Akasa Air", 5600, 0, "15:10", "18:00", "2h 50m", "Boeing 737 MAX"),
	flight("FL008", "Mumbai", "Bengaluru", "IndiGo", 3800, 0, "10:15", "12:00", "1h 45m", "A320neo"),
	flight("FL009", "Bengaluru", "Mumbai", "Vistara", 4500, 0, "18:30", "20:20", "1h 50m", "A320neo"),
	flight("FL010", "Chennai", "Kolkata", "IndiGo", 4900, 0, "05:45", "08:10", "2h 25m", "A320neo"),
	flight("FL011", "Kolkata", "Chennai", "Air India", 5300, 1, "14:00", "18:20", "4h 20m", "A319"),
	flight("FL012", "Hyderabad", "Goa", "SpiceJet", 3500, 0, "11:25", "12:45", "1h 20m", "Q400"),
	flight("FL013", "Goa", "Hyderabad", "IndiGo", 3700, 0, "16:40", "18:00", "1h 20m", "ATR 72"),
	flight("FL014", "Pune", "Delhi", "Vistara", 6200, 0, "08:05", "10:15", "2h 10m", "A320neo"),
	flight("FL015", "Delhi", "Pune", "IndiGo", 5800, 0, "20:00", "22:10", "2h 10m", "A320neo"),
	flight("FL016", "Ahmedabad", "Kolkata", "Akasa Air", 6600, 1, "12:10", "17:05", "4h 55m", "Boeing 737 MAX"),
	flight("FL017", "Jaipur", "Mumbai", "SpiceJet", 4100, 0, "23:15", "01:10", "1h 55m", "Boeing 737"),
	flight("FL018", "Mumbai", "Goa", "Air India", 3200, 0, "06:50", "08:00", "1h 10m", "A320neo"),
	flight("FL019", "Kochi", "Delhi", "IndiGo", 8200, 1, "04:30", "10:10", "5h 40m", "A321neo"),
	flight("FL020", "Delhi", "Kochi", "Air India", 8600, 0, "17:45", "21:05", "3h 20m", "Boeing 787"),
}

func flight(id, from, to, airline string, price int64, stops int, dep, arr, duration, aircraft string) domain.Flight {
	return domain.Flight{
		ID:             id,
		From:           from,
		To:             to,
		Airline:        airline,
		Price:          price,
		Stops:          stops,
		DepartureTime:  dep,
		ArrivalTime:    arr,
		Duration:       duration,
		SeatsAvailable: 50,
		TimeSlot:       slotFor(dep),
		Aircraft:       aircraft,
	}
}

func slotFor(departure string) domain.TimeSlot {
	var h, m int
	if _, err := fmt.Sscanf(departure, "%d:%d", &h, &m); err != nil {
		return domain.TimeSlotMorning
	}
	switch {
	case h >= 5 && h < 12:
		return domain.TimeSlotMorning
	case h >= 12 && h < 17:
		return domain.TimeSlotAfternoon
	case h >= 17 && h < 21:
		return domain.TimeSlotEvening
	default:
		return domain.TimeSlotNight
	}
}
