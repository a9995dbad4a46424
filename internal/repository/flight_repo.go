package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/storage"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	SaveAll(ctx context.Context, flights []domain.Flight) error
	Exists(ctx context.Context) (bool, error)
}

type KVFlightRepository struct {
	flights collection[domain.Flight]
}

func NewFlightRepository(store storage.Store) FlightRepository {
	return &KVFlightRepository{flights: collection[domain.Flight]{store: store, key: storage.KeyFlights}}
}

func (r *KVFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.flights.list(ctx)
}

func (r *KVFlightRepository) SaveAll(ctx context.Context, flights []domain.Flight) error {
	return r.flights.save(ctx, flights)
}

// Exists reports whether the flight list has ever been written.
func (r *KVFlightRepository) Exists(ctx context.Context) (bool, error) {
	var raw []domain.Flight
	found, err := r.flights.store.Get(ctx, storage.KeyFlights, &raw)
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, storage.KeyFlights, err)
	}
	return found, nil
}

var _ FlightRepository = (*KVFlightRepository)(nil)
