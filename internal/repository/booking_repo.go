package repository

import (
	"context"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/storage"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	SaveAll(ctx context.Context, bookings []domain.Booking) error
}

type KVBookingRepository struct {
	bookings collection[domain.Booking]
}

func NewBookingRepository(store storage.Store) BookingRepository {
	return &KVBookingRepository{bookings: collection[domain.Booking]{store: store, key: storage.KeyBookings}}
}

func (r *KVBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.bookings.list(ctx)
}

func (r *KVBookingRepository) SaveAll(ctx context.Context, bookings []domain.Booking) error {
	return r.bookings.save(ctx, bookings)
}

var _ BookingRepository = (*KVBookingRepository)(nil)
