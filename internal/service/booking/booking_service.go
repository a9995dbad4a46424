package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/kafka"
	"github.com/Domenick1991/skyfare/internal/logger"
	"github.com/Domenick1991/skyfare/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultMaxPassengers = 5

	EventBookingCreated   = kafka.EventBookingCreated
	EventBookingCancelled = kafka.EventBookingCancelled
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id, userID string) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]domain.BookingView, error)
	FindBooking(ctx context.Context, id, userID string) (*domain.BookingView, error)
	ListAll(ctx context.Context) ([]domain.BookingView, error)
	Summary(ctx context.Context) (*Summary, error)
}

type Inventory interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	ReserveSeats(ctx context.Context, id string, count int) error
	ReleaseSeats(ctx context.Context, id string, count int) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// UserLookup resolves the owner of a booking for outgoing notifications.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

type CreateBookingInput struct {
	FlightID      string               `json:"flightId"`
	UserID        string               `json:"userId"`
	Passengers    []domain.Passenger   `json:"passengers"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
}

type Summary struct {
	Flights   int   `json:"flights"`
	Bookings  int   `json:"bookings"`
	Confirmed int   `json:"confirmed"`
	Cancelled int   `json:"cancelled"`
	Revenue   int64 `json:"revenue"`
}

type BookingService struct {
	mu                 sync.Mutex
	bookings           repository.BookingRepository
	flights            Inventory
	producer           Producer
	users              UserLookup
	bookingTopic       string
	notificationsTopic string
	maxPassengers      int
	now                func() time.Time
	log                *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithUserLookup(users UserLookup) BookingServiceOption {
	return func(s *BookingService) { s.users = users }
}

func WithMaxPassengers(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.maxPassengers = n
		}
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) { s.now = now }
}

func WithLogger(l *zap.Logger) BookingServiceOption {
	return func(s *BookingService) { s.log = l }
}

func NewBookingService(bookings repository.BookingRepository, flights Inventory, opts ...BookingServiceOption) *BookingService {
	s := &BookingService{
		bookings:      bookings,
		flights:       flights,
		maxPassengers: defaultMaxPassengers,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

// CreateBooking reserves one seat per passenger and records a confirmed
// booking whose price is fixed from the flight's current fare. The seat
// check and the reservation are not atomic across processes.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			return nil, &domain.ValidationError{Message: "flight not found", Err: domain.ErrFlightNotFound}
		}
		return nil, err
	}

	count := len(input.Passengers)
	if remaining := flight.RemainingSeats(); count > remaining {
		return nil, fmt.Errorf("%w: %d requested, %d left", domain.ErrInsufficientSeats, count, remaining)
	}

	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	passengers := make([]domain.Passenger, count)
	copy(passengers, input.Passengers)
	booking := domain.Booking{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		FlightID:      flight.ID,
		Passengers:    passengers,
		TotalPrice:    flight.Price * int64(count),
		Status:        domain.BookingStatusConfirmed,
		PaymentMethod: input.PaymentMethod,
		BookingDate:   s.now().Format("2006-01-02"),
	}

	if err := s.flights.ReserveSeats(ctx, flight.ID, count); err != nil {
		return nil, err
	}
	if err := s.bookings.SaveAll(ctx, append(all, booking)); err != nil {
		if rerr := s.flights.ReleaseSeats(ctx, flight.ID, count); rerr != nil {
			s.log.Error("undo seat reservation", zap.String("flight_id", flight.ID), zap.Error(rerr))
		}
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("flight_id", booking.FlightID),
		zap.Int("passengers", count),
		zap.Int64("total_price", booking.TotalPrice))

	if err := s.publish(ctx, EventBookingCreated, &booking); err != nil {
		s.log.Warn("publish booking event", zap.String("type", EventBookingCreated), zap.String("booking_id", booking.ID), zap.Error(err))
	}
	return &booking, nil
}

// CancelBooking moves a confirmed booking to Cancelled and releases its
// seats. Cancelling an already cancelled booking returns it unchanged. A
// non-empty userID must own the booking.
func (s *BookingService) CancelBooking(ctx context.Context, id, userID string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, id)
	if i < 0 || (userID != "" && all[i].UserID != userID) {
		return nil, domain.ErrBookingNotFound
	}
	current := all[i]
	if current.Status == domain.BookingStatusCancelled {
		return &current, nil
	}

	count := len(current.Passengers)
	released := true
	if err := s.flights.ReleaseSeats(ctx, current.FlightID, count); err != nil {
		if !errors.Is(err, domain.ErrFlightNotFound) {
			return nil, err
		}
		released = false
		s.log.Warn("cancel booking for deleted flight", zap.String("booking_id", id), zap.String("flight_id", current.FlightID))
	}

	all[i].Status = domain.BookingStatusCancelled
	if err := s.bookings.SaveAll(ctx, all); err != nil {
		if released {
			if rerr := s.flights.ReserveSeats(ctx, current.FlightID, count); rerr != nil {
				s.log.Error("undo seat release", zap.String("flight_id", current.FlightID), zap.Error(rerr))
			}
		}
		return nil, err
	}

	cancelled := all[i]
	s.log.Info("booking cancelled", zap.String("booking_id", id), zap.Int("released", count))
	if err := s.publish(ctx, EventBookingCancelled, &cancelled); err != nil {
		s.log.Warn("publish booking event", zap.String("type", EventBookingCancelled), zap.String("booking_id", id), zap.Error(err))
	}
	return &cancelled, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]domain.BookingView, error) {
	return s.views(ctx, func(b domain.Booking) bool { return b.UserID == userID })
}

// FindBooking returns the booking only to its owner.
func (s *BookingService) FindBooking(ctx context.Context, id, userID string) (*domain.BookingView, error) {
	views, err := s.views(ctx, func(b domain.Booking) bool { return b.ID == id && b.UserID == userID })
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrBookingNotFound
	}
	return &views[0], nil
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	return s.views(ctx, func(domain.Booking) bool { return true })
}

// Summary feeds the admin dashboard. Revenue sums every booking ever made,
// cancelled ones included.
func (s *BookingService) Summary(ctx context.Context) (*Summary, error) {
	flights := s.readFlights(ctx)
	all := s.readBookings(ctx)
	sum := &Summary{Flights: len(flights), Bookings: len(all)}
	for _, b := range all {
		sum.Revenue += b.TotalPrice
		switch b.Status {
		case domain.BookingStatusConfirmed:
			sum.Confirmed++
		case domain.BookingStatusCancelled:
			sum.Cancelled++
		}
	}
	return sum, nil
}

func (s *BookingService) views(ctx context.Context, keep func(domain.Booking) bool) ([]domain.BookingView, error) {
	all := s.readBookings(ctx)
	flights := s.readFlights(ctx)
	byID := make(map[string]domain.Flight, len(flights))
	for _, f := range flights {
		byID[f.ID] = f
	}

	views := make([]domain.BookingView, 0)
	for _, b := range all {
		if !keep(b) {
			continue
		}
		v := domain.BookingView{Booking: b}
		if f, ok := byID[b.FlightID]; ok {
			v.Flight = &f
			v.FlightResolved = true
		}
		views = append(views, v)
	}
	return views, nil
}

// readBookings treats an unreadable ledger as empty. Writers keep failing on
// the same error so a corrupt list is never overwritten.
func (s *BookingService) readBookings(ctx context.Context) []domain.Booking {
	all, err := s.bookings.List(ctx)
	if err != nil {
		s.log.Error("list bookings", zap.Error(err))
		return nil
	}
	return all
}

func (s *BookingService) readFlights(ctx context.Context) []domain.Flight {
	flights, err := s.flights.List(ctx)
	if err != nil {
		s.log.Error("list flights", zap.Error(err))
		return nil
	}
	return flights
}

func (s *BookingService) validate(input CreateBookingInput) error {
	fields := map[string]string{}
	if input.FlightID == "" {
		fields["flightId"] = "required"
	}
	if input.UserID == "" {
		fields["userId"] = "required"
	}
	switch n := len(input.Passengers); {
	case n == 0:
		fields["passengers"] = "at least one passenger is required"
	case n > s.maxPassengers:
		fields["passengers"] = fmt.Sprintf("at most %d passengers per booking", s.maxPassengers)
	}
	for i, p := range input.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			fields[fmt.Sprintf("passengers[%d].name", i)] = "required"
		}
		if p.Age < 0 {
			fields[fmt.Sprintf("passengers[%d].age", i)] = "must not be negative"
		}
	}
	switch input.PaymentMethod {
	case domain.PaymentMethodCard, domain.PaymentMethodUPI, domain.PaymentMethodNetBanking:
	default:
		fields["paymentMethod"] = "unsupported payment method"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Message: "invalid booking", Fields: fields}
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		FlightID:   booking.FlightID,
		UserID:     booking.UserID,
		Passengers: len(booking.Passengers),
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		OccurredAt: s.now().UTC(),
	}
	if s.users != nil {
		if u, err := s.users.GetUser(ctx, booking.UserID); err == nil {
			event.Email = u.Email
		}
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

func indexOf(bookings []domain.Booking, id string) int {
	for i := range bookings {
		if bookings[i].ID == id {
			return i
		}
	}
	return -1
}

var _ BookingUseCase = (*BookingService)(nil)
