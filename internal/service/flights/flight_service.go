package flights

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/logger"
	"github.com/Domenick1991/skyfare/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSeats = 50

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Add(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Edit(ctx context.Context, input FlightInput) error
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, flights []domain.Flight) error
	ReserveSeats(ctx context.Context, id string, count int) error
	ReleaseSeats(ctx context.Context, id string, count int) error
}

// FlightInput carries admin-supplied fields. Nil pointers mean "not set",
// which lets Edit merge only what the caller sent.
type FlightInput struct {
	ID             string          `json:"id"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	Airline        string          `json:"airline"`
	Price          int64           `json:"price"`
	Stops          *int            `json:"stops"`
	DepartureTime  string          `json:"departureTime"`
	ArrivalTime    string          `json:"arrivalTime"`
	Duration       string          `json:"duration"`
	SeatsAvailable *int            `json:"seatsAvailable"`
	SeatsBooked    *int            `json:"seatsBooked"`
	TimeSlot       domain.TimeSlot `json:"timeSlot"`
	Aircraft       string          `json:"aircraft"`
}

type FlightService struct {
	mu           sync.Mutex
	repo         repository.FlightRepository
	defaultSeats int
	log          *zap.Logger
}

type Option func(*FlightService)

func WithLogger(l *zap.Logger) Option {
	return func(s *FlightService) { s.log = l }
}

func WithDefaultSeats(n int) Option {
	return func(s *FlightService) {
		if n > 0 {
			s.defaultSeats = n
		}
	}
}

func NewFlightService(repo repository.FlightRepository, opts ...Option) *FlightService {
	s := &FlightService{repo: repo, defaultSeats: defaultSeats}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

// List never fails on a storage read; an unreadable list is logged and
// reported as empty.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	flights, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("list flights", zap.Error(err))
		return []domain.Flight{}, nil
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(flights, id); i >= 0 {
		f := flights[i]
		return &f, nil
	}
	return nil, domain.ErrFlightNotFound
}

func (s *FlightService) Add(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	if err := validateNew(input); err != nil {
		return nil, err
	}

	flight := domain.Flight{
		ID:            input.ID,
		From:          strings.TrimSpace(input.From),
		To:            strings.TrimSpace(input.To),
		Airline:       strings.TrimSpace(input.Airline),
		Price:         input.Price,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		Duration:      input.Duration,
		TimeSlot:      input.TimeSlot,
		Aircraft:      input.Aircraft,
	}
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	if input.Stops != nil && *input.Stops > 0 {
		flight.Stops = *input.Stops
	}
	flight.SeatsAvailable = s.defaultSeats
	if input.SeatsAvailable != nil && *input.SeatsAvailable > 0 {
		flight.SeatsAvailable = *input.SeatsAvailable
	}
	if input.SeatsBooked != nil && *input.SeatsBooked > 0 {
		flight.SeatsBooked = *input.SeatsBooked
	}
	if flight.SeatsBooked > flight.SeatsAvailable {
		return nil, &domain.ValidationError{
			Message: "invalid flight",
			Fields:  map[string]string{"seatsBooked": "cannot exceed seatsAvailable"},
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(flights, flight.ID) >= 0 {
		return nil, &domain.ValidationError{
			Message: "invalid flight",
			Fields:  map[string]string{"id": "already exists"},
		}
	}
	if err := s.repo.SaveAll(ctx, append(flights, flight)); err != nil {
		return nil, err
	}
	s.log.Info("flight added", zap.String("flight_id", flight.ID), zap.String("from", flight.From), zap.String("to", flight.To))
	return &flight, nil
}

// Edit merges the supplied fields into the stored record. Unknown ids are
// ignored. Seat arithmetic is the caller's job.
func (s *FlightService) Edit(ctx context.Context, input FlightInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	i := indexOf(flights, input.ID)
	if i < 0 {
		return nil
	}

	merged := merge(flights[i], input)
	if merged.From == merged.To {
		return domain.NewValidationError("origin and destination must differ")
	}
	if merged.Price <= 0 {
		return domain.NewValidationError("price must be positive")
	}
	if merged.SeatsBooked < 0 || merged.SeatsBooked > merged.SeatsAvailable {
		return domain.NewValidationError("seatsBooked must stay within 0..seatsAvailable")
	}
	flights[i] = merged
	if err := s.repo.SaveAll(ctx, flights); err != nil {
		return err
	}
	s.log.Info("flight edited", zap.String("flight_id", merged.ID))
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	i := indexOf(flights, id)
	if i < 0 {
		return nil
	}
	flights = append(flights[:i], flights[i+1:]...)
	if err := s.repo.SaveAll(ctx, flights); err != nil {
		return err
	}
	s.log.Info("flight deleted", zap.String("flight_id", id))
	return nil
}

func (s *FlightService) Replace(ctx context.Context, flights []domain.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.SaveAll(ctx, flights)
}

// ReserveSeats books count seats. The caller must already have checked the
// remaining capacity; no lock spans that check and this write.
func (s *FlightService) ReserveSeats(ctx context.Context, id string, count int) error {
	return s.adjustSeats(ctx, id, count)
}

// ReleaseSeats returns count seats, never dropping below zero booked.
func (s *FlightService) ReleaseSeats(ctx context.Context, id string, count int) error {
	return s.adjustSeats(ctx, id, -count)
}

func (s *FlightService) adjustSeats(ctx context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	i := indexOf(flights, id)
	if i < 0 {
		return fmt.Errorf("adjust seats on %s: %w", id, domain.ErrFlightNotFound)
	}
	booked := flights[i].SeatsBooked + delta
	if booked < 0 {
		booked = 0
	}
	if booked > flights[i].SeatsAvailable {
		return domain.ErrInsufficientSeats
	}
	flights[i].SeatsBooked = booked
	return s.repo.SaveAll(ctx, flights)
}

func validateNew(input FlightInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(input.From) == "" {
		fields["from"] = "required"
	}
	if strings.TrimSpace(input.To) == "" {
		fields["to"] = "required"
	}
	if input.Price <= 0 {
		fields["price"] = "must be positive"
	}
	if strings.TrimSpace(input.Airline) == "" {
		fields["airline"] = "required"
	}
	if input.DepartureTime == "" {
		fields["departureTime"] = "required"
	}
	if input.ArrivalTime == "" {
		fields["arrivalTime"] = "required"
	}
	if input.From != "" && strings.TrimSpace(input.From) == strings.TrimSpace(input.To) {
		fields["to"] = "must differ from origin"
	}
	if input.Stops != nil && *input.Stops < 0 {
		fields["stops"] = "cannot be negative"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Message: "invalid flight", Fields: fields}
	}
	return nil
}

func merge(f domain.Flight, in FlightInput) domain.Flight {
	if in.From != "" {
		f.From = in.From
	}
	if in.To != "" {
		f.To = in.To
	}
	if in.Airline != "" {
		f.Airline = in.Airline
	}
	if in.Price != 0 {
		f.Price = in.Price
	}
	if in.Stops != nil {
		f.Stops = *in.Stops
	}
	if in.DepartureTime != "" {
		f.DepartureTime = in.DepartureTime
	}
	if in.ArrivalTime != "" {
		f.ArrivalTime = in.ArrivalTime
	}
	if in.Duration != "" {
		f.Duration = in.Duration
	}
	if in.SeatsAvailable != nil {
		f.SeatsAvailable = *in.SeatsAvailable
	}
	if in.SeatsBooked != nil {
		f.SeatsBooked = *in.SeatsBooked
	}
	if in.TimeSlot != "" {
		f.TimeSlot = in.TimeSlot
	}
	if in.Aircraft != "" {
		f.Aircraft = in.Aircraft
	}
	return f
}

func indexOf(flights []domain.Flight, id string) int {
	if id == "" {
		return -1
	}
	for i := range flights {
		if flights[i].ID == id {
			return i
		}
	}
	return -1
}

var _ FlightUseCase = (*FlightService)(nil)
