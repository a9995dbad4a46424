package search

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/skyfare/internal/cache"
	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/logger"
	"go.uber.org/zap"
)

type SearchUseCase interface {
	Search(ctx context.Context, req domain.SearchRequest) ([][]domain.SegmentFlight, error)
}

type Inventory interface {
	List(ctx context.Context) ([]domain.Flight, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([][]domain.SegmentFlight, bool, error)
	Set(ctx context.Context, key string, data [][]domain.SegmentFlight) error
}

type SearchService struct {
	inventory Inventory
	cache     Cache
	latency   time.Duration
	now       func() time.Time
	log       *zap.Logger
}

type Option func(*SearchService)

func WithLogger(l *zap.Logger) Option {
	return func(s *SearchService) { s.log = l }
}

// WithLatency sets the artificial delay added before fresh results return.
func WithLatency(d time.Duration) Option {
	return func(s *SearchService) { s.latency = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *SearchService) { s.now = now }
}

func NewSearchService(inventory Inventory, cache Cache, opts ...Option) *SearchService {
	s := &SearchService{inventory: inventory, cache: cache, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

// Search resolves a trip request into one list of matched flights per
// route. Either every segment matches or the whole search fails.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) ([][]domain.SegmentFlight, error) {
	req = Normalize(req)
	if err := Validate(req); err != nil {
		return nil, err
	}

	key := cache.Key(req)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("read search cache", zap.String("key", key), zap.Error(err))
		} else if ok {
			s.log.Debug("search cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	flights, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("search", zap.String("trip_type", string(req.TripType)), zap.Int("routes", len(req.Routes)), zap.Int("flights", len(flights)))

	results := make([][]domain.SegmentFlight, 0, len(req.Routes))
	for i, route := range req.Routes {
		matched := s.match(flights, req, route, segmentLabel(req.TripType, i))
		if len(matched) == 0 {
			return nil, fmt.Errorf("%w for segment %d (%s → %s)", domain.ErrNoFlights, i+1, route.From, route.To)
		}
		results = append(results, matched)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, results); err != nil {
			s.log.Warn("write search cache", zap.String("key", key), zap.Error(err))
		}
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *SearchService) match(flights []domain.Flight, req domain.SearchRequest, route domain.Route, segment string) []domain.SegmentFlight {
	date := route.Date
	if date == "" {
		date = s.now().Format(dateLayout)
	}

	var aircraft map[string]bool
	if len(req.AircraftTypes) > 0 {
		aircraft = toSet(req.AircraftTypes)
	}

	matched := make([]domain.SegmentFlight, 0)
	for _, f := range flights {
		if f.From != route.From || f.To != route.To || f.RemainingSeats() <= 0 {
			continue
		}
		if req.MaxDuration > 0 && ParseDuration(f.Duration) > req.MaxDuration {
			continue
		}
		if aircraft != nil && !aircraft[f.Aircraft] {
			continue
		}
		matched = append(matched, domain.SegmentFlight{Flight: f, FlightDate: date, Segment: segment})
	}
	return matched
}

func (s *SearchService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ SearchUseCase = (*SearchService)(nil)
