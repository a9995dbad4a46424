package bootstrap

import (
	"context"

	"github.com/Domenick1991/skyfare/api"
	"github.com/Domenick1991/skyfare/config"
	"github.com/Domenick1991/skyfare/internal/cache"
	"github.com/Domenick1991/skyfare/internal/logger"
	"github.com/Domenick1991/skyfare/internal/repository"
	"github.com/Domenick1991/skyfare/internal/seed"
	"github.com/Domenick1991/skyfare/internal/service/account"
	"github.com/Domenick1991/skyfare/internal/service/booking"
	"github.com/Domenick1991/skyfare/internal/service/contact"
	"github.com/Domenick1991/skyfare/internal/service/flights"
	"github.com/Domenick1991/skyfare/internal/service/payment"
	"github.com/Domenick1991/skyfare/internal/service/search"
	"github.com/Domenick1991/skyfare/internal/storage"
	"go.uber.org/zap"
)

// App holds the wired services over one store.
type App struct {
	Accounts *account.AccountService
	Flights  *flights.FlightService
	Bookings *booking.BookingService
	Deps     Deps

	flightRepo repository.FlightRepository
	log        *zap.Logger
}

// NewApp wires every service. producer may be nil, which disables events.
func NewApp(cfg *config.Config, store storage.Store, producer booking.Producer, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	cipher, err := account.NewCipher(cfg.Auth.PasswordScheme, cfg.Auth.PasswordKey)
	if err != nil {
		return nil, err
	}

	flightRepo := repository.NewFlightRepository(store)
	flightService := flights.NewFlightService(flightRepo,
		flights.WithLogger(log.Named("flights")),
		flights.WithDefaultSeats(cfg.Booking.DefaultSeats),
	)

	accountService := account.NewAccountService(
		repository.NewUserRepository(store),
		cipher,
		account.NewTokenIssuer(cfg.Auth.TokenSecret),
		account.WithIdleTimeout(cfg.Auth.IdleTimeout),
		account.WithExpiryTick(cfg.Auth.ExpiryTick),
		account.WithLogger(log.Named("account")),
	)

	searchService := search.NewSearchService(flightService,
		cache.NewSearchCache(store, cfg.Search.CacheTTL),
		search.WithLatency(cfg.Search.Latency),
		search.WithLogger(log.Named("search")),
	)

	bookingOpts := []booking.BookingServiceOption{
		booking.WithMaxPassengers(cfg.Booking.MaxPassengers),
		booking.WithUserLookup(accountService),
		booking.WithLogger(log.Named("booking")),
	}
	if producer != nil {
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	bookingService := booking.NewBookingService(repository.NewBookingRepository(store), flightService, bookingOpts...)

	paymentService := payment.NewPaymentService(bookingService,
		payment.WithLatency(cfg.Payment.Latency),
		payment.WithLogger(log.Named("payment")),
	)
	contactService := contact.NewContactService(repository.NewContactRepository(store),
		contact.WithLogger(log.Named("contact")),
	)

	return &App{
		Accounts: accountService,
		Flights:  flightService,
		Bookings: bookingService,
		Deps: Deps{
			Sessions: accountService,
			Auth:     api.NewAuthHandler(accountService),
			Flights:  api.NewFlightHandler(flightService),
			Search:   api.NewSearchHandler(searchService, cfg.Search.PriceMax),
			Checkout: api.NewCheckoutHandler(paymentService),
			Bookings: api.NewBookingHandler(bookingService),
			Contacts: api.NewContactHandler(contactService),
			Health:   map[string]HealthCheck{},
		},
		flightRepo: flightRepo,
		log:        log,
	}, nil
}

// Seed writes the demo catalogue into an empty store.
func (a *App) Seed(ctx context.Context) error {
	_, err := seed.Flights(ctx, a.flightRepo, a.Flights, a.log.Named("seed"))
	return err
}
