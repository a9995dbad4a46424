package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/skyfare/api"
	"github.com/Domenick1991/skyfare/config"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Sessions api.Sessions
	Auth     *api.AuthHandler
	Flights  *api.FlightHandler
	Search   *api.SearchHandler
	Checkout *api.CheckoutHandler
	Bookings *api.BookingHandler
	Contacts *api.ContactHandler
	Health   map[string]HealthCheck
}

// Run serves the HTTP API and blocks until ctx is cancelled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, deps, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("http server stopped")
		return nil
	}
}

func NewRouter(cfg *config.Config, deps Deps, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		api.Recovery(log),
		api.Logger(log),
		api.CORS(cfg.HTTP.AllowedOrigins),
		api.RateLimit(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst),
	)

	auth := api.NewAuth(deps.Sessions)
	v1 := router.Group("/api/v1")
	v1.GET("/health", health(deps.Health))

	deps.Auth.Register(v1.Group("/auth"), auth)
	deps.Flights.Register(v1.Group("/flights"), auth)
	deps.Search.Register(v1, auth)
	deps.Checkout.Register(v1, auth)
	deps.Bookings.Register(v1, auth)
	deps.Contacts.Register(v1, auth)

	if cfg.HTTP.SwaggerFile != "" {
		router.StaticFile("/openapi.json", cfg.HTTP.SwaggerFile)
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}
	return router
}

func health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		report := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": report})
	}
}
