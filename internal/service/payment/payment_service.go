package payment

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/logger"
	"github.com/Domenick1991/skyfare/internal/service/booking"
	"go.uber.org/zap"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
	upiRe        = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)
)

type PaymentUseCase interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Booking, error)
}

type Ledger interface {
	CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error)
}

type Card struct {
	Number string `json:"cardNumber"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
	Name   string `json:"cardName"`
}

type CheckoutInput struct {
	FlightID   string               `json:"flightId"`
	UserID     string               `json:"-"`
	Passengers []domain.Passenger   `json:"passengers"`
	Method     domain.PaymentMethod `json:"paymentMethod"`
	Card       Card                 `json:"card"`
	UPIID      string               `json:"upiId"`
	Bank       string               `json:"bank"`
}

type PaymentService struct {
	ledger  Ledger
	latency time.Duration
	log     *zap.Logger
}

type Option func(*PaymentService)

// WithLatency sets the simulated processing delay before the booking is made.
func WithLatency(d time.Duration) Option {
	return func(s *PaymentService) { s.latency = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *PaymentService) { s.log = l }
}

func NewPaymentService(ledger Ledger, opts ...Option) *PaymentService {
	s := &PaymentService{ledger: ledger}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

// Checkout validates the payment details, simulates processing and then
// records the booking. No money moves and nothing is retried.
func (s *PaymentService) Checkout(ctx context.Context, input CheckoutInput) (*domain.Booking, error) {
	if err := Validate(input); err != nil {
		return nil, err
	}

	s.log.Debug("processing payment", zap.String("method", string(input.Method)), zap.String("flight_id", input.FlightID))
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	return s.ledger.CreateBooking(ctx, booking.CreateBookingInput{
		FlightID:      input.FlightID,
		UserID:        input.UserID,
		Passengers:    input.Passengers,
		PaymentMethod: input.Method,
	})
}

// Validate checks the fields required by the chosen payment method.
func Validate(input CheckoutInput) error {
	fields := map[string]string{}
	if input.FlightID == "" || input.UserID == "" {
		fields["form"] = "missing booking or user details"
	}

	switch input.Method {
	case domain.PaymentMethodCard:
		if !cardNumberRe.MatchString(strings.ReplaceAll(input.Card.Number, " ", "")) {
			fields["cardNumber"] = "enter a valid 16-digit card number"
		}
		if !expiryRe.MatchString(input.Card.Expiry) {
			fields["expiry"] = "valid expiry date (MM/YY) required"
		}
		if !cvvRe.MatchString(input.Card.CVV) {
			fields["cvv"] = "valid 3-digit CVV required"
		}
		if strings.TrimSpace(input.Card.Name) == "" {
			fields["cardName"] = "cardholder name required"
		}
	case domain.PaymentMethodUPI:
		if !upiRe.MatchString(input.UPIID) {
			fields["upiId"] = "enter a valid UPI ID (e.g., user@bank)"
		}
	case domain.PaymentMethodNetBanking:
		if strings.TrimSpace(input.Bank) == "" {
			fields["bank"] = "select a bank"
		}
	default:
		fields["paymentMethod"] = "unsupported payment method"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Message: "invalid payment details", Fields: fields}
	}
	return nil
}

func (s *PaymentService) wait(ctx context.Context) error {
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

var _ PaymentUseCase = (*PaymentService)(nil)
