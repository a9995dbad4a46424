package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyfare/internal/kafka"
	"github.com/Domenick1991/skyfare/internal/logger"
	"go.uber.org/zap"
)

// Sender renders booking notifications. Delivery is a log line; there is
// no mail transport behind it.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: logger.OrNop(log)}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		s.log.Debug("skip notification without recipient", zap.String("booking_id", event.BookingID))
		return nil
	}
	s.log.Info("send email",
		zap.String("to", event.Email),
		zap.String("subject", Subject(event)),
		zap.String("booking_id", event.BookingID),
		zap.String("flight_id", event.FlightID))
	return nil
}

func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("Booking %s confirmed: %d passenger(s), ₹%d", event.BookingID, event.Passengers, event.TotalPrice)
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("Booking %s cancelled", event.BookingID)
	default:
		return fmt.Sprintf("Update on booking %s", event.BookingID)
	}
}
