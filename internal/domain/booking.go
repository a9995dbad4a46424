package domain

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
)

type Passenger struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	FlightID      string        `json:"flightId"`
	Passengers    []Passenger   `json:"passengers"`
	TotalPrice    int64         `json:"totalPrice"`
	Status        BookingStatus `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	BookingDate   string        `json:"bookingDate"`
}

// BookingView joins a booking with the flight it references. Flight is nil
// and FlightResolved is false when the flight has since been deleted.
type BookingView struct {
	Booking
	Flight         *Flight `json:"flight"`
	FlightResolved bool    `json:"flightResolved"`
}
