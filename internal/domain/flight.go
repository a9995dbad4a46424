package domain

type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
	TimeSlotNight     TimeSlot = "night"
)

type Flight struct {
	ID             string   `json:"id"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	Airline        string   `json:"airline"`
	Price          int64    `json:"price"`
	Stops          int      `json:"stops"`
	DepartureTime  string   `json:"departureTime"`
	ArrivalTime    string   `json:"arrivalTime"`
	Duration       string   `json:"duration"`
	SeatsAvailable int      `json:"seatsAvailable"`
	SeatsBooked    int      `json:"seatsBooked"`
	TimeSlot       TimeSlot `json:"timeSlot"`
	Aircraft       string   `json:"aircraft"`
}

// RemainingSeats is the capacity still open for booking.
func (f Flight) RemainingSeats() int {
	return f.SeatsAvailable - f.SeatsBooked
}
