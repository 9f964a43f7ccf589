package model

const (
	EventBookingCreated = "booking.created"
	EventStatusChanged  = "booking.status_changed"
)

// Event is the payload published to the booking events topic. Consumers
// (channel managers, reporting) key on BookingID.
type Event struct {
	Type           string  `json:"type"`
	BookingID      string  `json:"bookingId"`
	Status         string  `json:"status"`
	PreviousStatus *string `json:"previousStatus,omitempty"`
	CheckIn        string  `json:"checkIn"`
	CheckOut       string  `json:"checkOut"`
	OccurredAt     string  `json:"occurredAt"`
}
