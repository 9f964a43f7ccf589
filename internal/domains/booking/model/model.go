package model

import (
	"time"

	"seaview/shared/daterange"
	"seaview/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldGuests     = "guests"
	FieldTotalPrice = "total_price"
	FieldStatus     = "status"
	FieldOrigin     = "origin"
	FieldNotes      = "notes"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	OriginGuest = "guest"
	OriginAdmin = "admin"
)

// legalTransitions is the lifecycle table. Cancelled bookings may be reopened
// by an operator; completed is terminal.
var legalTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {StatusPending, StatusConfirmed},
	StatusCompleted: {},
}

// CanTransition reports whether an explicit status change from one state to
// another is legal.
func CanTransition(from, to string) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

type Booking struct {
	ID         string    `db:"id"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Email      string    `db:"email"`
	Phone      string    `db:"phone"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Guests     int       `db:"guests"`
	TotalPrice float64   `db:"total_price"`
	Status     string    `db:"status"`
	Origin     string    `db:"origin"`
	Notes      *string   `db:"notes"`
	model.Metadata
}

// Range returns the booking's stay as a half-open date range; the checkout
// date itself is free for same-day turnover.
func (b Booking) Range() daterange.DateRange {
	return daterange.DateRange{
		Start: daterange.Truncate(b.CheckIn),
		End:   daterange.Truncate(b.CheckOut),
	}
}

func (b Booking) GuestName() string {
	return b.FirstName + " " + b.LastName
}

// Occupies reports whether the booking holds its dates against new requests.
func (b Booking) Occupies() bool {
	return b.Status != StatusCancelled
}

// EligibleForCompletion reports whether the stay is over and the booking can
// be auto-completed at read time.
func (b Booking) EligibleForCompletion(today time.Time) bool {
	return b.Status == StatusConfirmed && daterange.Truncate(b.CheckOut).Before(daterange.Truncate(today))
}
