package model

import (
	"time"

	"seaview/shared/daterange"
	"seaview/shared/model"
)

const (
	TableName  = "blocked_ranges"
	EntityName = "blocked_range"

	FieldID        = "id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldReason    = "reason"
)

// BlockedRange is an operator-created closure of the calendar. Unlike
// bookings, both bounds are inclusive: a block from the 1st to the 3rd keeps
// all three dates unavailable. The availability aggregator converts to the
// half-open convention at its boundary.
type BlockedRange struct {
	ID        string    `db:"id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Reason    *string   `db:"reason"`
	model.Metadata
}

// Range converts the inclusive storage bounds to the half-open convention
// used everywhere else.
func (b BlockedRange) Range() (daterange.DateRange, error) {
	return daterange.FromInclusive(b.StartDate, b.EndDate)
}
