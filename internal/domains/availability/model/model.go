package model

import (
	"time"

	"seaview/shared/daterange"
)

const (
	SourceAirbnb  = "airbnb"
	SourceBooking = "booking"
	SourceDirect  = "direct"
	SourceBlocked = "blocked"
)

// ExternalOccupancy is a transient fact parsed from a platform calendar feed.
// It is never persisted; every recompute re-derives the full set.
type ExternalOccupancy struct {
	Range   daterange.DateRange
	Source  string
	Summary string
}

// OccupiedRange is one entry of the merged availability view. Reference
// carries the originating entity id (booking or block) or the feed summary.
type OccupiedRange struct {
	Range     daterange.DateRange `json:"range"`
	Source    string              `json:"source"`
	Reference string              `json:"reference,omitempty"`
}

// Snapshot is the merged, cached availability view. ComputedAt is the
// staleness timestamp consumers use to judge freshness.
type Snapshot struct {
	Ranges     []OccupiedRange `json:"occupied_ranges"`
	ComputedAt time.Time       `json:"computed_at"`
}

// Conflicts reports whether the requested stay overlaps any occupied range.
// The first overlapping range is returned for error reporting.
func (s *Snapshot) Conflicts(stay daterange.DateRange) (OccupiedRange, bool) {
	for _, occupied := range s.Ranges {
		if occupied.Range.Overlaps(stay) {
			return occupied, true
		}
	}

	return OccupiedRange{}, false
}
