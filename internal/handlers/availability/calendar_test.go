package availability

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seaview/internal/domains/availability/model"
	"seaview/shared/daterange"
)

func TestRenderCalendar(t *testing.T) {
	stay, err := daterange.Parse("2026-04-01", "2026-04-04")
	assert.NoError(t, err)

	blocked, err := daterange.Parse("2026-05-01", "2026-05-02")
	assert.NoError(t, err)

	imported, err := daterange.Parse("2026-06-01", "2026-06-03")
	assert.NoError(t, err)

	snapshot := model.Snapshot{
		Ranges: []model.OccupiedRange{
			{Range: stay, Source: model.SourceDirect, Reference: "booking-1"},
			{Range: blocked, Source: model.SourceBlocked, Reference: "block-1"},
			{Range: imported, Source: model.SourceAirbnb, Reference: "Reserved"},
		},
		ComputedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	document := string(renderCalendar(snapshot, "Seaview Villa"))

	assert.True(t, strings.HasPrefix(document, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(document, "END:VCALENDAR\r\n"))

	assert.Contains(t, document, "DTSTART;VALUE=DATE:20260401")
	assert.Contains(t, document, "DTEND;VALUE=DATE:20260404")
	assert.Contains(t, document, "UID:direct-booking-1@Seaview Villa")
	assert.Contains(t, document, "UID:blocked-block-1@Seaview Villa")
	assert.Contains(t, document, "DTSTAMP:20260315T120000Z")

	// externally sourced entries must not be echoed back
	assert.NotContains(t, document, "20260601")

	assert.Equal(t, 2, strings.Count(document, "BEGIN:VEVENT"))
}
