package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seaview/config"
	"seaview/infras/otel/mocks"
	"seaview/internal/domains/availability/feed"
	"seaview/internal/domains/availability/model"
)

const sampleCalendar = "BEGIN:VCALENDAR\r\n" +
	"PRODID:-//Test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-1\r\n" +
	"DTSTART;VALUE=DATE:20260401\r\n" +
	"DTEND;VALUE=DATE:20260405\r\n" +
	"SUMMARY:Reserved\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-2\r\n" +
	"DTSTART:20260510T140000Z\r\n" +
	"DTEND:20260512T100000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-3-incomplete\r\n" +
	"DTSTART;VALUE=DATE:20260601\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParse(t *testing.T) {
	entries := feed.Parse(strings.NewReader(sampleCalendar), model.SourceAirbnb)

	assert.Len(t, entries, 2)

	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), entries[0].Range.Start)
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), entries[0].Range.End)
	assert.Equal(t, model.SourceAirbnb, entries[0].Source)
	assert.Equal(t, "Reserved", entries[0].Summary)

	// timestamps with zone markers normalize to bare calendar dates
	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), entries[1].Range.Start)
	assert.Equal(t, time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC), entries[1].Range.End)
}

func TestParseUnfoldsContinuationLines(t *testing.T) {
	calendar := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VEVENT\r\n" +
		"DTSTART;VALUE=DA\r\n" +
		" TE:20260401\r\n" +
		"DTEND;VALUE=DATE:20260405\r\n" +
		"SUMMARY:Reserved for a guest with a very long\r\n" +
		"\tbooking reference\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	entries := feed.Parse(strings.NewReader(calendar), model.SourceBooking)

	assert.Len(t, entries, 1)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), entries[0].Range.Start)
	assert.Equal(t, "Reserved for a guest with a very longbooking reference", entries[0].Summary)
}

func TestParseDropsMalformedEvents(t *testing.T) {
	calendar := "BEGIN:VEVENT\n" +
		"DTSTART;VALUE=DATE:garbage\n" +
		"DTEND;VALUE=DATE:20260405\n" +
		"END:VEVENT\n" +
		"BEGIN:VEVENT\n" +
		"DTSTART;VALUE=DATE:20260405\n" +
		"DTEND;VALUE=DATE:20260405\n" +
		"END:VEVENT\n"

	entries := feed.Parse(strings.NewReader(calendar), model.SourceBooking)

	// first event has an unparseable start, second a zero-length range
	assert.Empty(t, entries)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCalendar))
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Feeds.TimeoutSeconds = 5

	fetcher := feed.New(cfg, mocks.NewOtel())

	entries := fetcher.Fetch(context.Background(), feed.Source{Tag: model.SourceAirbnb, URL: server.URL})

	assert.Len(t, entries, 2)
}

func TestFetchFailsOpen(t *testing.T) {
	cfg := &config.Config{}
	cfg.Feeds.TimeoutSeconds = 5

	fetcher := feed.New(cfg, mocks.NewOtel())

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		entries := fetcher.Fetch(context.Background(), feed.Source{Tag: model.SourceBooking, URL: server.URL})

		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("unreachable host", func(t *testing.T) {
		entries := fetcher.Fetch(context.Background(), feed.Source{Tag: model.SourceBooking, URL: "http://127.0.0.1:1/calendar.ics"})

		assert.Empty(t, entries)
	})

	t.Run("unconfigured source", func(t *testing.T) {
		entries := fetcher.Fetch(context.Background(), feed.Source{Tag: model.SourceAirbnb, URL: ""})

		assert.Empty(t, entries)
	})
}

func TestSources(t *testing.T) {
	cfg := &config.Config{}

	assert.Empty(t, feed.Sources(cfg))

	cfg.Feeds.AirbnbURL = "https://airbnb.example/cal.ics"
	cfg.Feeds.BookingURL = "https://booking.example/cal.ics"

	sources := feed.Sources(cfg)
	assert.Len(t, sources, 2)
	assert.Equal(t, model.SourceAirbnb, sources[0].Tag)
	assert.Equal(t, model.SourceBooking, sources[1].Tag)
}
