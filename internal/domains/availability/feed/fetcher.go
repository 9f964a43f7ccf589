package feed

//go:generate go run go.uber.org/mock/mockgen -source=./fetcher.go -destination=./mocks/fetcher_mock.go -package=mocks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"seaview/config"
	"seaview/infras/otel"
	"seaview/internal/domains/availability/model"
	"seaview/shared/constant"
	"seaview/shared/daterange"
)

// Source is one configured external calendar.
type Source struct {
	Tag string
	URL string
}

// Fetcher retrieves and parses one external platform calendar into occupancy
// entries. Implementations must fail open: a broken source yields an empty
// list, never an error, so the remaining sources still contribute.
type Fetcher interface {
	Fetch(ctx context.Context, source Source) []model.ExternalOccupancy
}

type httpFetcher struct {
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Fetcher {
	return &httpFetcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.Feeds.TimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

// Sources lists the configured external calendars; unset URLs are skipped.
func Sources(cfg *config.Config) []Source {
	sources := []Source{}

	if cfg.Feeds.AirbnbURL != "" {
		sources = append(sources, Source{Tag: model.SourceAirbnb, URL: cfg.Feeds.AirbnbURL})
	}

	if cfg.Feeds.BookingURL != "" {
		sources = append(sources, Source{Tag: model.SourceBooking, URL: cfg.Feeds.BookingURL})
	}

	return sources
}

func (f *httpFetcher) Fetch(ctx context.Context, source Source) (entries []model.ExternalOccupancy) {
	ctx, scope := f.otel.NewScope(ctx, constant.OtelFeedScopeName, constant.OtelFeedScopeName+".Fetch")
	defer scope.End()

	scope.SetAttribute("feed.source", source.Tag)

	if source.URL == "" {
		return []model.ExternalOccupancy{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("source", source.Tag).Msg("failed to build feed request")

		return []model.ExternalOccupancy{}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("source", source.Tag).Msg("failed to fetch calendar feed, treating source as empty")

		return []model.ExternalOccupancy{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("calendar feed returned status %d", resp.StatusCode)
		scope.TraceError(err)
		log.Error().Err(err).Str("source", source.Tag).Msg("calendar feed unavailable, treating source as empty")

		return []model.ExternalOccupancy{}
	}

	entries = Parse(resp.Body, source.Tag)

	log.Info().Str("source", source.Tag).Int("events", len(entries)).Msg("calendar feed fetched")

	return entries
}

// Parse scans iCalendar text for VEVENT blocks and extracts their date
// ranges. Events missing either bound, or with unparseable dates, are dropped
// silently: a partial feed still renders the rest of the calendar.
func Parse(r io.Reader, sourceTag string) []model.ExternalOccupancy {
	entries := []model.ExternalOccupancy{}

	var (
		inEvent bool
		start   time.Time
		end     time.Time
		summary string
	)

	process := func(line string) {
		switch {
		case line == "BEGIN:VEVENT":
			inEvent = true
			start, end, summary = time.Time{}, time.Time{}, ""
		case line == "END:VEVENT":
			if inEvent && !start.IsZero() && !end.IsZero() {
				if rng, err := daterange.New(start, end); err == nil {
					entries = append(entries, model.ExternalOccupancy{
						Range:   rng,
						Source:  sourceTag,
						Summary: summary,
					})
				}
			}

			inEvent = false
		case !inEvent:
		case strings.HasPrefix(line, "DTSTART"):
			start = parseICalDate(line)
		case strings.HasPrefix(line, "DTEND"):
			end = parseICalDate(line)
		case strings.HasPrefix(line, "SUMMARY:"):
			summary = strings.TrimPrefix(line, "SUMMARY:")
		}
	}

	var pending string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		// RFC 5545 folds long lines; a continuation starts with a space or
		// tab and belongs to the previous property.
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			pending += line[1:]

			continue
		}

		process(pending)
		pending = line
	}

	process(pending)

	return entries
}

// parseICalDate normalizes a DTSTART/DTEND property to a calendar date. Both
// the bare value form (DTSTART;VALUE=DATE:20260401) and the timestamp form
// (DTSTART:20260401T140000Z) are accepted.
func parseICalDate(line string) time.Time {
	idx := strings.LastIndex(line, ":")
	if idx < 0 || idx == len(line)-1 {
		return time.Time{}
	}

	value := strings.TrimSpace(line[idx+1:])

	for _, layout := range []string{"20060102", "20060102T150405Z", "20060102T150405"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return daterange.Truncate(parsed)
		}
	}

	return time.Time{}
}
