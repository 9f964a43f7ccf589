package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"seaview/config"
	"seaview/infras/otel"
	"seaview/internal/domains/availability/feed"
	"seaview/internal/domains/availability/model"
	blockRepo "seaview/internal/domains/block/repository"
	bookingModel "seaview/internal/domains/booking/model"
	bookingRepo "seaview/internal/domains/booking/repository"
	"seaview/shared/constant"
	gDto "seaview/shared/dto"
)

// Availability merges the external platform calendars, local bookings and
// operator blocks into one occupied-ranges view. The merged snapshot is held
// in memory for the configured window; ForceRefresh bypasses the window after
// local writes so the UI sees them immediately.
type Availability interface {
	OccupiedRanges(ctx context.Context) (model.Snapshot, error)
	ForceRefresh(ctx context.Context) (model.Snapshot, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	blocks   blockRepo.Block
	fetcher  feed.Fetcher
	sources  []feed.Source
	window   time.Duration
	cfg      *config.Config
	otel     otel.Otel

	// snapshot is swapped atomically; concurrent recomputes are tolerated
	// (last writer wins), so no lock is needed here.
	snapshot atomic.Pointer[model.Snapshot]
}

func New(bookings bookingRepo.Booking, blocks blockRepo.Block, fetcher feed.Fetcher, cfg *config.Config, ot otel.Otel) Availability {
	return &serviceImpl{
		bookings: bookings,
		blocks:   blocks,
		fetcher:  fetcher,
		sources:  feed.Sources(cfg),
		window:   time.Duration(cfg.Feeds.CacheWindowMinutes) * time.Minute,
		cfg:      cfg,
		otel:     ot,
	}
}

func (s *serviceImpl) OccupiedRanges(ctx context.Context) (res model.Snapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OccupiedRanges")
	defer scope.End()
	defer scope.TraceIfError(err)

	if cached := s.snapshot.Load(); cached != nil && time.Since(cached.ComputedAt) < s.window {
		scope.AddEvent("availability snapshot served from cache")

		return *cached, nil
	}

	return s.recompute(ctx)
}

func (s *serviceImpl) ForceRefresh(ctx context.Context) (res model.Snapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForceRefresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.recompute(ctx)
}

// recompute rebuilds the merged view: external feeds (fetched in parallel),
// then non-cancelled bookings, then blocks. Feed failures already degraded to
// empty inside the fetcher; repository failures are real errors, because
// local data is authoritative and must never be silently missing.
func (s *serviceImpl) recompute(ctx context.Context) (model.Snapshot, error) {
	external := s.fetchExternal(ctx)

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, occupyingBookingsFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings for availability")

		return model.Snapshot{}, fmt.Errorf("failed to list bookings for availability: %w", err)
	}

	blocks, err := s.blocks.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list blocked ranges for availability")

		return model.Snapshot{}, fmt.Errorf("failed to list blocked ranges for availability: %w", err)
	}

	ranges := make([]model.OccupiedRange, 0, len(external)+len(bookings)+len(blocks))

	for _, entry := range external {
		ranges = append(ranges, model.OccupiedRange{
			Range:     entry.Range,
			Source:    entry.Source,
			Reference: entry.Summary,
		})
	}

	for _, booking := range bookings {
		ranges = append(ranges, model.OccupiedRange{
			Range:     booking.Range(),
			Source:    model.SourceDirect,
			Reference: booking.ID,
		})
	}

	for _, block := range blocks {
		rng, err := block.Range()
		if err != nil {
			log.Warn().Str("block_id", block.ID).Msg("blocked range has inverted dates, skipping")

			continue
		}

		ranges = append(ranges, model.OccupiedRange{
			Range:     rng,
			Source:    model.SourceBlocked,
			Reference: block.ID,
		})
	}

	snapshot := model.Snapshot{
		Ranges:     ranges,
		ComputedAt: time.Now().UTC(),
	}

	s.snapshot.Store(&snapshot)

	log.Info().
		Int("external", len(external)).
		Int("bookings", len(bookings)).
		Int("blocks", len(blocks)).
		Msg("availability snapshot recomputed")

	return snapshot, nil
}

// fetchExternal queries every configured source concurrently and concatenates
// results in source order, so snapshots are deterministic for a given input.
func (s *serviceImpl) fetchExternal(ctx context.Context) []model.ExternalOccupancy {
	results := make([][]model.ExternalOccupancy, len(s.sources))

	done := make(chan int, len(s.sources))

	for i, source := range s.sources {
		go func(i int, source feed.Source) {
			results[i] = s.fetcher.Fetch(ctx, source)
			done <- i
		}(i, source)
	}

	for range s.sources {
		<-done
	}

	merged := []model.ExternalOccupancy{}
	for _, entries := range results {
		merged = append(merged, entries...)
	}

	return merged
}

func occupyingBookingsFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    bookingModel.StatusCancelled,
				Table:    bookingModel.TableName,
			},
		},
	}
}
