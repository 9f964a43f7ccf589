package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seaview/config"
	otelMocks "seaview/infras/otel/mocks"
	"seaview/internal/domains/availability/feed"
	feedMocks "seaview/internal/domains/availability/feed/mocks"
	"seaview/internal/domains/availability/model"
	"seaview/internal/domains/availability/service"
	blockModel "seaview/internal/domains/block/model"
	blockMocks "seaview/internal/domains/block/mocks"
	bookingModel "seaview/internal/domains/booking/model"
	bookingMocks "seaview/internal/domains/booking/mocks"
	"seaview/shared/daterange"
	gDto "seaview/shared/dto"
)

func day(value string) time.Time {
	parsed, err := daterange.ParseDate(value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func testConfig(windowMinutes int) *config.Config {
	cfg := &config.Config{}
	cfg.Feeds.AirbnbURL = "https://airbnb.example/calendar.ics"
	cfg.Feeds.BookingURL = "https://booking.example/calendar.ics"
	cfg.Feeds.CacheWindowMinutes = windowMinutes

	return cfg
}

type aggregatorFixture struct {
	bookings *bookingMocks.MockBooking
	blocks   *blockMocks.MockBlock
	fetcher  *feedMocks.MockFetcher
	service  service.Availability
}

func newAggregatorFixture(t *testing.T, windowMinutes int) aggregatorFixture {
	ctrl := gomock.NewController(t)

	bookings := bookingMocks.NewMockBooking(ctrl)
	blocks := blockMocks.NewMockBlock(ctrl)
	fetcher := feedMocks.NewMockFetcher(ctrl)

	return aggregatorFixture{
		bookings: bookings,
		blocks:   blocks,
		fetcher:  fetcher,
		service:  service.New(bookings, blocks, fetcher, testConfig(windowMinutes), otelMocks.NewOtel()),
	}
}

func TestOccupiedRangesMergeOrder(t *testing.T) {
	fixture := newAggregatorFixture(t, 15)
	ctx := context.Background()

	airbnbStay, _ := daterange.New(day("2026-04-01"), day("2026-04-04"))
	bookingStay, _ := daterange.New(day("2026-04-10"), day("2026-04-12"))

	fixture.fetcher.EXPECT().
		Fetch(gomock.Any(), feed.Source{Tag: model.SourceAirbnb, URL: "https://airbnb.example/calendar.ics"}).
		Return([]model.ExternalOccupancy{{Range: airbnbStay, Source: model.SourceAirbnb, Summary: "Reserved"}})
	fixture.fetcher.EXPECT().
		Fetch(gomock.Any(), feed.Source{Tag: model.SourceBooking, URL: "https://booking.example/calendar.ics"}).
		Return([]model.ExternalOccupancy{{Range: bookingStay, Source: model.SourceBooking, Summary: "CLOSED"}})

	fixture.bookings.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{
			{
				ID:       "booking-1",
				CheckIn:  day("2026-04-20"),
				CheckOut: day("2026-04-23"),
				Status:   bookingModel.StatusConfirmed,
			},
		}, nil)

	fixture.blocks.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]blockModel.BlockedRange{
			{
				ID:        "block-1",
				StartDate: day("2026-05-01"),
				EndDate:   day("2026-05-01"),
			},
		}, nil)

	snapshot, err := fixture.service.OccupiedRanges(ctx)

	assert.NoError(t, err)
	assert.Len(t, snapshot.Ranges, 4)

	assert.Equal(t, model.SourceAirbnb, snapshot.Ranges[0].Source)
	assert.Equal(t, model.SourceBooking, snapshot.Ranges[1].Source)
	assert.Equal(t, model.SourceDirect, snapshot.Ranges[2].Source)
	assert.Equal(t, "booking-1", snapshot.Ranges[2].Reference)
	assert.Equal(t, model.SourceBlocked, snapshot.Ranges[3].Source)

	// single-day block covers exactly one night
	assert.Equal(t, day("2026-05-01"), snapshot.Ranges[3].Range.Start)
	assert.Equal(t, day("2026-05-02"), snapshot.Ranges[3].Range.End)
}

func TestOccupiedRangesQueryExcludesCancelledBookings(t *testing.T) {
	fixture := newAggregatorFixture(t, 15)
	ctx := context.Background()

	fixture.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	fixture.blocks.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	var filter gDto.FilterGroup

	fixture.bookings.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, f gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			filter = f

			return nil, nil
		})

	_, err := fixture.service.OccupiedRanges(ctx)

	assert.NoError(t, err)

	// cancelled bookings release their dates, so the aggregation query
	// must filter them out at the source
	excluded := false

	for _, raw := range filter.Filters {
		f, ok := raw.(gDto.Filter)
		if !ok {
			continue
		}

		if f.Field == bookingModel.FieldStatus &&
			f.Operator == gDto.FilterOperatorNotEq &&
			f.Value == bookingModel.StatusCancelled {
			excluded = true
		}
	}

	assert.True(t, excluded, "occupancy query must exclude cancelled bookings")
}

func TestOccupiedRangesServesCachedSnapshot(t *testing.T) {
	fixture := newAggregatorFixture(t, 15)
	ctx := context.Background()

	fixture.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	fixture.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)
	fixture.blocks.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

	first, err := fixture.service.OccupiedRanges(ctx)
	assert.NoError(t, err)

	// second call inside the window touches no feed and no repository
	second, err := fixture.service.OccupiedRanges(ctx)
	assert.NoError(t, err)
	assert.Equal(t, first.ComputedAt, second.ComputedAt)
}

func TestForceRefreshBypassesWindow(t *testing.T) {
	fixture := newAggregatorFixture(t, 15)
	ctx := context.Background()

	fixture.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil).Times(4)
	fixture.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	fixture.blocks.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	first, err := fixture.service.OccupiedRanges(ctx)
	assert.NoError(t, err)

	second, err := fixture.service.ForceRefresh(ctx)
	assert.NoError(t, err)
	assert.True(t, second.ComputedAt.Equal(first.ComputedAt) || second.ComputedAt.After(first.ComputedAt))
}

func TestOccupiedRangesDegradedFeedStillServesLocalData(t *testing.T) {
	fixture := newAggregatorFixture(t, 15)
	ctx := context.Background()

	bookingStay, _ := daterange.New(day("2026-04-10"), day("2026-04-12"))

	// one feed came back empty after an upstream failure, the other is fine
	fixture.fetcher.EXPECT().
		Fetch(gomock.Any(), feed.Source{Tag: model.SourceAirbnb, URL: "https://airbnb.example/calendar.ics"}).
		Return(nil)
	fixture.fetcher.EXPECT().
		Fetch(gomock.Any(), feed.Source{Tag: model.SourceBooking, URL: "https://booking.example/calendar.ics"}).
		Return([]model.ExternalOccupancy{{Range: bookingStay, Source: model.SourceBooking}})

	fixture.bookings.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{
			{ID: "booking-1", CheckIn: day("2026-04-20"), CheckOut: day("2026-04-22"), Status: bookingModel.StatusPending},
		}, nil)
	fixture.blocks.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	snapshot, err := fixture.service.OccupiedRanges(ctx)

	assert.NoError(t, err)
	assert.Len(t, snapshot.Ranges, 2)
	assert.Equal(t, model.SourceBooking, snapshot.Ranges[0].Source)
	assert.Equal(t, model.SourceDirect, snapshot.Ranges[1].Source)
}

func TestOccupiedRangesRepositoryErrorIsFatal(t *testing.T) {
	fixture := newAggregatorFixture(t, 15)
	ctx := context.Background()

	fixture.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	fixture.bookings.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	_, err := fixture.service.OccupiedRanges(ctx)

	assert.Error(t, err)
}

func TestOccupiedRangesSkipsInvertedBlock(t *testing.T) {
	fixture := newAggregatorFixture(t, 15)
	ctx := context.Background()

	fixture.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	fixture.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	fixture.blocks.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]blockModel.BlockedRange{
			{ID: "bad-block", StartDate: day("2026-05-10"), EndDate: day("2026-05-01")},
		}, nil)

	snapshot, err := fixture.service.OccupiedRanges(ctx)

	assert.NoError(t, err)
	assert.Empty(t, snapshot.Ranges)
}
