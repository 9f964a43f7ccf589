package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seaview/config"
	otelMocks "seaview/infras/otel/mocks"
	availabilityMocks "seaview/internal/domains/availability/mocks"
	availabilityModel "seaview/internal/domains/availability/model"
	blockMocks "seaview/internal/domains/block/mocks"
	"seaview/internal/domains/block/model"
	"seaview/internal/domains/block/model/dto"
	"seaview/internal/domains/block/service"
	cacheMocks "seaview/shared/cache/mocks"
	"seaview/shared/failure"
	gDto "seaview/shared/dto"
)

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	repo         *blockMocks.MockBlock
	availability *availabilityMocks.MockAvailability
	cache        *cacheMocks.MockRedisCache
	service      service.Block
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := blockMocks.NewMockBlock(ctrl)
	avail := availabilityMocks.NewMockAvailability(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	return fixture{
		repo:         repo,
		availability: avail,
		cache:        redisCache,
		service:      service.New(repo, avail, cfg, redisCache, otelMocks.NewOtel()),
	}
}

func TestBlockCreate(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBlockRequest
		setupMock func(fix fixture)
		wantCode  int
	}{
		{
			name: "single day block",
			req:  dto.CreateBlockRequest{StartDate: "2026-07-01", EndDate: "2026-07-01", Reason: "maintenance"},
			setupMock: func(fix fixture) {
				fix.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				fix.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				fix.availability.EXPECT().
					ForceRefresh(gomock.Any()).
					Return(availabilityModel.Snapshot{}, nil).
					AnyTimes()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "end before start",
			req:       dto.CreateBlockRequest{StartDate: "2026-07-10", EndDate: "2026-07-01"},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unparseable date",
			req:       dto.CreateBlockRequest{StartDate: "july 1st", EndDate: "2026-07-03"},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newFixture(t)
			tt.setupMock(fix)

			res, err := fix.service.Create(context.Background(), tt.req)

			if tt.wantCode == http.StatusOK {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, tt.req.StartDate, res.StartDate)
				assert.Equal(t, tt.req.EndDate, res.EndDate)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestBlockGetAllCacheMiss(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	blocks := []model.BlockedRange{
		{ID: "block-1", StartDate: day("2026-07-01"), EndDate: day("2026-07-03")},
	}

	fix.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
	fix.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	fix.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(blocks, nil)
	fix.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 300).Return(nil).AnyTimes()

	res, err := fix.service.GetAll(ctx, gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Blocks, 1)
	assert.Equal(t, "2026-07-01", res.Blocks[0].StartDate)
	assert.Equal(t, "2026-07-03", res.Blocks[0].EndDate)
}

func TestBlockGetAllCacheHit(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	fix.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res := value.(*dto.GetBlocksResponse)
			res.Blocks = []dto.BlockResponse{{ID: "cached-block"}}
			res.TotalData = 1

			return nil
		})

	res, err := fix.service.GetAll(ctx, gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, "cached-block", res.Blocks[0].ID)
}

func TestBlockDeleteNotFound(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	fix.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).AnyTimes()
	fix.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := fix.service.Delete(ctx, "missing")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return parsed
}
