package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seaview/config"
	"seaview/infras/otel/mocks"
	s3Mocks "seaview/infras/s3/mocks"
	galleryMocks "seaview/internal/domains/gallery/mocks"
	"seaview/internal/domains/gallery/model"
	"seaview/internal/domains/gallery/model/dto"
	"seaview/internal/domains/gallery/service"
	cacheMocks "seaview/shared/cache/mocks"
	gDto "seaview/shared/dto"
	"seaview/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	repo  *galleryMocks.MockGalleryArea
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3

	service service.Gallery
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := galleryMocks.NewMockGalleryArea(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)
	s3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "seaview-media"

	return fixture{
		repo:    repo,
		cache:   cache,
		s3:      s3,
		service: service.New(repo, cfg, cache, mocks.NewOtel(), s3),
	}
}

func poolArea() model.Area {
	return model.Area{
		ID:        "area-pool",
		Area:      "pool",
		Title:     "Infinity Pool",
		Caption:   "Heated infinity pool overlooking the bay",
		SortOrder: 2,
		Photos:    []string{"https://cdn.example.com/gallery_area/pool-1.jpg"},
	}
}

func (f fixture) expectInvalidate() {
	f.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func TestGalleryCreateArea(t *testing.T) {
	fix := newFixture(t)
	fix.expectInvalidate()

	fix.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	var inserted model.Area

	fix.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, area model.Area) error {
			inserted = area

			return nil
		})

	err := fix.service.Create(context.Background(), dto.CreateAreaRequest{
		Area:      "garden",
		Title:     "Mediterranean Garden",
		SortOrder: 4,
	})

	assert.NoError(t, err)
	assert.Equal(t, "garden", inserted.Area)
	assert.Equal(t, 4, inserted.SortOrder)
	assert.NotEmpty(t, inserted.ID)
}

func TestGalleryCreateAreaDuplicateName(t *testing.T) {
	fix := newFixture(t)

	fix.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	err := fix.service.Create(context.Background(), dto.CreateAreaRequest{
		Area:  "pool",
		Title: "Infinity Pool",
	})

	assert.Error(t, err)
	assert.Equal(t, 409, failure.GetCode(err))
}

func TestGalleryTourOrderedBySortOrder(t *testing.T) {
	fix := newFixture(t)

	fix.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errCacheMiss)

	var params gDto.QueryParams

	fix.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Area, error) {
			params = p

			return []model.Area{poolArea()}, nil
		})

	fix.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).
		Return(nil).
		AnyTimes()

	res, err := fix.service.Tour(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, model.FieldSortOrder, params.SortBy)
	assert.Equal(t, "ASC", params.SortDir)
	assert.Len(t, res.Areas, 1)
	assert.Equal(t, 1, res.PhotoCount)
}

func TestGalleryTourCacheHit(t *testing.T) {
	fix := newFixture(t)

	fix.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, _ := value.(*dto.TourResponse)
			res.FromModels([]model.Area{poolArea()})

			return nil
		})

	res, err := fix.service.Tour(context.Background())

	assert.NoError(t, err)
	assert.Len(t, res.Areas, 1)
	assert.Equal(t, "pool", res.Areas[0].Area)
}

func TestGalleryGetAreaNotFound(t *testing.T) {
	fix := newFixture(t)

	fix.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errCacheMiss)

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Area{}, nil)

	_, err := fix.service.Get(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestGalleryUpdateAreaRejectsEmptyRequest(t *testing.T) {
	fix := newFixture(t)

	err := fix.service.Update(context.Background(), dto.UpdateAreaRequest{}, "area-pool")

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestGalleryUpdateArea(t *testing.T) {
	fix := newFixture(t)
	fix.expectInvalidate()

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(poolArea(), nil)

	var patch map[string]any

	fix.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
			patch = req

			return nil
		})

	order := 5
	err := fix.service.Update(context.Background(), dto.UpdateAreaRequest{SortOrder: &order}, "area-pool")

	assert.NoError(t, err)
	assert.Contains(t, patch, model.FieldSortOrder)
}

func TestGalleryAddPhotoAttachesToArea(t *testing.T) {
	fix := newFixture(t)
	fix.expectInvalidate()

	header := &multipart.FileHeader{Filename: "pool-2.jpg"}
	uploadedURL := "https://cdn.example.com/gallery_area/pool-2.jpg"

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(poolArea(), nil)

	fix.s3.EXPECT().
		UploadFile(gomock.Any(), "seaview-media", model.EntityName, gomock.Any(), header, "pool-2.jpg").
		Return(uploadedURL, nil)

	var patch map[string]any

	fix.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
			patch = req

			return nil
		})

	res, err := fix.service.AddPhoto(context.Background(), "area-pool", dto.AddPhotoRequest{Photo: header})

	assert.NoError(t, err)
	assert.Equal(t, uploadedURL, res.URL)

	photos, _ := patch[model.FieldPhotos].([]string)
	assert.Contains(t, photos, uploadedURL, "uploaded photo should be attached to the area row")
}

func TestGalleryRemovePhotoNotAttached(t *testing.T) {
	fix := newFixture(t)

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(poolArea(), nil)

	err := fix.service.RemovePhoto(context.Background(), "area-pool", dto.RemovePhotoRequest{
		PhotoURL: "https://cdn.example.com/gallery_area/unknown.jpg",
	})

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestGalleryRemovePhoto(t *testing.T) {
	fix := newFixture(t)
	fix.expectInvalidate()

	area := poolArea()
	target := area.Photos[0]

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(area, nil)

	var patch map[string]any

	fix.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
			patch = req

			return nil
		})

	fix.s3.EXPECT().
		GetObjectNameFromURL("seaview-media", target).
		Return("pool-1.jpg").
		AnyTimes()

	fix.s3.EXPECT().
		DeleteFile(gomock.Any(), "seaview-media", model.EntityName, "pool-1.jpg").
		Return(nil).
		AnyTimes()

	err := fix.service.RemovePhoto(context.Background(), "area-pool", dto.RemovePhotoRequest{PhotoURL: target})

	assert.NoError(t, err)

	photos, _ := patch[model.FieldPhotos].([]string)
	assert.NotContains(t, photos, target, "removed photo should be detached from the area row")
}

func TestGalleryDeleteArea(t *testing.T) {
	fix := newFixture(t)
	fix.expectInvalidate()

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(poolArea(), nil)

	fix.repo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil)

	fix.s3.EXPECT().
		GetObjectNameFromURL(gomock.Any(), gomock.Any()).
		Return("pool-1.jpg").
		AnyTimes()

	fix.s3.EXPECT().
		DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	err := fix.service.Delete(context.Background(), "area-pool")

	assert.NoError(t, err)
}

func TestGalleryDeleteAreaNotFound(t *testing.T) {
	fix := newFixture(t)

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Area{}, nil)

	err := fix.service.Delete(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
