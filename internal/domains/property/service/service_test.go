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
	propertyMocks "seaview/internal/domains/property/mocks"
	"seaview/internal/domains/property/model"
	"seaview/internal/domains/property/model/dto"
	"seaview/internal/domains/property/service"
	cacheMocks "seaview/shared/cache/mocks"
	gDto "seaview/shared/dto"
	"seaview/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	repo  *propertyMocks.MockProperty
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3

	service service.Property
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := propertyMocks.NewMockProperty(ctrl)
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

func seededProperty() model.Property {
	return model.Property{
		ID:          model.SingletonID,
		Name:        "Seaview Villa",
		Headline:    "A seaside villa for your getaway",
		MaxGuests:   8,
		Bedrooms:    4,
		Bathrooms:   3,
		NightlyRate: 150,
		Photos:      []string{"https://cdn.example.com/property/front.jpg"},
	}
}

func TestPropertyGetCacheMiss(t *testing.T) {
	fix := newFixture(t)

	fix.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errCacheMiss)

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(seededProperty(), nil)

	fix.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).
		Return(nil).
		AnyTimes()

	res, err := fix.service.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Seaview Villa", res.Name)
	assert.Equal(t, 8, res.MaxGuests)
}

func TestPropertyGetCacheHit(t *testing.T) {
	fix := newFixture(t)

	fix.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, ok := value.(*dto.PropertyResponse)
			if !ok {
				t.Fatalf("unexpected cache value type %T", value)
			}

			res.FromModel(seededProperty())

			return nil
		})

	res, err := fix.service.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Seaview Villa", res.Name)
}

func TestPropertyGetNotFound(t *testing.T) {
	fix := newFixture(t)

	fix.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errCacheMiss)

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Property{}, nil)

	_, err := fix.service.Get(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestPropertyUpdateRejectsEmptyRequest(t *testing.T) {
	fix := newFixture(t)

	err := fix.service.Update(context.Background(), dto.UpdatePropertyRequest{})
	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestPropertyUpdate(t *testing.T) {
	fix := newFixture(t)

	fix.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	fix.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	err := fix.service.Update(context.Background(), dto.UpdatePropertyRequest{NightlyRate: 175})
	assert.NoError(t, err)
}

func TestPropertyUploadPhoto(t *testing.T) {
	fix := newFixture(t)

	header := &multipart.FileHeader{Filename: "pool.jpg"}

	fix.s3.EXPECT().
		UploadFile(gomock.Any(), "seaview-media", model.EntityName, gomock.Any(), header, "pool.jpg").
		Return("https://cdn.example.com/property/pool.jpg", nil)

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(seededProperty(), nil)

	fix.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, patch map[string]any, _ gDto.FilterGroup) error {
			photos, ok := patch[model.FieldPhotos].([]string)
			if !ok {
				t.Fatal("patch is missing photos")
			}

			assert.Contains(t, photos, "https://cdn.example.com/property/pool.jpg")

			return nil
		})

	fix.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := fix.service.UploadPhoto(context.Background(), dto.UploadPhotoRequest{Photo: header})
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/property/pool.jpg", res.URL)
	assert.Equal(t, "pool.jpg", res.FileName)
}

func TestPropertyDeletePhotoNotAttached(t *testing.T) {
	fix := newFixture(t)

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(seededProperty(), nil)

	err := fix.service.DeletePhoto(context.Background(), dto.DeletePhotoRequest{
		PhotoURL: "https://cdn.example.com/property/unknown.jpg",
	})
	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestPropertyDeletePhoto(t *testing.T) {
	fix := newFixture(t)

	fix.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(seededProperty(), nil)

	fix.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, patch map[string]any, _ gDto.FilterGroup) error {
			photos, ok := patch[model.FieldPhotos].([]string)
			if !ok {
				t.Fatal("patch is missing photos")
			}

			assert.Empty(t, photos)

			return nil
		})

	fix.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	fix.s3.EXPECT().
		GetObjectNameFromURL("seaview-media", "https://cdn.example.com/property/front.jpg").
		Return("front.jpg").
		AnyTimes()

	fix.s3.EXPECT().
		DeleteFile(gomock.Any(), "seaview-media", model.EntityName, "front.jpg").
		Return(nil).
		AnyTimes()

	err := fix.service.DeletePhoto(context.Background(), dto.DeletePhotoRequest{
		PhotoURL: "https://cdn.example.com/property/front.jpg",
	})
	assert.NoError(t, err)
}
