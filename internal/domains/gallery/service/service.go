package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"seaview/config"
	"seaview/infras/otel"
	"seaview/infras/s3"
	"seaview/internal/domains/gallery/model"
	"seaview/internal/domains/gallery/model/dto"
	"seaview/internal/domains/gallery/repository"
	"seaview/shared"
	"seaview/shared/cache"
	"seaview/shared/constant"
	gDto "seaview/shared/dto"
	"seaview/shared/failure"
	"seaview/shared/timezone"
)

const (
	cachePrefix = "gallery"
	cacheTour   = "gallery:tour"
	cacheArea   = "gallery:area"
)

// Gallery manages the villa's photo tour: the ordered set of areas and
// the photos attached to each of them.
type Gallery interface {
	Create(ctx context.Context, req dto.CreateAreaRequest) error
	Tour(ctx context.Context) (dto.TourResponse, error)
	Get(ctx context.Context, id string) (dto.AreaResponse, error)
	Update(ctx context.Context, req dto.UpdateAreaRequest, id string) error
	Delete(ctx context.Context, id string) error
	AddPhoto(ctx context.Context, id string, req dto.AddPhotoRequest) (dto.AddPhotoResponse, error)
	RemovePhoto(ctx context.Context, id string, req dto.RemovePhotoRequest) error
}

type serviceImpl struct {
	repo  repository.GalleryArea
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.GalleryArea, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAreaRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	taken, err := s.repo.Exist(ctx, s.filterByArea(req.Area))
	if err != nil {
		log.Error().Err(err).Msg("failed to check gallery area name")

		return fmt.Errorf("failed to check gallery area name: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("gallery area %q already exists", req.Area)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create gallery area")

		return fmt.Errorf("failed to create gallery area: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Tour returns every area in display order. The whole tour is cached as
// one entry since it changes rarely and is the landing-page payload.
func (s *serviceImpl) Tour(ctx context.Context) (res dto.TourResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Tour")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheTour)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	areas, err := s.repo.GetAll(ctx, s.tourOrdering(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery areas")

		return res, fmt.Errorf("failed to get gallery areas: %w", err)
	}

	res.FromModels(areas)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery tour to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AreaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheArea, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	area, err := s.fetch(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(area)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery area to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAreaRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateAreaRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if _, err = s.fetch(ctx, id); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), s.filterByID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update gallery area")

		return fmt.Errorf("failed to update gallery area: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	area, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, s.filterByID(id)); err != nil {
		log.Error().Err(err).Msg("failed to delete gallery area")

		return fmt.Errorf("failed to delete gallery area: %w", err)
	}

	s.invalidate(ctx)
	s.cleanupPhotos(ctx, area.Photos)

	return nil
}

func (s *serviceImpl) AddPhoto(ctx context.Context, id string, req dto.AddPhotoRequest) (res dto.AddPhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddPhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	area, err := s.fetch(ctx, id)
	if err != nil {
		return res, err
	}

	bucketName := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.PhotoFile, req.Photo, req.Photo.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload photo to S3")

		return res, fmt.Errorf("failed to upload photo to S3: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	patch := map[string]any{
		model.FieldPhotos:        append(area.Photos, url),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, patch, s.filterByID(id)); err != nil {
		log.Error().Err(err).Msg("failed to attach photo to gallery area")

		return res, fmt.Errorf("failed to attach photo to gallery area: %w", err)
	}

	s.invalidate(ctx)

	res.URL = url
	res.FileName = req.Photo.Filename

	return res, nil
}

func (s *serviceImpl) RemovePhoto(ctx context.Context, id string, req dto.RemovePhotoRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemovePhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	area, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	idx := slices.Index(area.Photos, req.PhotoURL)
	if idx == -1 {
		return failure.NotFound("photo not attached to this gallery area") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	patch := map[string]any{
		model.FieldPhotos:        slices.Delete(area.Photos, idx, idx+1),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, patch, s.filterByID(id)); err != nil {
		log.Error().Err(err).Msg("failed to detach photo from gallery area")

		return fmt.Errorf("failed to detach photo from gallery area: %w", err)
	}

	s.invalidate(ctx)
	s.cleanupPhotos(ctx, []string{req.PhotoURL})

	return nil
}

func (s *serviceImpl) fetch(ctx context.Context, id string) (model.Area, error) {
	area, err := s.repo.Get(ctx, s.filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery area")

		return model.Area{}, fmt.Errorf("failed to get gallery area: %w", err)
	}

	if area.ID == constant.Empty {
		return model.Area{}, failure.NotFound("gallery area not found") // nolint:wrapcheck
	}

	return area, nil
}

// cleanupPhotos removes detached photos from S3 in the background.
// Failures are logged only; the database row is already consistent.
func (s *serviceImpl) cleanupPhotos(ctx context.Context, urls []string) {
	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName

		for _, url := range urls {
			objectName := s.s3.GetObjectNameFromURL(bucketName, url)
			if objectName == constant.Empty {
				log.Warn().Str("url", url).Msg("failed to extract object name from URL")

				continue
			}

			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete photo from S3")
			}
		}
	}()
}

func (s *serviceImpl) tourOrdering() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  model.FieldSortOrder,
		SortDir: "ASC",
	}
}

func (s *serviceImpl) filterByID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) filterByArea(area string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldArea,
				Operator: gDto.FilterOperatorEq,
				Value:    area,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cachePrefix)
	}()
}
