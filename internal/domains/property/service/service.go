package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"seaview/config"
	"seaview/infras/otel"
	"seaview/infras/s3"
	"seaview/internal/domains/property/model"
	"seaview/internal/domains/property/model/dto"
	"seaview/internal/domains/property/repository"
	"seaview/shared"
	"seaview/shared/cache"
	"seaview/shared/constant"
	gDto "seaview/shared/dto"
	"seaview/shared/failure"
	"seaview/shared/timezone"
)

const cacheGetProperty = "property:get"

type Property interface {
	Get(ctx context.Context) (dto.PropertyResponse, error)
	Update(ctx context.Context, req dto.UpdatePropertyRequest) error
	UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest) (dto.UploadPhotoResponse, error)
	DeletePhoto(ctx context.Context, req dto.DeletePhotoRequest) error
}

type serviceImpl struct {
	repo  repository.Property
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Property {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProperty, model.SingletonID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	property, err := s.fetch(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(property)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePropertyRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdatePropertyRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), s.singletonFilter()); err != nil {
		log.Error().Err(err).Msg("failed to update property")

		return fmt.Errorf("failed to update property: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest) (res dto.UploadPhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.PhotoFile, req.Photo, req.Photo.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload photo to S3")

		return res, fmt.Errorf("failed to upload photo to S3: %w", err)
	}

	property, err := s.fetch(ctx)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	patch := map[string]any{
		model.FieldPhotos:        append(property.Photos, url),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, patch, s.singletonFilter()); err != nil {
		log.Error().Err(err).Msg("failed to attach photo to property")

		return res, fmt.Errorf("failed to attach photo to property: %w", err)
	}

	s.invalidate(ctx)

	res.URL = url
	res.FileName = req.Photo.Filename

	return res, nil
}

func (s *serviceImpl) DeletePhoto(ctx context.Context, req dto.DeletePhotoRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeletePhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	property, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	idx := slices.Index(property.Photos, req.PhotoURL)
	if idx == -1 {
		return failure.NotFound("photo not found on property") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	patch := map[string]any{
		model.FieldPhotos:        slices.Delete(property.Photos, idx, idx+1),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, patch, s.singletonFilter()); err != nil {
		log.Error().Err(err).Msg("failed to detach photo from property")

		return fmt.Errorf("failed to detach photo from property: %w", err)
	}

	s.invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, req.PhotoURL)
		if objectName == constant.Empty {
			log.Warn().Str("url", req.PhotoURL).Msg("failed to extract object name from URL")

			return
		}

		if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete photo from S3")
		}
	}()

	return nil
}

func (s *serviceImpl) fetch(ctx context.Context) (model.Property, error) {
	property, err := s.repo.Get(ctx, s.singletonFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return model.Property{}, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return model.Property{}, failure.NotFound("property not found") // nolint:wrapcheck
	}

	return property, nil
}

func (s *serviceImpl) singletonFilter() gDto.FilterGroup {
	return shared.FilterByID(model.SingletonID, model.FieldID, model.TableName)
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetProperty)
	}()
}
