package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"seaview/config"
	"seaview/infras/otel"
	availability "seaview/internal/domains/availability/service"
	"seaview/internal/domains/block/model"
	"seaview/internal/domains/block/model/dto"
	"seaview/internal/domains/block/repository"
	"seaview/shared"
	"seaview/shared/cache"
	"seaview/shared/constant"
	gDto "seaview/shared/dto"
	"seaview/shared/failure"
)

const (
	cacheGetBlock     = "block:get"
	cacheGetAllBlocks = "block:get_all"
)

type Block interface {
	Create(ctx context.Context, req dto.CreateBlockRequest) (dto.BlockResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBlocksResponse, error)
	Get(ctx context.Context, id string) (dto.BlockResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Block
	availability availability.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Block, avail availability.Availability, cfg *config.Config, cache cache.RedisCache, ot otel.Otel) Block {
	return &serviceImpl{
		repo:         repo,
		availability: avail,
		cfg:          cfg,
		cache:        cache,
		otel:         ot,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlockRequest) (res dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	// both dates are inclusive; this rejects end-before-start and bad dates
	if _, err = req.Range(); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	block, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, block); err != nil {
		log.Error().Err(err).Msg("failed to create blocked range")

		return res, fmt.Errorf("failed to create blocked range: %w", err)
	}

	s.afterWrite(ctx)

	res.FromModel(block)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlocksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBlocks, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for blocked ranges")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count blocked ranges")

		return res, fmt.Errorf("failed to count blocked ranges: %w", err)
	}

	blocks, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocked ranges")

		return res, fmt.Errorf("failed to get blocked ranges: %w", err)
	}

	res.FromModels(blocks, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blocked ranges to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBlock, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	block, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocked range")

		return res, fmt.Errorf("failed to get blocked range: %w", err)
	}

	if block.ID == "" {
		return res, failure.NotFound("blocked range not found") // nolint:wrapcheck
	}

	res.FromModel(block)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blocked range to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if blocked range exists")

		return fmt.Errorf("failed to check if blocked range exists: %w", err)
	}

	if !exist {
		return failure.NotFound("blocked range not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete blocked range")

		return fmt.Errorf("failed to delete blocked range: %w", err)
	}

	s.afterWrite(ctx)

	return nil
}

// afterWrite drops stale caches and refreshes the merged availability view so
// a new or removed block is visible immediately.
func (s *serviceImpl) afterWrite(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetBlock)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBlocks)

		if _, err := s.availability.ForceRefresh(c); err != nil {
			log.Error().Err(err).Msg("availability refresh after block change failed")
		}
	}()
}
