//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"seaview/config"
	"seaview/infras/jwt"
	"seaview/infras/kafka"
	"seaview/infras/otel"
	"seaview/infras/postgres"
	"seaview/infras/redis"
	"seaview/infras/s3"
	"seaview/permissions"
	"seaview/shared/cache"
	"seaview/shared/lock"
	"seaview/transport/http"
	"seaview/transport/http/middleware"
	"seaview/transport/http/router"

	authService "seaview/internal/domains/auth/service"
	"seaview/internal/domains/availability/feed"
	availabilityService "seaview/internal/domains/availability/service"
	blockRepository "seaview/internal/domains/block/repository"
	blockService "seaview/internal/domains/block/service"
	bookingRepository "seaview/internal/domains/booking/repository"
	bookingService "seaview/internal/domains/booking/service"
	galleryRepository "seaview/internal/domains/gallery/repository"
	galleryService "seaview/internal/domains/gallery/service"
	notificationService "seaview/internal/domains/notification/service"
	operatorRepository "seaview/internal/domains/operator/repository"
	propertyRepository "seaview/internal/domains/property/repository"
	propertyService "seaview/internal/domains/property/service"

	authHandler "seaview/internal/handlers/auth"
	availabilityHandler "seaview/internal/handlers/availability"
	blockHandler "seaview/internal/handlers/block"
	bookingHandler "seaview/internal/handlers/booking"
	galleryHandler "seaview/internal/handlers/gallery"
	propertyHandler "seaview/internal/handlers/property"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lock.New,
)

var authDomain = wire.NewSet(
	operatorRepository.New,
	authService.New,
)

var availabilityDomain = wire.NewSet(
	feed.New,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	notificationService.New,
	bookingService.New,
)

var blockDomain = wire.NewSet(
	blockRepository.New,
	blockService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyService.New,
)

var domains = wire.NewSet(
	authDomain,
	availabilityDomain,
	bookingDomain,
	blockDomain,
	galleryDomain,
	propertyDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	availabilityHandler.New,
	blockHandler.New,
	bookingHandler.New,
	galleryHandler.New,
	propertyHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
