package repository

import (
	"context"
	"seaview/infras/otel"
	"seaview/infras/postgres"
	"seaview/internal/domains/gallery/model"
	gDto "seaview/shared/dto"
	gRepo "seaview/shared/repository"
)

type GalleryArea interface {
	Insert(ctx context.Context, model model.Area) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Area, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Area, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Area]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) GalleryArea {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Area](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
