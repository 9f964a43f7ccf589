package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"seaview/infras/otel"
	"seaview/infras/postgres"
	"seaview/internal/domains/block/model"
	gDto "seaview/shared/dto"
	gRepo "seaview/shared/repository"
)

type Block interface {
	Insert(ctx context.Context, model model.BlockedRange) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BlockedRange, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BlockedRange, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BlockedRange]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Block {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BlockedRange](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
