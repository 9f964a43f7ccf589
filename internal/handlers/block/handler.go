package block

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"

	"seaview/infras/otel"
	"seaview/internal/domains/block/model/dto"
	"seaview/internal/domains/block/service"
	"seaview/shared/constant"
	gDto "seaview/shared/dto"
	"seaview/shared/validator"
	"seaview/transport/http/response"
)

type Handler struct {
	service service.Block
	otel    otel.Otel
}

func New(service service.Block, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blocks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBlock)
		routerGroup.Get("/", handler.GetBlocks)
		routerGroup.Get("/{id}", handler.GetBlockByID)
		routerGroup.Delete("/{id}", handler.DeleteBlock)
	})
}

// CreateBlock marks a date span as unavailable.
// @Summary Create a blocked range
// @Description Block a span of dates from booking. Both dates are inclusive.
// @Tags Block
// @Accept json
// @Produce json
// @Param request body dto.CreateBlockRequest true "Create Block Request"
// @Success 201 {object} dto.BlockResponse "Blocked range created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks [post]
// @Security BearerAuth
func (handler *Handler) CreateBlock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlock")
	defer scope.End()

	req := dto.CreateBlockRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create blocked range")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBlocks lists blocked ranges.
// @Summary List blocked ranges
// @Tags Block
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetBlocksResponse "List of blocked ranges"
// @Failure 500 {object} response.Error
// @Router /v1/blocks [get]
// @Security BearerAuth
func (handler *Handler) GetBlocks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlocks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	blocks, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blocked ranges")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, blocks)
}

// GetBlockByID retrieves one blocked range.
// @Summary Get a blocked range by ID
// @Tags Block
// @Accept json
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} dto.BlockResponse "Blocked range details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBlockByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlockByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	block, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blocked range by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, block)
}

// DeleteBlock removes a blocked range, freeing its dates.
// @Summary Delete a blocked range by ID
// @Tags Block
// @Accept json
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Message "Blocked range deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlock")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete blocked range")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Blocked range deleted successfully")
}
