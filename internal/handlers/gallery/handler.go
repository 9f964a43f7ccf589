package gallery

import (
	"net/http"
	"seaview/infras/otel"
	"seaview/internal/domains/gallery/model/dto"
	"seaview/internal/domains/gallery/service"
	"seaview/shared/constant"
	"seaview/shared/validator"
	"seaview/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTour)
		routerGroup.Post("/areas", handler.CreateArea)
		routerGroup.Get("/areas/{id}", handler.GetArea)
		routerGroup.Patch("/areas/{id}", handler.UpdateArea)
		routerGroup.Delete("/areas/{id}", handler.DeleteArea)
		routerGroup.Post("/areas/{id}/photos", handler.AddPhoto)
		routerGroup.Delete("/areas/{id}/photos", handler.RemovePhoto)
	})
}

// GetTour returns the villa's photo tour.
// @Summary Get the villa photo tour
// @Description Retrieve every gallery area with its photos, in display order.
// @Tags Gallery
// @Accept json
// @Produce json
// @Success 200 {object} dto.TourResponse "Photo tour"
// @Failure 500 {object} response.Error
// @Router /v1/gallery [get]
func (handler *Handler) GetTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTour")
	defer scope.End()

	tour, err := handler.service.Tour(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get photo tour")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photo tour retrieved successfully")

	response.WithJSON(w, http.StatusOK, tour)
}

// CreateArea adds a new area to the photo tour.
// @Summary Create a gallery area
// @Description Create a new villa area to attach photos to.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param request body dto.CreateAreaRequest true "Create Area Request"
// @Success 201 {object} response.Message "Gallery area created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/areas [post]
// @Security BearerAuth
func (handler *Handler) CreateArea(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateArea")
	defer scope.End()

	req := dto.CreateAreaRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery area")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery area created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Gallery area created successfully")
}

// GetArea retrieves a single gallery area.
// @Summary Get a gallery area by ID
// @Description Retrieve one villa area with its photos.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} dto.AreaResponse "Gallery area details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/areas/{id} [get]
func (handler *Handler) GetArea(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetArea")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	area, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery area")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery area retrieved successfully")

	response.WithJSON(w, http.StatusOK, area)
}

// UpdateArea updates a gallery area's title, caption or position.
// @Summary Update a gallery area
// @Description Update the details of an existing gallery area.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Area ID"
// @Param request body dto.UpdateAreaRequest true "Update Area Request"
// @Success 200 {object} response.Message "Gallery area updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/areas/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateArea")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAreaRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery area")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery area updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gallery area updated successfully")
}

// DeleteArea removes an area and its photos from the tour.
// @Summary Delete a gallery area
// @Description Delete a gallery area; its photos are removed from storage as well.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Area ID"
// @Success 200 {object} response.Message "Gallery area deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/areas/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteArea(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteArea")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery area")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery area deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gallery area deleted successfully")
}

// AddPhoto uploads a photo and attaches it to an area.
// @Summary Add a photo to a gallery area
// @Description Upload a photo to storage and attach it to the given area.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Area ID"
// @Param file formData file true "Photo to upload"
// @Success 200 {object} dto.AddPhotoResponse "Photo added successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/areas/{id}/photos [post]
// @Security BearerAuth
func (handler *Handler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.AddPhotoRequest{
		Photo:     fileHeader,
		PhotoFile: file,
	}

	res, err := handler.service.AddPhoto(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add photo to gallery area")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Photo added successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// RemovePhoto detaches a photo from an area and deletes it from storage.
// @Summary Remove a photo from a gallery area
// @Description Detach a photo from the given area and delete it from storage.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Area ID"
// @Param request body dto.RemovePhotoRequest true "Remove Photo Request"
// @Success 200 {object} response.Message "Photo removed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/areas/{id}/photos [delete]
// @Security BearerAuth
func (handler *Handler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemovePhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RemovePhotoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.RemovePhoto(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove photo from gallery area")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Photo removed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Photo removed successfully")
}
