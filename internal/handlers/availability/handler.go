package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"

	"seaview/config"
	"seaview/infras/otel"
	"seaview/internal/domains/availability/service"
	"seaview/shared/constant"
	"seaview/transport/http/response"
)

type Handler struct {
	service service.Availability
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Availability, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAvailability)
		routerGroup.Post("/refresh", handler.RefreshAvailability)
		routerGroup.Get("/calendar.ics", handler.ExportCalendar)
	})
}

// GetAvailability returns the merged occupied-ranges view.
// @Summary Get occupied date ranges
// @Description Merge external platform calendars, local bookings and blocked ranges into one occupied view. Served from a short-lived snapshot.
// @Tags Availability
// @Accept json
// @Produce json
// @Success 200 {object} model.Snapshot "Occupied ranges with computation timestamp"
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	snapshot, err := handler.service.OccupiedRanges(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, snapshot)
}

// RefreshAvailability recomputes the merged view immediately.
// @Summary Force an availability refresh
// @Description Bypass the snapshot window and refetch the external calendars now.
// @Tags Availability
// @Accept json
// @Produce json
// @Success 200 {object} model.Snapshot "Freshly computed occupied ranges"
// @Failure 500 {object} response.Error
// @Router /v1/availability/refresh [post]
func (handler *Handler) RefreshAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshAvailability")
	defer scope.End()

	snapshot, err := handler.service.ForceRefresh(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability refreshed")

	response.WithJSON(w, http.StatusOK, snapshot)
}

// ExportCalendar serves the property's own occupancy as an iCalendar feed, so
// external platforms can import it the same way we import theirs.
// @Summary Export availability as iCalendar
// @Tags Availability
// @Produce plain
// @Success 200 {string} string "VCALENDAR document"
// @Failure 500 {object} response.Error
// @Router /v1/availability/calendar.ics [get]
func (handler *Handler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportCalendar")
	defer scope.End()

	snapshot, err := handler.service.OccupiedRanges(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export calendar")

		response.WithError(w, err)

		return
	}

	document := renderCalendar(snapshot, handler.cfg.Property.Name)

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeCalendar)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(document); err != nil {
		log.Error().Err(err).Msg("failed to write calendar response")
	}
}
