package router

import (
	"github.com/go-chi/chi/v5"

	"seaview/internal/handlers/auth"
	"seaview/internal/handlers/availability"
	"seaview/internal/handlers/block"
	"seaview/internal/handlers/booking"
	"seaview/internal/handlers/gallery"
	"seaview/internal/handlers/property"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Availability availability.Handler
	Block        block.Handler
	Booking      booking.Handler
	Gallery      gallery.Handler
	Property     property.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Block.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Property.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
