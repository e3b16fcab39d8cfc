package router

import (
	"frontdesk/internal/handlers/auth"
	"frontdesk/internal/handlers/catalog"
	"frontdesk/internal/handlers/event"
	"frontdesk/internal/handlers/ledger"
	"frontdesk/internal/handlers/occupancy"
	"frontdesk/internal/handlers/room"
	"frontdesk/internal/handlers/stay"
	"frontdesk/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Room      room.Handler
	Event     event.Handler
	Stay      stay.Handler
	Occupancy occupancy.Handler
	Ledger    ledger.Handler
	Catalog   catalog.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Stay.Router(routerGroup)
		r.DomainHandlers.Occupancy.Router(routerGroup)
		r.DomainHandlers.Ledger.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
