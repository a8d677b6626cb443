package router

import (
	"lodge/config"
	"lodge/internal/handlers/auth"
	"lodge/internal/handlers/booking"
	"lodge/internal/handlers/customer"
	"lodge/internal/handlers/dashboard"
	"lodge/internal/handlers/room"
	"lodge/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Room      room.Handler
	Customer  customer.Handler
	Booking   booking.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
	App            middleware.AppMiddleware
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.App.Tracing)
	router.Use(r.App.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, app middleware.AppMiddleware, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
		App:            app,
		Config:         cfg,
	}
}
