//go:build wireinject
// +build wireinject

package di

import (
	"lodge/config"
	"lodge/infras/jwt"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/pdf"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	"lodge/infras/s3"
	"lodge/permissions"
	"lodge/shared/cache"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"

	authService "lodge/internal/domains/auth/service"
	bookingRepository "lodge/internal/domains/booking/repository"
	bookingService "lodge/internal/domains/booking/service"
	customerRepository "lodge/internal/domains/customer/repository"
	customerService "lodge/internal/domains/customer/service"
	dashboardService "lodge/internal/domains/dashboard/service"
	roomRepository "lodge/internal/domains/room/repository"
	roomService "lodge/internal/domains/room/service"
	userRepository "lodge/internal/domains/user/repository"

	authHandler "lodge/internal/handlers/auth"
	bookingHandler "lodge/internal/handlers/booking"
	customerHandler "lodge/internal/handlers/customer"
	dashboardHandler "lodge/internal/handlers/dashboard"
	roomHandler "lodge/internal/handlers/room"

	"github.com/google/wire"
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
	pdf.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var domains = wire.NewSet(
	roomDomain,
	customerDomain,
	bookingDomain,
	authDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	customerHandler.New,
	bookingHandler.New,
	dashboardHandler.New,
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
