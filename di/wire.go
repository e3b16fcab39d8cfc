//go:build wireinject
// +build wireinject

package di

import (
	"frontdesk/config"
	"frontdesk/infras/jwt"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/infras/postgres"
	"frontdesk/infras/redis"
	"frontdesk/permissions"
	"frontdesk/shared/cache"
	"frontdesk/transport/http"
	"frontdesk/transport/http/middleware"
	"frontdesk/transport/http/router"

	"github.com/google/wire"

	authService "frontdesk/internal/domains/auth/service"
	catalogService "frontdesk/internal/domains/catalog/service"
	eventRepository "frontdesk/internal/domains/event/repository"
	eventService "frontdesk/internal/domains/event/service"
	ledgerService "frontdesk/internal/domains/ledger/service"
	occupancyService "frontdesk/internal/domains/occupancy/service"
	roomRepository "frontdesk/internal/domains/room/repository"
	roomService "frontdesk/internal/domains/room/service"
	stayService "frontdesk/internal/domains/stay/service"
	userRepository "frontdesk/internal/domains/user/repository"
	userService "frontdesk/internal/domains/user/service"

	authHandler "frontdesk/internal/handlers/auth"
	catalogHandler "frontdesk/internal/handlers/catalog"
	eventHandler "frontdesk/internal/handlers/event"
	ledgerHandler "frontdesk/internal/handlers/ledger"
	occupancyHandler "frontdesk/internal/handlers/occupancy"
	roomHandler "frontdesk/internal/handlers/room"
	stayHandler "frontdesk/internal/handlers/stay"
	userHandler "frontdesk/internal/handlers/user"
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
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var stayDomain = wire.NewSet(
	stayService.New,
)

var occupancyDomain = wire.NewSet(
	occupancyService.New,
	occupancyService.NewRefresher,
)

var ledgerDomain = wire.NewSet(
	ledgerService.New,
)

var catalogDomain = wire.NewSet(
	catalogService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	eventDomain,
	roomDomain,
	stayDomain,
	occupancyDomain,
	ledgerDomain,
	catalogDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	eventHandler.New,
	stayHandler.New,
	occupancyHandler.New,
	ledgerHandler.New,
	catalogHandler.New,
	router.New,
)

type App struct {
	HTTP      *http.HTTP
	Refresher *occupancyService.Refresher
}

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
