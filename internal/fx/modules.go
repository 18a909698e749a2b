package fx

import (
	"rollcall/internal/config"
	"rollcall/internal/database"
	"rollcall/internal/logger"
	"rollcall/internal/metrics"
	"rollcall/internal/repository"
	"rollcall/internal/server"
	"rollcall/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewAttendanceRepository),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewAttendanceService),
	// server
	fx.Provide(server.StaticFS),
	fx.Provide(server.NewHandler),
	fx.Provide(server.NewRouter),
)
