package main

import (
	"context"

	"go.uber.org/fx"
	"google.golang.org/grpc"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/logger"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/repository"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/rpc"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/service"
	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/transport"
)

func main() {
	fx.New(
		fx.Provide(
			config.NewConfig,
			logger.New,
			logger.NewSugared,
			db.NewGormClient,
			fx.Annotate(repository.NewGorm, fx.As(new(repository.Store))),
			service.NewBookmarks,
		),
		fx.WithLogger(logger.NewFxLogger),
		// hooks stop in reverse order, so the database is closed after both servers
		fx.Invoke(closeDB),
		transport.Module,
		rpc.Module,
		fx.Invoke(func(*grpc.Server) {}),
	).Run()
}

func closeDB(lc fx.Lifecycle, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
