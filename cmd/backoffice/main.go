package main

import (
	"context"
	"time"

	"khoomi-api-io/backoffice/config"
	"khoomi-api-io/backoffice/internal/container"
	"khoomi-api-io/backoffice/internal/routers"
	"khoomi-api-io/backoffice/pkg/controllers"
	"khoomi-api-io/backoffice/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		util.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	util.InitLogger(cfg.Env, cfg.LogLevel)
	controllers.RequestTimeout = cfg.RequestTimeout

	db, err := util.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		util.Log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Disconnect(ctx)
	}()

	rdb, err := util.ConnectRedis(cfg.RedisURL)
	if err != nil {
		util.Log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer rdb.Close()

	serviceContainer := container.NewServiceContainer(cfg, db, rdb)
	router := routers.InitRoute(cfg, serviceContainer)

	util.Log.Info().Str("addr", cfg.Address()).Msg("back-office listening")
	if err := router.Run(cfg.Address()); err != nil {
		util.Log.Fatal().Err(err).Msg("Failed to start server")
	}
}
