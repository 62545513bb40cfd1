package main

import (
	"context"
	"fmt"

	"github.com/avialine/flight-booking/internal/cache"
	"github.com/avialine/flight-booking/internal/config"
	handlerHTTP "github.com/avialine/flight-booking/internal/handler/http"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/internal/server"
	"github.com/avialine/flight-booking/internal/service"
	"github.com/avialine/flight-booking/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("flight-booking-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	storages := store.NewStorages(db, log)

	var flightCache cache.FlightCache
	if cfg.Storage.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Storage.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to redis")
		}
		defer redisCache.Close()
		flightCache = redisCache
	} else {
		log.Info().Msg("no redis address configured, flight cache disabled")
		flightCache = cache.NewNoopCache()
	}

	services := service.NewServices(storages, flightCache, cfg, log)
	handler := handlerHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
