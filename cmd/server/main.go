package main

import (
	"context"
	"fmt"

	"github.com/nvoronin/inkwell/internal/config"
	myHTTP "github.com/nvoronin/inkwell/internal/handler/http"
	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/objectstore"
	"github.com/nvoronin/inkwell/internal/server"
	"github.com/nvoronin/inkwell/internal/service"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("inkwell-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configuration")
	}

	ctx := context.Background()

	storages, db, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	objects, err := objectstore.NewS3Store(ctx, cfg.Storage.S3, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating object store gateway")
	}

	services := service.NewServices(storages, objects, *cfg, log)
	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
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
