package main

import (
	"context"
	"fmt"

	"github.com/nvoronin/inkwell/internal/adapter"
	"github.com/nvoronin/inkwell/internal/config"
	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/service"
	"github.com/nvoronin/inkwell/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("inkwell-client")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateClient(); err != nil {
		log.Fatal().Err(err).Msg("invalid client configuration")
	}

	ctx := context.Background()

	localStorages, db, err := store.NewLocalStorages(ctx, cfg.Client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local store")
	}
	defer db.Close()

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Client.ServerBaseURL,
		Timeout: cfg.Client.RequestTimeout,
	})

	services := service.NewClientServices(localStorages, serverAdapter)

	// The embedded store always carries at least the "Personal" container,
	// so the client is usable before (or without) signing in.
	if _, err = services.UserWorkspaceService.EnsureDefault(ctx); err != nil {
		log.Fatal().Err(err).Msg("error preparing local workspace")
	}

	log.Info().Str("db", cfg.Client.LocalDBPath).Msg("client ready")
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
