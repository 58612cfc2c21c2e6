package main

import (
	"strings"

	"github.com/loopkey/identity-relay/internal/api"
	"github.com/loopkey/identity-relay/internal/infrastructure/config"
	"github.com/loopkey/identity-relay/internal/infrastructure/idp"
	"github.com/loopkey/identity-relay/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Missing provider settings are a warning, not a fatal: the process
	// starts and requests fail at call time.
	if missing := cfg.MissingProviderSettings(); len(missing) > 0 {
		log.Warn().
			Str("missing", strings.Join(missing, ", ")).
			Msg("identity provider not fully configured; admin operations will fail")
	}

	provider := idp.NewClient(idp.Config{
		BaseURL:    cfg.Provider.URL,
		ServiceKey: cfg.Provider.ServiceRoleKey,
		Timeout:    cfg.Provider.Timeout,
	})

	e := api.NewRouter(provider, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting identity admin relay")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
