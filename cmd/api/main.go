package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Rambabu64681/Health-API/internal/adapters/auth/jwtauth"
	"github.com/Rambabu64681/Health-API/internal/config"
	"github.com/Rambabu64681/Health-API/internal/platform/logger"
	"github.com/Rambabu64681/Health-API/internal/ports/auth"
	"github.com/Rambabu64681/Health-API/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    "health-api",
	})

	var verifier auth.Verifier
	if cfg.AuthJWTSecret != "" {
		verifier = jwtauth.New(cfg.AuthJWTSecret)
	} else if cfg.IsDev() {
		appLog.Warn().Msg("no AUTH_JWT_SECRET set, running with X-Debug-User-ID auth only")
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:  verifier,
		Logger:        appLog,
		AuditCapacity: cfg.AuditCapacity,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info().Str("addr", srv.Addr).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Fatal().Err(err).Msg("server error")
	}
}
