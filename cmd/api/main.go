package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cleancity/internal/http/handlers"
	"cleancity/internal/http/httpapi"
	"cleancity/internal/infra"
	"cleancity/internal/infra/geoip"
	"cleancity/internal/middleware"
	"cleancity/internal/upstream"
	"cleancity/internal/views"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	country, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var lookup middleware.CountryLookup
	if country != nil {
		lookup = country.CountryCode
	}

	client, err := upstream.NewClient(upstream.Options{
		BaseURL:        cfg.UpstreamBaseURL,
		RequestTimeout: cfg.UpstreamTimeout,
		Logger:         &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build upstream client")
	}

	resolver := views.NewResolver(client, cfg.UpstreamFetchAllMax, logger)
	app := handlers.NewApp(client, resolver, logger)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		JWTSecret:      cfg.AuthJWTSecret,
		DefaultLocale:  cfg.DefaultLocale,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		CountryLookup:  lookup,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("gateway listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
