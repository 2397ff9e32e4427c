// Command probe reports which resolver tier the upstream currently
// satisfies, for checking a deploy's filtering capability from a shell:
//
//	UPSTREAM_BASE_URL=... go run ./cmd/probe someone@example.com
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"cleancity/internal/domain"
	"cleancity/internal/infra"
	"cleancity/internal/upstream"
	"cleancity/internal/views"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: probe <email>")
		os.Exit(2)
	}
	email := os.Args[1]

	baseURL := os.Getenv("UPSTREAM_BASE_URL")
	if baseURL == "" {
		fmt.Fprintln(os.Stderr, "UPSTREAM_BASE_URL is required")
		os.Exit(2)
	}
	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	client, err := upstream.NewClient(upstream.Options{
		BaseURL:        baseURL,
		RequestTimeout: 15 * time.Second,
		Logger:         &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build upstream client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	probeTiers(logger, "issues", []tier{
		{"server-side filter", upstream.Query{Email: email}},
		{"bounded fetch-all", upstream.Query{Limit: views.DefaultFetchAllLimit}},
		{"bare fetch", upstream.Query{}},
	}, func(q upstream.Query) error {
		_, err := client.FetchIssues(ctx, q)
		return err
	})
	probeTiers(logger, "contributions", []tier{
		{"server-side filter", upstream.Query{Email: email}},
		{"fetch-all", upstream.Query{All: true}},
		{"bare fetch", upstream.Query{}},
	}, func(q upstream.Query) error {
		_, err := client.FetchContributions(ctx, q)
		return err
	})

	resolver := views.NewResolver(client, views.DefaultFetchAllLimit, logger)
	identity := &domain.Identity{Email: email}

	issues, err := resolver.OwnedIssues(ctx, identity)
	if err != nil {
		logger.Error().Err(err).Msg("owned issues resolution failed")
	} else {
		logger.Info().Int("count", len(issues)).Msg("owned issues resolved")
	}

	contributions, err := resolver.OwnedContributions(ctx, identity)
	if err != nil {
		logger.Error().Err(err).Msg("owned contributions resolution failed")
	} else {
		logger.Info().Int("count", len(contributions)).Msg("owned contributions resolved")
	}
}

type tier struct {
	name string
	q    upstream.Query
}

func probeTiers(logger infra.Logger, kind string, tiers []tier, fetch func(upstream.Query) error) {
	for i, t := range tiers {
		if err := fetch(t.q); err != nil {
			logger.Warn().Err(err).Int("tier", i+1).Str("kind", kind).Msgf("%s failed", t.name)
			continue
		}
		logger.Info().Int("tier", i+1).Str("kind", kind).Msgf("%s ok", t.name)
	}
}
