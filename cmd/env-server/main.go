package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hoangnd25/glidepath/cmd/common"
	"github.com/hoangnd25/glidepath/internal/envserver"
	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/policy"
	"github.com/hoangnd25/glidepath/internal/sim"
	"github.com/hoangnd25/glidepath/pkg/data"
)

func main() {
	dataFile := flag.String("data", "", "Monthly market series CSV file")
	envFile := flag.String("env-file", "", "Environment file to load (default .env)")
	horizon := flag.Int("horizon", 30, "Retirement horizon in years")
	wealth := flag.Float64("wealth", 1.0, "Initial wealth (normalized)")
	spending := flag.Float64("spending", 0.04, "Annual spending rate as a fraction of initial wealth")
	trailing := flag.Int("trailing", 12, "Trailing months of returns in observations")
	cadenceName := flag.String("cadence", "annual", "External decision cadence: on-reset, annual or monthly")
	addr := flag.String("addr", ":8080", "Listen address")
	pretty := flag.Bool("pretty", false, "Human-readable console log instead of JSON")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		common.PrintVersion()
		return
	}

	log := newLogger(*pretty)
	common.LoadEnvironment(*envFile)

	if *dataFile == "" {
		log.Fatal().Msg("-data is required")
	}
	cadence, err := parseCadence(*cadenceName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid cadence")
	}

	provider := data.NewCachedProvider(data.NewCSVProvider())
	series, err := provider.LoadSeries(*dataFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *dataFile).Msg("failed to load market series")
	}

	dataset, err := episode.NewDataset(series, *horizon)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build episode dataset")
	}
	log.Info().
		Int("months", series.Len()).
		Int("episodes", dataset.Count()).
		Int("horizon_years", *horizon).
		Msg("dataset ready")

	params := sim.Params{
		InitialWealth:  *wealth,
		SpendingRate:   *spending,
		TrailingMonths: *trailing,
	}
	server, err := envserver.New(dataset, params, cadence, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create environment server")
	}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	log.Info().Str("addr", *addr).Str("cadence", cadence.String()).Msg("environment server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(pretty bool) zerolog.Logger {
	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func parseCadence(name string) (policy.Cadence, error) {
	switch strings.ToLower(name) {
	case "on-reset", "reset":
		return policy.CadenceOnReset, nil
	case "annual":
		return policy.CadenceAnnual, nil
	case "monthly":
		return policy.CadenceMonthly, nil
	default:
		return 0, fmt.Errorf("unknown cadence %q", name)
	}
}
