package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("LIVETRACK_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("LIVETRACK_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "livetrack",
		Description: "LiveTrack Transit bus dashboard",
		Commands: []*cli.Command{
			serveCommand(),
			fleetCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "dashboard YAML config; the embedded mock fleet is used when empty",
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the dashboard web server",
		Flags: []cli.Flag{
			configFlag,
			&cli.IntFlag{
				Name:  "port",
				Value: 8080,
				Usage: "HTTP port",
			},
			&cli.DurationFlag{
				Name:  "shutdown_timeout",
				Value: 10 * time.Second,
				Usage: "HTTP server shutdown timeout",
			},
			&cli.BoolFlag{
				Name:  "mockup_stats",
				Usage: "show the fixed mockup statistics instead of figures derived from the fleet",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, fleet, err := loadFleet(c.String("config"))
			if err != nil {
				return err
			}
			if c.Bool("mockup_stats") {
				cfg.Stats.Mockup = true
			}
			return serve(cfg, fleet, c.Int("port"), c.Duration("shutdown_timeout"))
		},
	}
}

func fleetCommand() *cli.Command {
	return &cli.Command{
		Name:  "fleet",
		Usage: "validate and print the configured fleet",
		Flags: []cli.Flag{configFlag},
		Action: func(c *cli.Context) error {
			cfg, fleet, err := loadFleet(c.String("config"))
			if err != nil {
				return err
			}
			for _, v := range fleet.Vehicles() {
				log.Info().
					Str("id", v.ID).
					Str("route", v.Route).
					Str("status", string(v.Status)).
					Int("passengers", v.Passengers).
					Str("next_stop", v.NextStop).
					Float64("lat", v.Position.Lat).
					Float64("lon", v.Position.Lon).
					Msg("vehicle")
			}
			stats := resolveStats(cfg.Stats, fleet)
			log.Info().
				Int("active_vehicles", stats.ActiveVehicles).
				Int("total_passengers", stats.TotalPassengers).
				Bool("mockup", cfg.Stats.Mockup).
				Msg("statistics")
			return nil
		},
	}
}

func loadFleet(path string) (*Config, *Fleet, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	fleet, err := NewFleet(cfg.Vehicles)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Int("vehicles", fleet.Len()).Msg("fleet loaded")
	return cfg, fleet, nil
}

func serve(cfg *Config, fleet *Fleet, port int, shutdownTimeout time.Duration) error {
	server, err := NewServer(cfg, fleet)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.RegisterOnShutdown(server.Close)

	var wg conc.WaitGroup
	wg.Go(func() {
		log.Info().Msgf("server starting on http://localhost:%d/", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info().Msg("shutdown initiated...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		log.Info().Msg("HTTP server shut down successfully")
	}
	wg.Wait()
	return nil
}
