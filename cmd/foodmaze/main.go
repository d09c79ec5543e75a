// Package main is the entry point for FoodMaze.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/foodmaze/internal/app"
	"github.com/samdwyer/foodmaze/internal/audio/device"
	"github.com/samdwyer/foodmaze/internal/game"
	"github.com/samdwyer/foodmaze/internal/gamedata"
	"github.com/samdwyer/foodmaze/internal/telemetry"
	"github.com/samdwyer/foodmaze/internal/ui"
)

const cueVolume = 0.8

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "foodmaze: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file for local development
	// This makes HONEYCOMB_FOODMAZE_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// tcell owns the terminal from here on, so log to a file or nowhere
	closeLog := setupLog(os.Getenv("FOODMAZE_LOG"))
	defer closeLog()

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	opts, err := loadOptions()
	if err != nil {
		return err
	}

	if !envBool("FOODMAZE_MUTE") {
		player, err := device.NewSpeakerPlayer()
		if err != nil {
			log.Printf("Warning: audio unavailable: %v", err)
		} else {
			defer player.Close()
			opts.Player = player
			opts.Volume = cueVolume
		}
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	// Create and run game
	g, err := app.New(screen, opts)
	if err != nil {
		screen.Close()
		return err
	}
	return g.Run(ctx)
}

// loadOptions resolves the variant and seed from the environment.
func loadOptions() (app.Options, error) {
	registry, err := gamedata.LoadVariantRegistry()
	if err != nil {
		return app.Options{}, err
	}
	variant, err := registry.Resolve(os.Getenv("FOODMAZE_VARIANT"))
	if err != nil {
		return app.Options{}, err
	}

	var seed int64
	if s := os.Getenv("FOODMAZE_SEED"); s != "" {
		seed, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return app.Options{}, fmt.Errorf("FOODMAZE_SEED: %w", err)
		}
	}

	palette, err := loadPalette()
	if err != nil {
		return app.Options{}, err
	}

	return app.Options{
		Config:  game.ConfigFromVariant(variant, seed),
		Variant: variant.ID,
		Palette: palette,
	}, nil
}

func loadPalette() (gamedata.Palette, error) {
	theme, err := gamedata.LoadTheme()
	if err != nil {
		return gamedata.Palette{}, err
	}
	return theme.Palette()
}

// setupLog sends log output to path, or discards it when path is empty.
func setupLog(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: cannot open log file %s: %v", path, err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Build the header from the API key; .env files may hold an unexpanded
	// reference that the exporter cannot use directly
	apiKey := os.Getenv("HONEYCOMB_FOODMAZE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_FOODMAZE_DATASET")
	if dataset == "" {
		dataset = "foodmaze" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
