// Package main is the entry point for Yendor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/yendor/internal/config"
	"github.com/samdwyer/yendor/internal/entity"
	"github.com/samdwyer/yendor/internal/game"
	"github.com/samdwyer/yendor/internal/level"
	"github.com/samdwyer/yendor/internal/mapdump"
	"github.com/samdwyer/yendor/internal/telemetry"
)

func main() {
	dump := flag.Bool("dump", false, "print a generated level and exit")
	seed := flag.Int64("seed", 0, "random seed (overrides YENDOR_SEED)")
	depth := flag.Int("depth", 1, "depth to generate with -dump")
	reveal := flag.Bool("reveal", true, "show unexplored cells with -dump")
	noColor := flag.Bool("no-color", false, "disable colour with -dump")
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_YENDOR_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if *dump {
		if err := runDump(cfg, *depth, mapdump.Options{Reveal: *reveal, Color: !*noColor}); err != nil {
			log.Fatalf("Dump failed: %v", err)
		}
		return
	}

	// The terminal belongs to the UI; send logs to a file
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	// Create and run game
	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}

	switch g.State() {
	case game.StateVictory, game.StateDead:
		fmt.Printf("%s. Final score: %d\n", g.State(), g.Score())
	case game.StatePlaying, game.StateQuit:
	}
}

// runDump generates one level and prints it to stdout.
func runDump(cfg config.Config, depth int, opts mapdump.Options) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	data, err := game.LoadData()
	if err != nil {
		return err
	}

	player := entity.NewPlayer(&data.Player, 0, 0)
	rng := rand.New(rand.NewSource(cfg.Seed))
	session, err := level.NewSession(cfg.SessionOptions(), rng, data.Monsters, level.NewCampaign(cfg.MaxDepth), player)
	if err != nil {
		return err
	}
	if _, err := session.GenerateLevel(context.Background(), depth, level.ArriveDescending); err != nil {
		return err
	}

	fmt.Printf("seed %d\n", cfg.Seed)
	return mapdump.Dump(os.Stdout, session, opts)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Construct headers from the API key; the .env file may hold an unexpanded
	// variable reference
	apiKey := os.Getenv("HONEYCOMB_YENDOR_API_KEY")
	dataset := os.Getenv("HONEYCOMB_YENDOR_DATASET")
	if dataset == "" {
		dataset = "yendor"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
