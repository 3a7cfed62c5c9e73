// Package main is the entry point for slidetile.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/samdwyer/slidetile/internal/board"
	"github.com/samdwyer/slidetile/internal/game"
	"github.com/samdwyer/slidetile/internal/telemetry"
	"github.com/samdwyer/slidetile/internal/theme"
)

const version = "0.1.0"

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cmd := &cli.Command{
		Name:    "slidetile",
		Usage:   "slide and merge tiles on a 4x4 board",
		Version: version,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "random seed for tile spawns (0 picks one)",
				Sources: cli.EnvVars("SLIDETILE_SEED"),
			},
			&cli.BoolFlag{
				Name:  "classic",
				Usage: "label a fresh tile 2 instead of 1",
			},
			&cli.StringFlag{
				Name:    "theme",
				Usage:   "color theme: " + strings.Join(theme.Names(), ", "),
				Value:   theme.DefaultName,
				Sources: cli.EnvVars("SLIDETILE_THEME"),
			},
			&cli.StringSliceFlag{
				Name:  "moves",
				Usage: "opening moves to play first, e.g. left,up,right",
			},
			&cli.BoolFlag{
				Name:    "telemetry",
				Usage:   "export traces over OTLP/HTTP (configured by OTEL_* env vars)",
				Sources: cli.EnvVars("SLIDETILE_TELEMETRY"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// run starts telemetry if requested and plays until the user quits.
func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("telemetry") {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, version)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	opening, err := parseMoves(cmd.StringSlice("moves"))
	if err != nil {
		return err
	}

	g, err := game.New(game.Config{
		Seed:    cmd.Int64("seed"),
		Classic: cmd.Bool("classic"),
		Theme:   cmd.String("theme"),
		Opening: opening,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	return g.Run(ctx)
}

// parseMoves converts move tokens ("left", "right", "up", "down") to directions.
func parseMoves(tokens []string) ([]board.Direction, error) {
	dirs := make([]board.Direction, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		dir, err := board.ParseDirection(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid --moves: %w", err)
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

// setupOTelEnv maps the Honeycomb key, if present, onto the OTEL exporter variables.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_SLIDETILE_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_SLIDETILE_DATASET")
	if dataset == "" {
		dataset = "slidetile"
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
