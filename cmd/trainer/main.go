// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

// Package main is the offline catalog trainer.
//
// It reads a raw catalog CSV, fits the per-coordinate standardization over
// the full track population, and writes the versioned artifact JSON that
// cmd/server loads at startup.
//
// # Example Usage
//
//	./tunecarta-trainer -input tracks.csv -output /data/catalog.json
package main

import (
	"flag"
	"os"
	"time"

	"github.com/tunecarta/tunecarta/internal/catalog"
	"github.com/tunecarta/tunecarta/internal/logging"
	"github.com/tunecarta/tunecarta/internal/trainer"
)

func main() {
	input := flag.String("input", "", "Path to the raw catalog CSV")
	output := flag.String("output", "catalog.json", "Path for the artifact JSON")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logging.Init(logging.Config{Level: *logLevel, Format: "console"})

	if *input == "" {
		logging.Fatal().Msg("Missing required -input flag")
	}

	start := time.Now()
	f, err := os.Open(*input)
	if err != nil {
		logging.Fatal().Err(err).Str("path", *input).Msg("Failed to open catalog CSV")
	}

	tracks, err := trainer.ParseCatalogCSV(f)
	f.Close()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse catalog CSV")
	}
	logging.Info().Int("tracks", len(tracks)).Msg("Catalog CSV parsed")

	art, err := trainer.BuildArtifact(tracks)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build artifact")
	}
	if err := catalog.SaveArtifact(*output, art); err != nil {
		logging.Fatal().Err(err).Msg("Failed to write artifact")
	}

	logging.Info().
		Str("path", *output).
		Int("tracks", len(art.Tracks)).
		Int("features", len(art.FeatureNames)).
		Dur("elapsed", time.Since(start)).
		Msg("Artifact written")
}
