//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of GoScrub.
//
// GoScrub is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoScrub is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoScrub. If not, see https://www.gnu.org/licenses/.

// Command goscrub runs the batch cleaning pipeline once: extract, clean,
// validate, load. Exit code 0 on success; 1 on configuration error,
// validation failure, or load failure. A failed run never leaves a partial
// write at the destination.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aaronlmathis/goscrub"
	"github.com/aaronlmathis/goscrub/clean"
	"github.com/aaronlmathis/goscrub/config"
	"github.com/aaronlmathis/goscrub/core"
	"github.com/aaronlmathis/goscrub/sinks"
	"github.com/aaronlmathis/goscrub/sources"
	"github.com/aaronlmathis/goscrub/validate"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "goscrub: configuration error: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goscrub: logger setup failed: %v\n", err)
		return 1
	}
	defer logger.Sync()

	source, err := newSource(cfg)
	if err != nil {
		logger.Error("source setup failed", zap.Error(err))
		return 1
	}

	sink, err := newSink(cfg)
	if err != nil {
		logger.Error("sink setup failed", zap.Error(err))
		return 1
	}

	engine := clean.NewEngine(
		clean.WithSteps(clean.Standard(clean.WithPlaceholderDate(cfg.PlaceholderDate))...),
		clean.WithLogger(logger),
	)

	pipeline, err := goscrub.NewPipeline().
		From(source).
		Clean(engine).
		Validate(validate.New()).
		To(sink).
		WithLogger(logger).
		Build()
	if err != nil {
		logger.Error("pipeline setup failed", zap.Error(err))
		return 1
	}

	table, err := pipeline.Run(context.Background())
	if err != nil {
		if ve, ok := goscrub.IsValidationError(err); ok {
			for _, v := range ve.Violations {
				logger.Error("rule violated",
					zap.String("rule", v.Rule),
					zap.Int("row", v.Row),
					zap.String("detail", v.Detail),
				)
			}
		}
		return 1
	}

	logger.Info("pipeline complete",
		zap.Int("rows", len(table)),
		zap.String("destination", cfg.DestinationTable),
	)
	return 0
}

// newLogger builds a zap logger per the configured level and format.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// newSource selects the CSV file source when INPUT_CSV is set, otherwise
// the built-in sample dataset.
func newSource(cfg *config.Config) (core.Source, error) {
	if cfg.InputCSVPath != "" {
		return sources.OpenCSVSource(cfg.InputCSVPath)
	}
	return sources.NewMemorySource(sources.SampleTransactions()...), nil
}

// newSink selects the PostgreSQL sink when POSTGRES_DSN is set, otherwise a
// CSV file named after the destination table.
func newSink(cfg *config.Config) (core.Sink, error) {
	if cfg.PostgresDSN != "" {
		return sinks.NewPostgresSink(
			sinks.WithPostgresDSN(cfg.PostgresDSN),
			sinks.WithTableName(cfg.DestinationTable),
		)
	}
	return sinks.NewCSVFileSink(cfg.DestinationTable + ".csv"), nil
}
