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

package goscrub

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aaronlmathis/goscrub/clean"
	"github.com/aaronlmathis/goscrub/core"
	"github.com/aaronlmathis/goscrub/validate"
)

// Package goscrub wires a Source, a cleaning Engine, a Validator, and a Sink
// into a single-pass batch pipeline for customer transaction records.
//
// A run is a straight-line sequence with one conditional branch:
//
//	extract -> clean -> validate -> (pass) load
//	                             -> (fail) abort, no write
//
// Example usage:
//
//	pipeline, err := goscrub.NewPipeline().
//	    From(sources.NewMemorySource(sources.SampleTransactions()...)).
//	    Clean(clean.NewEngine()).
//	    Validate(validate.New()).
//	    To(sink).
//	    WithLogger(logger).
//	    Build()
//	if err != nil { log.Fatal(err) }
//	table, err := pipeline.Run(context.Background())

// PipelineBuilder provides a fluent API for constructing cleaning pipelines.
// Use NewPipeline() to create a builder, then chain From, Clean, Validate,
// To, and configuration methods.
type PipelineBuilder struct {
	pipeline *Pipeline
}

// NewPipeline creates a new PipelineBuilder.
func NewPipeline() *PipelineBuilder {
	return &PipelineBuilder{
		pipeline: &Pipeline{
			logger: zap.NewNop(),
		},
	}
}

// From sets the Source for the pipeline.
func (pb *PipelineBuilder) From(source core.Source) *PipelineBuilder {
	pb.pipeline.source = source
	return pb
}

// Clean sets the cleaning engine. Omitting it yields an engine running the
// standard step sequence with default constants.
func (pb *PipelineBuilder) Clean(engine *clean.Engine) *PipelineBuilder {
	pb.pipeline.engine = engine
	return pb
}

// Validate sets the validator. Omitting it yields a validator running the
// default rule set.
func (pb *PipelineBuilder) Validate(validator *validate.Validator) *PipelineBuilder {
	pb.pipeline.validator = validator
	return pb
}

// To sets the Sink for the pipeline.
func (pb *PipelineBuilder) To(sink core.Sink) *PipelineBuilder {
	pb.pipeline.sink = sink
	return pb
}

// WithLogger sets the logger for stage-boundary log lines.
func (pb *PipelineBuilder) WithLogger(logger *zap.Logger) *PipelineBuilder {
	pb.pipeline.logger = logger
	return pb
}

// Build validates and constructs the Pipeline from the builder.
func (pb *PipelineBuilder) Build() (*Pipeline, error) {
	if pb.pipeline.source == nil {
		return nil, fmt.Errorf("pipeline requires a source")
	}
	if pb.pipeline.sink == nil {
		return nil, fmt.Errorf("pipeline requires a sink")
	}
	if pb.pipeline.engine == nil {
		pb.pipeline.engine = clean.NewEngine()
	}
	if pb.pipeline.validator == nil {
		pb.pipeline.validator = validate.New()
	}
	return pb.pipeline, nil
}

// Pipeline represents one extract-clean-validate-load batch job.
// Each Run is independent; the destination table is wholly replaced, so
// re-running against the same destination is idempotent.
type Pipeline struct {
	source    core.Source
	engine    *clean.Engine
	validator *validate.Validator
	sink      core.Sink
	logger    *zap.Logger
}

// Run executes the pipeline once and returns the cleaned table on success.
//
// On validation failure it returns a *core.ValidationError and the sink is
// never invoked. Load errors are returned wrapped; nothing escalates past
// Run. Source and sink are closed unconditionally.
func (p *Pipeline) Run(ctx context.Context) (core.Table, error) {
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))

	defer func() {
		if err := p.source.Close(); err != nil {
			logger.Warn("source close failed", zap.Error(err))
		}
		if err := p.sink.Close(); err != nil {
			logger.Warn("sink close failed", zap.Error(err))
		}
	}()

	logger.Info("extract started")
	raw, err := p.source.Extract(ctx)
	if err != nil {
		logger.Error("extract failed", zap.Error(err))
		return nil, fmt.Errorf("extract: %w", err)
	}
	logger.Info("extract complete", zap.Int("rows", len(raw)))

	logger.Info("transform started")
	cleaned, err := p.engine.Clean(ctx, raw)
	if err != nil {
		logger.Error("transform failed", zap.Error(err))
		return nil, fmt.Errorf("clean: %w", err)
	}
	logger.Info("transform complete",
		zap.Int("rows_in", len(raw)),
		zap.Int("rows_out", len(cleaned)),
	)

	result := p.validator.Validate(ctx, cleaned)
	if !result.Passed() {
		logger.Error("validation failed",
			zap.Int("violations", len(result.Violations)),
			zap.Strings("rules", result.RuleNames()),
		)
		return nil, result.Err()
	}
	logger.Info("validation passed", zap.Int("rows", len(cleaned)))

	logger.Info("load started", zap.Int("rows", len(cleaned)))
	if err := p.sink.Load(ctx, cleaned); err != nil {
		logger.Error("load failed", zap.Error(err))
		return nil, fmt.Errorf("load: %w", err)
	}
	logger.Info("load complete", zap.Int("rows", len(cleaned)))

	return cleaned, nil
}

// IsValidationError reports whether err is (or wraps) a validation gate
// failure, and returns the typed error when it is.
func IsValidationError(err error) (*core.ValidationError, bool) {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
