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

package clean

import (
	"context"

	"go.uber.org/zap"

	"github.com/aaronlmathis/goscrub/core"
)

// Engine applies an ordered sequence of cleaning steps to a table.
// The input table is cloned before the first step runs, so the raw table
// handed in by the source is never aliased or mutated.
type Engine struct {
	steps  []core.Step
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSteps replaces the engine's step sequence.
func WithSteps(steps ...core.Step) Option {
	return func(e *Engine) {
		e.steps = append([]core.Step(nil), steps...)
	}
}

// WithLogger sets the logger used for per-step progress lines.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a cleaning engine. Without options it runs the Standard
// sequence with default constants and logs nowhere.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		steps:  Standard(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Steps returns the engine's step sequence in execution order.
func (e *Engine) Steps() []core.Step {
	return append([]core.Step(nil), e.steps...)
}

// Clean runs every step in order and returns the cleaned table.
// Steps degrade defective data instead of failing; an error here means a
// step hit something genuinely unexpected, not a data defect.
func (e *Engine) Clean(ctx context.Context, table core.Table) (core.Table, error) {
	current := table.Clone()
	for _, step := range e.steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		in := len(current)
		next, err := step.Apply(ctx, current)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("cleaning step applied",
			zap.String("step", step.Name()),
			zap.Int("rows_in", in),
			zap.Int("rows_out", len(next)),
		)
		current = next
	}
	return current, nil
}
