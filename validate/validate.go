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

package validate

import (
	"context"

	"github.com/aaronlmathis/goscrub/core"
)

// Package validate implements the read-only validation gate that a cleaned
// table must pass before the pipeline persists it.
//
// A Validator holds an ordered list of core.Rule checks. Every rule runs
// even after a failure, so a Result carries the complete violation list for
// diagnostics rather than just the first hit.

// Result holds the outcome of validating a table.
type Result struct {
	Violations []core.Violation
}

// Passed reports whether the table satisfied every rule.
func (r Result) Passed() bool {
	return len(r.Violations) == 0
}

// RuleNames returns the distinct names of violated rules, in first-hit order.
func (r Result) RuleNames() []string {
	names := make([]string, 0, len(r.Violations))
	seen := make(map[string]bool, len(r.Violations))
	for _, v := range r.Violations {
		if !seen[v.Rule] {
			seen[v.Rule] = true
			names = append(names, v.Rule)
		}
	}
	return names
}

// Err returns a *core.ValidationError when the result failed, nil otherwise.
func (r Result) Err() error {
	if r.Passed() {
		return nil
	}
	return &core.ValidationError{Violations: r.Violations}
}

// Validator runs a fixed rule set against a table without modifying it.
type Validator struct {
	rules []core.Rule
}

// Option configures a Validator.
type Option func(*Validator)

// WithRules replaces the validator's rule set.
func WithRules(rules ...core.Rule) Option {
	return func(v *Validator) {
		v.rules = append([]core.Rule(nil), rules...)
	}
}

// New creates a Validator. Without options it runs DefaultRules().
func New(opts ...Option) *Validator {
	v := &Validator{rules: DefaultRules()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Rules returns the validator's rule set in execution order.
func (v *Validator) Rules() []core.Rule {
	return append([]core.Rule(nil), v.rules...)
}

// Validate checks the table against every rule and collects all violations.
func (v *Validator) Validate(ctx context.Context, table core.Table) Result {
	var result Result
	for _, rule := range v.rules {
		result.Violations = append(result.Violations, rule.Check(ctx, table)...)
	}
	return result
}
