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

package core

import (
	"context"
)

// Package core defines the core interfaces for the GoScrub batch cleaning pipeline.
//
// GoScrub is an interface-driven batch data-cleaning pipeline for tabular
// customer transaction data. A pipeline run extracts a whole Table from a
// Source, pushes it through an ordered sequence of cleaning Steps, gates it
// on a set of validation Rules, and hands it to a Sink for persistence.
//
// This file contains the primary interfaces for sources, cleaning steps,
// validation rules, and sinks.

// Source defines the interface for data extraction.
// Implementations produce a complete table in one call (e.g., an in-memory
// fixture, a CSV file, a database query).
type Source interface {
	// Extract returns the full raw table. Each call produces a fresh table
	// that the caller owns exclusively.
	Extract(ctx context.Context) (Table, error)
	// Close releases any resources held by the source.
	Close() error
}

// Step defines a single table-level cleaning transformation.
// Steps are pure with respect to their input: they return a new table and
// never mutate the one they receive. Order between steps is significant.
type Step interface {
	// Name identifies the step in logs and diagnostics.
	Name() string
	// Apply transforms the input table and returns the result.
	Apply(ctx context.Context, table Table) (Table, error)
}

// Rule defines a read-only validation check over a cleaned table.
// Rules report violations; they never modify the table.
type Rule interface {
	// Name identifies the rule in logs and violation reports.
	Name() string
	// Check inspects the table and returns any violations found.
	Check(ctx context.Context, table Table) []Violation
}

// Sink defines the interface for persisting a validated table.
// Implementations replace any prior contents at the destination; a load is
// never an append or a merge.
type Sink interface {
	// Load writes the table to the destination, replacing prior contents.
	Load(ctx context.Context, table Table) error
	// Close releases any resources held by the sink.
	Close() error
}
