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
	"fmt"
	"strings"
)

// Package core defines the error and violation types for the GoScrub pipeline.
//
// Cleaning never fails a run; it degrades data by dropping or imputing.
// Failure surfaces in exactly two shapes: a ValidationError when the cleaned
// table does not pass the rule gate, and wrapped source/sink errors at the
// pipeline boundaries.

// Violation describes a single validation rule failure.
type Violation struct {
	Rule   string // Name of the violated rule
	Row    int    // Zero-based row index, or -1 for table-level violations
	Detail string // Human-readable description
}

// String returns a compact single-line rendering of the violation.
func (v Violation) String() string {
	if v.Row < 0 {
		return fmt.Sprintf("%s: %s", v.Rule, v.Detail)
	}
	return fmt.Sprintf("%s (row %d): %s", v.Rule, v.Row, v.Detail)
}

// ValidationError reports that a cleaned table failed the validation gate.
// The pipeline returns it instead of invoking the sink.
type ValidationError struct {
	Violations []Violation
}

// Error returns a summary naming each violated rule.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Violations))
	seen := make(map[string]bool, len(e.Violations))
	for _, v := range e.Violations {
		if !seen[v.Rule] {
			seen[v.Rule] = true
			names = append(names, v.Rule)
		}
	}
	return fmt.Sprintf("validation failed: %d violation(s) of rule(s) [%s]",
		len(e.Violations), strings.Join(names, ", "))
}

// SourceError wraps extraction errors with context about the operation.
type SourceError struct {
	Op  string // The operation being performed (e.g., "extract", "open")
	Err error  // The underlying error
}

// Error returns the error string for SourceError.
func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for SourceError.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// SinkError wraps persistence errors with context about the operation.
type SinkError struct {
	Op  string // The operation being performed (e.g., "connect", "load")
	Err error  // The underlying error
}

// Error returns the error string for SinkError.
func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for SinkError.
func (e *SinkError) Unwrap() error {
	return e.Err
}
