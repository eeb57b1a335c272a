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

package sinks

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/aaronlmathis/goscrub/core"
)

// Package sinks provides core.Sink implementations for persisting a
// validated table: a PostgreSQL sink with atomic replace semantics and a
// CSV export sink.

// identifierPattern constrains destination table names to plain SQL
// identifiers, since the table name is interpolated into DDL.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// createTableSQL is the fixed transaction schema at the destination.
const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
	customer_id BIGINT NOT NULL,
	customer_name TEXT,
	transaction_date DATE,
	amount_spent DOUBLE PRECISION,
	product_category TEXT
)`

// PostgresSinkStats holds load performance statistics.
type PostgresSinkStats struct {
	RecordsLoaded  int64
	LoadCount      int64
	LastLoadTime   time.Time
	LoadDuration   time.Duration
	ConnectionTime time.Duration
}

// PostgresSinkOptions configures the PostgreSQL sink.
type PostgresSinkOptions struct {
	DSN          string        // PostgreSQL connection string
	TableName    string        // Destination table name
	CreateTable  bool          // Create the destination table if absent
	QueryTimeout time.Duration // Timeout for the whole load
}

// PostgresSinkOption represents a configuration function for PostgresSinkOptions.
type PostgresSinkOption func(*PostgresSinkOptions)

// WithPostgresDSN sets the PostgreSQL connection string.
func WithPostgresDSN(dsn string) PostgresSinkOption {
	return func(opts *PostgresSinkOptions) {
		opts.DSN = dsn
	}
}

// WithTableName sets the destination table name.
func WithTableName(tableName string) PostgresSinkOption {
	return func(opts *PostgresSinkOptions) {
		opts.TableName = tableName
	}
}

// WithCreateTable enables or disables creating the destination table.
func WithCreateTable(create bool) PostgresSinkOption {
	return func(opts *PostgresSinkOptions) {
		opts.CreateTable = create
	}
}

// WithQueryTimeout sets the timeout for the load operation.
func WithQueryTimeout(timeout time.Duration) PostgresSinkOption {
	return func(opts *PostgresSinkOptions) {
		opts.QueryTimeout = timeout
	}
}

// PostgresSink implements core.Sink for PostgreSQL.
//
// Load replaces the destination table's contents: TRUNCATE plus the batch
// INSERT run in one transaction, so readers see either the previous table
// or the new one, never a partial state. The connection is opened at Load
// and closed unconditionally when the load returns.
type PostgresSink struct {
	options PostgresSinkOptions
	stats   PostgresSinkStats
}

// NewPostgresSink creates a PostgreSQL sink with the given options.
// Returns an error when the destination configuration is invalid.
func NewPostgresSink(opts ...PostgresSinkOption) (*PostgresSink, error) {
	options := &PostgresSinkOptions{}
	options = options.withDefaults()

	for _, opt := range opts {
		opt(options)
	}

	if err := validateOptions(options); err != nil {
		return nil, &core.SinkError{Op: "validate", Err: err}
	}

	return &PostgresSink{options: *options}, nil
}

// withDefaults applies default values to PostgresSinkOptions.
func (opts *PostgresSinkOptions) withDefaults() *PostgresSinkOptions {
	if opts.QueryTimeout == 0 {
		opts.QueryTimeout = 30 * time.Second
	}
	opts.CreateTable = true
	return opts
}

// validateOptions validates the PostgreSQL sink options.
func validateOptions(opts *PostgresSinkOptions) error {
	if opts.DSN == "" {
		return fmt.Errorf("dsn is required")
	}
	if opts.TableName == "" {
		return fmt.Errorf("table name is required")
	}
	if !identifierPattern.MatchString(opts.TableName) {
		return fmt.Errorf("table name %q is not a valid identifier", opts.TableName)
	}
	return nil
}

// Stats returns a copy of the current load statistics.
func (s *PostgresSink) Stats() PostgresSinkStats {
	return s.stats
}

// Options returns a copy of the sink's configuration.
func (s *PostgresSink) Options() PostgresSinkOptions {
	return s.options
}

// Load implements the core.Sink interface.
func (s *PostgresSink) Load(ctx context.Context, table core.Table) error {
	start := time.Now()

	loadCtx, cancel := context.WithTimeout(ctx, s.options.QueryTimeout)
	defer cancel()

	db, err := sql.Open("postgres", s.options.DSN)
	if err != nil {
		return &core.SinkError{Op: "connect", Err: err}
	}
	defer db.Close()

	if err := db.PingContext(loadCtx); err != nil {
		return &core.SinkError{Op: "connect", Err: err}
	}
	s.stats.ConnectionTime = time.Since(start)

	if s.options.CreateTable {
		if _, err := db.ExecContext(loadCtx, fmt.Sprintf(createTableSQL, s.options.TableName)); err != nil {
			return &core.SinkError{Op: "create_table", Err: err}
		}
	}

	if err := s.replaceContents(loadCtx, db, table); err != nil {
		return err
	}

	s.stats.RecordsLoaded += int64(len(table))
	s.stats.LoadCount++
	s.stats.LastLoadTime = time.Now()
	s.stats.LoadDuration += time.Since(start)
	return nil
}

// replaceContents truncates the destination and inserts the table inside a
// single transaction.
func (s *PostgresSink) replaceContents(ctx context.Context, db *sql.DB, table core.Table) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &core.SinkError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", s.options.TableName)); err != nil {
		return &core.SinkError{Op: "truncate", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, s.insertSQL())
	if err != nil {
		return &core.SinkError{Op: "prepare", Err: err}
	}
	defer stmt.Close()

	for i, record := range table {
		values := make([]interface{}, len(core.Fields))
		for j, field := range core.Fields {
			values[j] = convertValue(record[field])
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return &core.SinkError{Op: "insert", Err: fmt.Errorf("row %d: %w", i, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &core.SinkError{Op: "commit", Err: err}
	}
	return nil
}

// insertSQL builds the INSERT statement over the canonical column order.
func (s *PostgresSink) insertSQL() string {
	placeholders := make([]string, len(core.Fields))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.options.TableName,
		strings.Join(core.Fields, ", "),
		strings.Join(placeholders, ", "))
}

// Close implements the core.Sink interface. The connection is scoped to
// Load, so there is nothing to release here.
func (s *PostgresSink) Close() error {
	return nil
}

// convertValue converts record values to driver-compatible types.
func convertValue(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case time.Time, bool, int, int64, float64, string, []byte:
		return v
	case int32:
		return int64(v)
	case float32:
		return float64(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
