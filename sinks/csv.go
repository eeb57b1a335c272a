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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/aaronlmathis/goscrub/core"
)

// CSVSinkOptions configures CSV output.
type CSVSinkOptions struct {
	Comma       rune
	UseCRLF     bool
	WriteHeader bool
}

// CSVSinkOption is a functional option for CSVSinkOptions.
type CSVSinkOption func(*CSVSinkOptions)

// WithCSVComma sets the field delimiter.
func WithCSVComma(delim rune) CSVSinkOption {
	return func(opts *CSVSinkOptions) {
		opts.Comma = delim
	}
}

// WithCSVWriteHeader controls whether a header row is written.
func WithCSVWriteHeader(write bool) CSVSinkOption {
	return func(opts *CSVSinkOptions) {
		opts.WriteHeader = write
	}
}

// WithCSVUseCRLF controls the line terminator.
func WithCSVUseCRLF(useCRLF bool) CSVSinkOption {
	return func(opts *CSVSinkOptions) {
		opts.UseCRLF = useCRLF
	}
}

// openWriter produces the destination writer for one load.
type openWriter func() (io.WriteCloser, error)

// CSVSink implements core.Sink for CSV output in the canonical column
// order. Each Load rewrites the destination from scratch, giving the same
// replace semantics as the relational sink.
type CSVSink struct {
	open    openWriter
	options CSVSinkOptions
}

// NewCSVSink creates a sink that writes each load to the writer produced by
// open. A fresh writer per load keeps replace semantics: the previous
// contents are gone once the new load starts.
func NewCSVSink(open func() (io.WriteCloser, error), opts ...CSVSinkOption) *CSVSink {
	options := CSVSinkOptions{
		Comma:       ',',
		WriteHeader: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &CSVSink{open: open, options: options}
}

// NewCSVFileSink creates a sink that truncates and rewrites the file at
// path on every load.
func NewCSVFileSink(path string, opts ...CSVSinkOption) *CSVSink {
	return NewCSVSink(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	}, opts...)
}

// Load implements the core.Sink interface.
func (s *CSVSink) Load(ctx context.Context, table core.Table) error {
	select {
	case <-ctx.Done():
		return &core.SinkError{Op: "load", Err: ctx.Err()}
	default:
	}

	w, err := s.open()
	if err != nil {
		return &core.SinkError{Op: "open", Err: err}
	}
	defer w.Close()

	cw := csv.NewWriter(w)
	cw.Comma = s.options.Comma
	cw.UseCRLF = s.options.UseCRLF

	if s.options.WriteHeader {
		if err := cw.Write(core.Fields); err != nil {
			return &core.SinkError{Op: "write_header", Err: err}
		}
	}

	for i, record := range table {
		row := make([]string, len(core.Fields))
		for j, field := range core.Fields {
			row[j] = formatCell(record[field])
		}
		if err := cw.Write(row); err != nil {
			return &core.SinkError{Op: "write_record", Err: fmt.Errorf("row %d: %w", i, err)}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return &core.SinkError{Op: "flush", Err: err}
	}
	return nil
}

// Close implements the core.Sink interface. Writers are scoped to Load.
func (s *CSVSink) Close() error {
	return nil
}

// formatCell renders a record value for CSV output. Nulls become empty
// cells; dates use the canonical date layout.
func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
