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

package sources

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aaronlmathis/goscrub/core"
)

// CSVSourceOptions configures the CSV source.
type CSVSourceOptions struct {
	Comma            rune
	Comment          rune
	LazyQuotes       bool
	TrimLeadingSpace bool
	HasHeaders       bool
}

// CSVSourceOption allows functional customization of CSVSource.
type CSVSourceOption func(*CSVSourceOptions)

// WithCSVComma sets the field delimiter.
func WithCSVComma(r rune) CSVSourceOption {
	return func(o *CSVSourceOptions) { o.Comma = r }
}

// WithCSVHasHeaders controls whether the first row is treated as headers.
// Without headers, columns are mapped positionally onto the schema order.
func WithCSVHasHeaders(hasHeaders bool) CSVSourceOption {
	return func(o *CSVSourceOptions) { o.HasHeaders = hasHeaders }
}

// WithCSVTrimSpace controls trimming of leading space in fields.
func WithCSVTrimSpace(trim bool) CSVSourceOption {
	return func(o *CSVSourceOptions) { o.TrimLeadingSpace = trim }
}

// CSVSource implements core.Source for CSV input. Header names are matched
// against the transaction schema fields; empty cells become nulls. The file
// is read in full on Extract, matching the batch contract.
type CSVSource struct {
	reader *csv.Reader
	closer io.Closer
	opts   CSVSourceOptions
}

// NewCSVSource creates a CSVSource over an open reader.
func NewCSVSource(r io.ReadCloser, options ...CSVSourceOption) *CSVSource {
	opts := CSVSourceOptions{
		Comma:            ',',
		HasHeaders:       true,
		TrimLeadingSpace: true,
	}
	for _, opt := range options {
		opt(&opts)
	}

	csvReader := csv.NewReader(r)
	csvReader.Comma = opts.Comma
	csvReader.Comment = opts.Comment
	csvReader.LazyQuotes = opts.LazyQuotes
	csvReader.TrimLeadingSpace = opts.TrimLeadingSpace
	// Defect rows may be ragged; length is checked per-row instead.
	csvReader.FieldsPerRecord = -1

	return &CSVSource{
		reader: csvReader,
		closer: r,
		opts:   opts,
	}
}

// OpenCSVSource creates a CSVSource over a file path.
func OpenCSVSource(path string, options ...CSVSourceOption) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.SourceError{Op: "open", Err: err}
	}
	return NewCSVSource(f, options...), nil
}

// Extract implements the core.Source interface.
func (s *CSVSource) Extract(ctx context.Context) (core.Table, error) {
	headers := core.Fields
	if s.opts.HasHeaders {
		row, err := s.reader.Read()
		if err != nil {
			return nil, &core.SourceError{Op: "read_headers", Err: err}
		}
		headers = make([]string, len(row))
		for i, h := range row {
			headers[i] = strings.TrimSpace(h)
		}
	}

	var table core.Table
	for {
		select {
		case <-ctx.Done():
			return nil, &core.SourceError{Op: "extract", Err: ctx.Err()}
		default:
		}

		row, err := s.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &core.SourceError{Op: "read_record", Err: err}
		}

		record := make(core.Record, len(headers))
		for i, h := range headers {
			if i >= len(row) {
				record[h] = nil
				continue
			}
			record[h] = parseCell(row[i], h)
		}
		table = append(table, record)
	}

	return table, nil
}

// Close implements the core.Source interface.
func (s *CSVSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// parseCell interprets an empty cell as null, infers int and float values
// for numeric columns, and keeps everything else verbatim. Date columns stay
// strings; parsing them is the cleaning engine's job.
func parseCell(value, field string) interface{} {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if field == core.FieldTransactionDate {
		return value
	}
	trimmed := strings.TrimSpace(value)
	if i, err := strconv.Atoi(trimmed); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return value
}
