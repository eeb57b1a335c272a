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

	"github.com/aaronlmathis/goscrub/core"
)

// Package sources provides core.Source implementations for GoScrub
// pipelines: an in-memory fixture source and a CSV file source. Any source
// can be swapped in without touching the cleaning engine.

// MemorySource serves a fixed in-memory table. Extract returns a deep copy
// each call, so the pipeline's mutations never reach the backing records.
type MemorySource struct {
	records core.Table
}

// NewMemorySource creates a source over the given records.
func NewMemorySource(records ...core.Record) *MemorySource {
	return &MemorySource{records: core.Table(records)}
}

// Extract implements the core.Source interface.
func (s *MemorySource) Extract(ctx context.Context) (core.Table, error) {
	select {
	case <-ctx.Done():
		return nil, &core.SourceError{Op: "extract", Err: ctx.Err()}
	default:
	}
	return s.records.Clone(), nil
}

// Close implements the core.Source interface.
func (s *MemorySource) Close() error {
	return nil
}

// SampleTransactions returns the reference sample dataset with the typical
// defects the cleaning engine handles: a missing customer_id, null amounts,
// a null category, a null and an unparseable date, an exact duplicate, ragged
// whitespace and casing, and one amount far outside the IQR fence.
func SampleTransactions() []core.Record {
	return []core.Record{
		{
			core.FieldCustomerID:      1,
			core.FieldCustomerName:    "alice johnson",
			core.FieldTransactionDate: "2024-03-15",
			core.FieldAmountSpent:     150.75,
			core.FieldProductCategory: " electronics ",
		},
		{
			core.FieldCustomerID:      2,
			core.FieldCustomerName:    "Bob Smith ",
			core.FieldTransactionDate: nil,
			core.FieldAmountSpent:     nil,
			core.FieldProductCategory: "groceries",
		},
		{
			core.FieldCustomerID:      nil,
			core.FieldCustomerName:    "Charlie Davis",
			core.FieldTransactionDate: "2024-02-28",
			core.FieldAmountSpent:     450.50,
			core.FieldProductCategory: "clothing",
		},
		{
			core.FieldCustomerID:      3,
			core.FieldCustomerName:    "dana lee",
			core.FieldTransactionDate: "not-a-date",
			core.FieldAmountSpent:     450.50,
			core.FieldProductCategory: nil,
		},
		{
			core.FieldCustomerID:      4,
			core.FieldCustomerName:    "Evan Wright",
			core.FieldTransactionDate: "2024-04-02",
			core.FieldAmountSpent:     300.00,
			core.FieldProductCategory: "electronics",
		},
		{
			core.FieldCustomerID:      4,
			core.FieldCustomerName:    "Evan Wright",
			core.FieldTransactionDate: "2024-04-02",
			core.FieldAmountSpent:     300.00,
			core.FieldProductCategory: "electronics",
		},
		{
			core.FieldCustomerID:      5,
			core.FieldCustomerName:    "Fiona Chen",
			core.FieldTransactionDate: "2024-01-20",
			core.FieldAmountSpent:     100.50,
			core.FieldProductCategory: "home goods",
		},
		{
			core.FieldCustomerID:      6,
			core.FieldCustomerName:    "George Patel",
			core.FieldTransactionDate: "2024-03-01",
			core.FieldAmountSpent:     99999.99,
			core.FieldProductCategory: "electronics",
		},
	}
}
