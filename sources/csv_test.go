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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/goscrub/core"
)

// TestCSVSource_ExtractWithHeaders parses a headed file into the schema,
// inferring numeric types and turning empty cells into nulls.
func TestCSVSource_ExtractWithHeaders(t *testing.T) {
	data := "customer_id,customer_name,transaction_date,amount_spent,product_category\n" +
		"1,Alice Johnson,2024-03-15,150.75,electronics\n" +
		",Bob Smith,,,groceries\n" +
		"3,Dana Lee,not-a-date,450.5,\n"

	src := NewCSVSource(io.NopCloser(strings.NewReader(data)))
	table, err := src.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 3)

	id, ok := table[0].CustomerID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
	amount, ok := table[0].AmountSpent()
	require.True(t, ok)
	assert.Equal(t, 150.75, amount)
	// Dates stay raw strings for the cleaning engine to parse.
	assert.Equal(t, "2024-03-15", table[0][core.FieldTransactionDate])

	assert.True(t, table[1].IsNull(core.FieldCustomerID))
	assert.True(t, table[1].IsNull(core.FieldTransactionDate))
	assert.True(t, table[1].IsNull(core.FieldAmountSpent))

	assert.Equal(t, "not-a-date", table[2][core.FieldTransactionDate])
	assert.True(t, table[2].IsNull(core.FieldProductCategory))

	require.NoError(t, src.Close())
}

// TestCSVSource_PreservesWhitespace keeps ragged cell whitespace intact when
// trimming is off; normalization is the cleaning engine's job.
func TestCSVSource_PreservesWhitespace(t *testing.T) {
	data := "customer_id,customer_name,transaction_date,amount_spent,product_category\n" +
		"1,Alice,2024-03-15,10.0, electronics \n"

	src := NewCSVSource(io.NopCloser(strings.NewReader(data)), WithCSVTrimSpace(false))
	table, err := src.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 1)

	category, ok := table[0].ProductCategory()
	require.True(t, ok)
	assert.Equal(t, " electronics ", category)
}

// TestCSVSource_NoHeaders maps columns positionally onto the schema order.
func TestCSVSource_NoHeaders(t *testing.T) {
	data := "7,Grace Hall,2024-05-01,12.25,books\n"

	src := NewCSVSource(io.NopCloser(strings.NewReader(data)), WithCSVHasHeaders(false))
	table, err := src.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 1)

	id, ok := table[0].CustomerID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	category, _ := table[0].ProductCategory()
	assert.Equal(t, "books", category)
}

// TestCSVSource_RaggedRow pads short rows with nulls instead of failing.
func TestCSVSource_RaggedRow(t *testing.T) {
	data := "customer_id,customer_name,transaction_date,amount_spent,product_category\n" +
		"1,Alice,2024-03-15\n"

	src := NewCSVSource(io.NopCloser(strings.NewReader(data)))
	table, err := src.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 1)

	assert.True(t, table[0].IsNull(core.FieldAmountSpent))
	assert.True(t, table[0].IsNull(core.FieldProductCategory))
}

// TestMemorySource_ExtractCopies gives each caller an independent table.
func TestMemorySource_ExtractCopies(t *testing.T) {
	src := NewMemorySource(SampleTransactions()...)

	first, err := src.Extract(context.Background())
	require.NoError(t, err)
	first[0][core.FieldAmountSpent] = -1.0

	second, err := src.Extract(context.Background())
	require.NoError(t, err)
	amount, ok := second[0].AmountSpent()
	require.True(t, ok)
	assert.Equal(t, 150.75, amount)
}

// TestSampleTransactions_CarriesTheDefects pins the fixture's defect mix so
// the reference run keeps exercising every cleaning step.
func TestSampleTransactions_CarriesTheDefects(t *testing.T) {
	table := core.Table(SampleTransactions())

	var nullID, nullAmount, nullCategory, nullDate int
	for _, r := range table {
		if r.IsNull(core.FieldCustomerID) {
			nullID++
		}
		if r.IsNull(core.FieldAmountSpent) {
			nullAmount++
		}
		if r.IsNull(core.FieldProductCategory) {
			nullCategory++
		}
		if r.IsNull(core.FieldTransactionDate) {
			nullDate++
		}
	}

	assert.Equal(t, 1, nullID)
	assert.Equal(t, 1, nullAmount)
	assert.Equal(t, 1, nullCategory)
	assert.Equal(t, 1, nullDate)
}
