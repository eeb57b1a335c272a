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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/goscrub/core"
)

// defectiveFixture mirrors the reference sample: a null id, a null amount,
// a null category, an unparseable date, an exact duplicate, ragged strings,
// and one extreme amount.
func defectiveFixture() core.Table {
	return core.Table{
		row(1, "alice johnson", "2024-03-15", 150.75, " electronics "),
		row(2, "Bob Smith ", nil, nil, "groceries"),
		row(nil, "Charlie Davis", "2024-02-28", 450.50, "clothing"),
		row(3, "dana lee", "not-a-date", 450.50, nil),
		row(4, "Evan Wright", "2024-04-02", 300.00, "electronics"),
		row(4, "Evan Wright", "2024-04-02", 300.00, "electronics"),
		row(5, "Fiona Chen", "2024-01-20", 100.50, "home goods"),
		row(6, "George Patel", "2024-03-01", 99999.99, "electronics"),
	}
}

// TestEngine_StandardSequence runs the full canonical sequence over the
// defective fixture and checks every invariant the cleaned table must hold.
func TestEngine_StandardSequence(t *testing.T) {
	engine := NewEngine()
	input := defectiveFixture()

	out, err := engine.Clean(context.Background(), input)
	require.NoError(t, err)

	// Null-id row and duplicate dropped, outlier removed: 8 -> 5.
	require.Len(t, out, 5)

	// Surviving order preserved, positionally re-indexed.
	wantIDs := []int64{1, 2, 3, 4, 5}
	for i, r := range out {
		id, ok := r.CustomerID()
		require.True(t, ok, "row %d", i)
		assert.Equal(t, wantIDs[i], id)
	}

	// Null amount imputed with the mean of the non-null amounts as they
	// stood after the null-id drop (duplicate still present, outlier
	// included).
	wantMean := (150.75 + 450.50 + 300.00 + 300.00 + 100.50 + 99999.99) / 6.0
	amount, ok := out[1].AmountSpent()
	require.True(t, ok)
	assert.InDelta(t, wantMean, amount, 1e-9)

	// Null category imputed, then title-cased strings everywhere.
	category, _ := out[2].ProductCategory()
	assert.Equal(t, "Unknown", category)
	category, _ = out[0].ProductCategory()
	assert.Equal(t, "Electronics", category)
	category, _ = out[4].ProductCategory()
	assert.Equal(t, "Home Goods", category)
	name, _ := out[0].CustomerName()
	assert.Equal(t, "Alice Johnson", name)
	name, _ = out[1].CustomerName()
	assert.Equal(t, "Bob Smith", name)

	// Parseable dates are real dates; the unparseable one degraded to null.
	date, ok := out[0].TransactionDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), date)
	assert.True(t, out[2].IsNull(core.FieldTransactionDate))

	// Input untouched.
	assert.Equal(t, defectiveFixture(), input)
}

// TestEngine_NullDateDefaulted checks the date-defaulting property end to
// end: a null transaction_date becomes the placeholder 2024-01-01.
func TestEngine_NullDateDefaulted(t *testing.T) {
	engine := NewEngine()
	out, err := engine.Clean(context.Background(), core.Table{
		row(1, "a", nil, 10.0, "x"),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	date, ok := out[0].TransactionDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), date)
}

// TestEngine_CustomSteps runs a reduced sequence.
func TestEngine_CustomSteps(t *testing.T) {
	engine := NewEngine(WithSteps(DropMissingID()))
	out, err := engine.Clean(context.Background(), core.Table{
		row(nil, "a", "2024-01-01", 1.0, "x"),
		row(1, "b", "bogus", -5.0, nil),
	})
	require.NoError(t, err)

	// Only the configured step ran; nothing else was cleaned.
	require.Len(t, out, 1)
	assert.True(t, out[0].IsNull(core.FieldProductCategory))
	amount, _ := out[0].AmountSpent()
	assert.Equal(t, -5.0, amount)
}

// TestEngine_CancelledContext stops between steps.
func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine()
	_, err := engine.Clean(ctx, core.Table{row(1, "a", "2024-01-01", 1.0, "x")})
	assert.ErrorIs(t, err, context.Canceled)
}
