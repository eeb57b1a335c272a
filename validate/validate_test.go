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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/goscrub/core"
)

func cleanRow(id int, amount float64) core.Record {
	return core.Record{
		core.FieldCustomerID:      id,
		core.FieldCustomerName:    "Test Person",
		core.FieldTransactionDate: "2024-01-01",
		core.FieldAmountSpent:     amount,
		core.FieldProductCategory: "Electronics",
	}
}

// TestValidator_PassesCleanTable accepts a table satisfying every rule.
func TestValidator_PassesCleanTable(t *testing.T) {
	v := New()
	result := v.Validate(context.Background(), core.Table{
		cleanRow(1, 10.0),
		cleanRow(2, 0.0), // zero is non-negative
	})

	assert.True(t, result.Passed())
	assert.Empty(t, result.Violations)
	assert.NoError(t, result.Err())
}

// TestValidator_NegativeAmountFails surfaces the violated rule by name.
func TestValidator_NegativeAmountFails(t *testing.T) {
	v := New()
	result := v.Validate(context.Background(), core.Table{
		cleanRow(1, 10.0),
		cleanRow(2, -0.01),
	})

	require.False(t, result.Passed())
	assert.Equal(t, []string{"non_negative_amounts"}, result.RuleNames())
	require.Len(t, result.Violations, 1)
	assert.Equal(t, 1, result.Violations[0].Row)

	var ve *core.ValidationError
	require.ErrorAs(t, result.Err(), &ve)
	assert.Len(t, ve.Violations, 1)
}

// TestValidator_NullAmountFails catches the undefined-mean case: an all-null
// amount column survives imputation and must fail here, not persist.
func TestValidator_NullAmountFails(t *testing.T) {
	r := cleanRow(1, 0)
	r[core.FieldAmountSpent] = nil

	result := New().Validate(context.Background(), core.Table{r})

	require.False(t, result.Passed())
	assert.Contains(t, result.RuleNames(), "no_null_amounts")
}

// TestValidator_NullIDFails exercises the structural id check.
func TestValidator_NullIDFails(t *testing.T) {
	r := cleanRow(1, 5.0)
	r[core.FieldCustomerID] = nil

	result := New().Validate(context.Background(), core.Table{r})

	require.False(t, result.Passed())
	assert.Contains(t, result.RuleNames(), "required_customer_id")
}

// TestValidator_CollectsAllViolations keeps checking after the first hit.
func TestValidator_CollectsAllViolations(t *testing.T) {
	bad := cleanRow(1, -5.0)
	bad[core.FieldCustomerID] = nil

	result := New().Validate(context.Background(), core.Table{bad, cleanRow(2, -1.0)})

	require.False(t, result.Passed())
	assert.Len(t, result.Violations, 3)
	assert.Equal(t, []string{"non_negative_amounts", "required_customer_id"}, result.RuleNames())
}

// TestCategoryAllowList restricts categories to the given vocabulary.
func TestCategoryAllowList(t *testing.T) {
	v := New(WithRules(CategoryAllowList("Electronics", "Groceries")))

	ok := v.Validate(context.Background(), core.Table{cleanRow(1, 1.0)})
	assert.True(t, ok.Passed())

	r := cleanRow(2, 1.0)
	r[core.FieldProductCategory] = "Contraband"
	bad := v.Validate(context.Background(), core.Table{r})
	require.False(t, bad.Passed())
	assert.Equal(t, []string{"category_allow_list"}, bad.RuleNames())
}

// TestValidator_ReadOnly confirms validation never mutates the table.
func TestValidator_ReadOnly(t *testing.T) {
	table := core.Table{cleanRow(1, -5.0), cleanRow(2, 7.5)}
	snapshot := table.Clone()

	New().Validate(context.Background(), table)

	assert.Equal(t, snapshot, table)
}
