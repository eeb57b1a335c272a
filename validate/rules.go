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
	"fmt"

	"github.com/aaronlmathis/goscrub/core"
)

// Built-in validation rules. Each constructor returns a core.Rule; rules
// only read the table and report violations.

// NonNegativeAmounts requires every amount_spent to be >= 0.
func NonNegativeAmounts() core.Rule {
	return core.NamedRule("non_negative_amounts", func(ctx context.Context, table core.Table) []core.Violation {
		var violations []core.Violation
		for i, r := range table {
			if amount, ok := r.AmountSpent(); ok && amount < 0 {
				violations = append(violations, core.Violation{
					Rule:   "non_negative_amounts",
					Row:    i,
					Detail: fmt.Sprintf("amount_spent is %v", amount),
				})
			}
		}
		return violations
	})
}

// RequiredCustomerID requires every row to carry a non-null customer_id.
func RequiredCustomerID() core.Rule {
	return core.NamedRule("required_customer_id", func(ctx context.Context, table core.Table) []core.Violation {
		var violations []core.Violation
		for i, r := range table {
			if _, ok := r.CustomerID(); !ok {
				violations = append(violations, core.Violation{
					Rule:   "required_customer_id",
					Row:    i,
					Detail: "customer_id is null",
				})
			}
		}
		return violations
	})
}

// NoNullAmounts requires every row to carry a non-null amount_spent.
// Mean imputation leaves amounts null when the whole column was null and
// the mean was undefined; that table fails here instead of persisting a
// not-a-number sentinel.
func NoNullAmounts() core.Rule {
	return core.NamedRule("no_null_amounts", func(ctx context.Context, table core.Table) []core.Violation {
		var violations []core.Violation
		for i, r := range table {
			if _, ok := r.AmountSpent(); !ok {
				violations = append(violations, core.Violation{
					Rule:   "no_null_amounts",
					Row:    i,
					Detail: "amount_spent is null",
				})
			}
		}
		return violations
	})
}

// CategoryAllowList requires every product_category to be one of the given
// labels. Not part of DefaultRules; wire it in with WithRules when the
// destination enforces a category vocabulary.
func CategoryAllowList(categories ...string) core.Rule {
	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}
	return core.NamedRule("category_allow_list", func(ctx context.Context, table core.Table) []core.Violation {
		var violations []core.Violation
		for i, r := range table {
			category, ok := r.ProductCategory()
			if !ok || !allowed[category] {
				violations = append(violations, core.Violation{
					Rule:   "category_allow_list",
					Row:    i,
					Detail: fmt.Sprintf("product_category %q not in allow-list", category),
				})
			}
		}
		return violations
	})
}

// DefaultRules returns the minimum rule set a cleaned table must satisfy
// before persistence.
func DefaultRules() []core.Rule {
	return []core.Rule{
		NonNegativeAmounts(),
		RequiredCustomerID(),
		NoNullAmounts(),
	}
}
