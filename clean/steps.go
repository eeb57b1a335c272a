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
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aaronlmathis/goscrub/core"
)

// Package clean provides the table-level cleaning steps for GoScrub pipelines.
//
// Each constructor returns a core.Step that takes an input table and returns
// a new one. Steps never fail a run; defective values are dropped, imputed,
// or nulled. Step order is significant: later steps assume the imputation
// performed by earlier ones, and Standard() encodes the canonical order.

// Defaults for the standard cleaning sequence.
const (
	// DefaultPlaceholderDate fills null transaction dates.
	DefaultPlaceholderDate = "2024-01-01"
	// DefaultCategorySentinel fills null product categories.
	DefaultCategorySentinel = "Unknown"
	// DefaultOutlierFence is the IQR multiplier for amount outlier removal.
	DefaultOutlierFence = 1.5
	// DateLayout is the canonical transaction date layout.
	DateLayout = "2006-01-02"
)

// defaultDateLayouts are tried in order when parsing raw date values.
var defaultDateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// DropMissingID returns a step that removes rows with a null customer_id.
// An unidentified transaction anchors nothing downstream, so it is dropped
// rather than imputed.
func DropMissingID() core.Step {
	return core.NamedStep("drop_missing_id", func(ctx context.Context, table core.Table) (core.Table, error) {
		out := make(core.Table, 0, len(table))
		for _, r := range table {
			if _, ok := r.CustomerID(); ok {
				out = append(out, r)
			}
		}
		return out, nil
	})
}

// ImputeAmountMean returns a step that fills null amount_spent values with
// the arithmetic mean of the currently non-null amounts. When every amount
// is null the mean is undefined and the nulls are left in place for the
// validation gate to catch.
func ImputeAmountMean() core.Step {
	return core.NamedStep("impute_amount_mean", func(ctx context.Context, table core.Table) (core.Table, error) {
		known := make([]float64, 0, len(table))
		for _, r := range table {
			if amount, ok := r.AmountSpent(); ok {
				known = append(known, amount)
			}
		}
		m, defined := mean(known)
		if !defined {
			return table, nil
		}

		out := make(core.Table, len(table))
		for i, r := range table {
			if _, ok := r.AmountSpent(); ok {
				out[i] = r
				continue
			}
			clone := r.Clone()
			clone[core.FieldAmountSpent] = m
			out[i] = clone
		}
		return out, nil
	})
}

// ImputeCategory returns a step that fills null product_category values with
// the given sentinel label.
func ImputeCategory(sentinel string) core.Step {
	return core.NamedStep("impute_category", func(ctx context.Context, table core.Table) (core.Table, error) {
		out := make(core.Table, len(table))
		for i, r := range table {
			if !r.IsNull(core.FieldProductCategory) {
				out[i] = r
				continue
			}
			clone := r.Clone()
			clone[core.FieldProductCategory] = sentinel
			out[i] = clone
		}
		return out, nil
	})
}

// ImputeDate returns a step that fills null transaction_date values with a
// fixed placeholder. The placeholder is a configured constant, never derived
// from the data.
func ImputeDate(placeholder string) core.Step {
	return core.NamedStep("impute_date", func(ctx context.Context, table core.Table) (core.Table, error) {
		out := make(core.Table, len(table))
		for i, r := range table {
			if !r.IsNull(core.FieldTransactionDate) {
				out[i] = r
				continue
			}
			clone := r.Clone()
			clone[core.FieldTransactionDate] = placeholder
			out[i] = clone
		}
		return out, nil
	})
}

// ParseDates returns a step that parses transaction_date values into
// time.Time. Values that fail every layout become null rather than aborting
// the run. Values already parsed pass through unchanged. With no layouts
// given, a default set starting with DateLayout is used.
func ParseDates(layouts ...string) core.Step {
	if len(layouts) == 0 {
		layouts = defaultDateLayouts
	}
	return core.NamedStep("parse_dates", func(ctx context.Context, table core.Table) (core.Table, error) {
		out := make(core.Table, len(table))
		for i, r := range table {
			v := r[core.FieldTransactionDate]
			if v == nil {
				out[i] = r
				continue
			}
			if _, ok := v.(time.Time); ok {
				out[i] = r
				continue
			}

			clone := r.Clone()
			clone[core.FieldTransactionDate] = parseDate(fmt.Sprintf("%v", v), layouts)
			out[i] = clone
		}
		return out, nil
	})
}

// parseDate tries each layout in order; nil marks an unparseable value.
func parseDate(raw string, layouts []string) interface{} {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return nil
}

// DropDuplicates returns a step that removes rows identical across all
// schema fields, keeping the first occurrence in original order.
func DropDuplicates() core.Step {
	return core.NamedStep("drop_duplicates", func(ctx context.Context, table core.Table) (core.Table, error) {
		seen := make(map[string]bool, len(table))
		out := make(core.Table, 0, len(table))
		for _, r := range table {
			key := dedupKey(r)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, r)
		}
		return out, nil
	})
}

// dedupKey builds a canonical representation of a record over the schema
// fields. Nulls are encoded distinctly from any printable value.
func dedupKey(r core.Record) string {
	var b strings.Builder
	for _, field := range core.Fields {
		v, ok := r[field]
		if !ok || v == nil {
			b.WriteByte(0x00)
		} else {
			fmt.Fprintf(&b, "%v", v)
		}
		b.WriteByte(0x1f)
	}
	return b.String()
}

// NormalizeStrings returns a step that trims leading and trailing whitespace
// from customer_name and product_category, then title-cases both. Both
// display fields get the same casing treatment so stored names and labels
// stay consistent.
func NormalizeStrings() core.Step {
	titler := cases.Title(language.English)
	return core.NamedStep("normalize_strings", func(ctx context.Context, table core.Table) (core.Table, error) {
		out := make(core.Table, len(table))
		for i, r := range table {
			clone := r.Clone()
			if name, ok := clone.CustomerName(); ok {
				clone[core.FieldCustomerName] = titler.String(strings.TrimSpace(name))
			}
			if category, ok := clone.ProductCategory(); ok {
				clone[core.FieldProductCategory] = titler.String(strings.TrimSpace(category))
			}
			out[i] = clone
		}
		return out, nil
	})
}

// DropAmountOutliers returns a step that removes rows whose amount_spent
// falls outside [Q1 - k*IQR, Q3 + k*IQR], computed over the table's non-null
// amounts at this point in the sequence (post-imputation, post-dedup).
// Quartiles use linear interpolation between order statistics. Rows with a
// null amount pass through untouched; the validation gate owns that defect.
func DropAmountOutliers(k float64) core.Step {
	return core.NamedStep("drop_amount_outliers", func(ctx context.Context, table core.Table) (core.Table, error) {
		amounts := make([]float64, 0, len(table))
		for _, r := range table {
			if amount, ok := r.AmountSpent(); ok {
				amounts = append(amounts, amount)
			}
		}
		if len(amounts) == 0 {
			return table, nil
		}

		lower, upper := iqrFences(amounts, k)
		out := make(core.Table, 0, len(table))
		for _, r := range table {
			amount, ok := r.AmountSpent()
			if ok && (amount < lower || amount > upper) {
				continue
			}
			out = append(out, r)
		}
		return out, nil
	})
}

// standardConfig holds the tunable constants of the standard sequence.
type standardConfig struct {
	placeholderDate  string
	categorySentinel string
	outlierFence     float64
	dateLayouts      []string
}

// StandardOption configures the standard cleaning sequence.
type StandardOption func(*standardConfig)

// WithPlaceholderDate overrides the date used to fill null transaction dates.
func WithPlaceholderDate(date string) StandardOption {
	return func(c *standardConfig) { c.placeholderDate = date }
}

// WithCategorySentinel overrides the label used to fill null categories.
func WithCategorySentinel(sentinel string) StandardOption {
	return func(c *standardConfig) { c.categorySentinel = sentinel }
}

// WithOutlierFence overrides the IQR multiplier for outlier removal.
func WithOutlierFence(k float64) StandardOption {
	return func(c *standardConfig) { c.outlierFence = k }
}

// WithDateLayouts overrides the layouts tried when parsing dates.
func WithDateLayouts(layouts ...string) StandardOption {
	return func(c *standardConfig) { c.dateLayouts = append([]string(nil), layouts...) }
}

// Standard returns the canonical cleaning sequence. The order is
// semantically significant: the amount mean is computed before duplicate
// removal, date imputation precedes parsing, and the outlier fence is
// computed over the imputed, deduplicated table.
func Standard(opts ...StandardOption) []core.Step {
	cfg := &standardConfig{
		placeholderDate:  DefaultPlaceholderDate,
		categorySentinel: DefaultCategorySentinel,
		outlierFence:     DefaultOutlierFence,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return []core.Step{
		DropMissingID(),
		ImputeAmountMean(),
		ImputeCategory(cfg.categorySentinel),
		ImputeDate(cfg.placeholderDate),
		ParseDates(cfg.dateLayouts...),
		DropDuplicates(),
		NormalizeStrings(),
		DropAmountOutliers(cfg.outlierFence),
	}
}
