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
	"context"
	"time"

	"github.com/spf13/cast"
)

// Package core defines the core types for the GoScrub batch cleaning pipeline.
//
// This file contains the record and table types, the fixed transaction
// schema, and function adapters for the Step and Rule interfaces.

// Schema field names for a customer transaction record.
const (
	FieldCustomerID      = "customer_id"
	FieldCustomerName    = "customer_name"
	FieldTransactionDate = "transaction_date"
	FieldAmountSpent     = "amount_spent"
	FieldProductCategory = "product_category"
)

// Fields is the canonical column order of the transaction schema.
var Fields = []string{
	FieldCustomerID,
	FieldCustomerName,
	FieldTransactionDate,
	FieldAmountSpent,
	FieldProductCategory,
}

// Record represents a single transaction row.
// Each record is a map from field names to values; a nil value or an absent
// key marks a null field.
type Record map[string]interface{}

// Table is an ordered sequence of records sharing the transaction schema.
// The slice position of a record is its dense zero-based row index, so
// dropping rows re-indexes the survivors while preserving their order.
type Table []Record

// IsNull reports whether the named field is null (nil or absent).
func (r Record) IsNull(field string) bool {
	v, ok := r[field]
	return !ok || v == nil
}

// CustomerID returns the customer identifier coerced to int64.
// The second return value is false when the field is null or not coercible.
func (r Record) CustomerID() (int64, bool) {
	if r.IsNull(FieldCustomerID) {
		return 0, false
	}
	id, err := cast.ToInt64E(r[FieldCustomerID])
	if err != nil {
		return 0, false
	}
	return id, true
}

// CustomerName returns the customer name as a string.
func (r Record) CustomerName() (string, bool) {
	if r.IsNull(FieldCustomerName) {
		return "", false
	}
	s, err := cast.ToStringE(r[FieldCustomerName])
	if err != nil {
		return "", false
	}
	return s, true
}

// AmountSpent returns the transaction amount coerced to float64.
func (r Record) AmountSpent() (float64, bool) {
	if r.IsNull(FieldAmountSpent) {
		return 0, false
	}
	f, err := cast.ToFloat64E(r[FieldAmountSpent])
	if err != nil {
		return 0, false
	}
	return f, true
}

// ProductCategory returns the product category as a string.
func (r Record) ProductCategory() (string, bool) {
	if r.IsNull(FieldProductCategory) {
		return "", false
	}
	s, err := cast.ToStringE(r[FieldProductCategory])
	if err != nil {
		return "", false
	}
	return s, true
}

// TransactionDate returns the transaction date as a time.Time.
// Only values already parsed to time.Time qualify; raw strings do not.
func (r Record) TransactionDate() (time.Time, bool) {
	if r.IsNull(FieldTransactionDate) {
		return time.Time{}, false
	}
	t, ok := r[FieldTransactionDate].(time.Time)
	return t, ok
}

// Clone returns a shallow copy of the record.
// Field values are immutable scalars in this schema, so a shallow copy is a
// full copy for pipeline purposes.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy of the table with no record aliasing.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, r := range t {
		out[i] = r.Clone()
	}
	return out
}

// StepFunc is a function adapter for the Step interface.
type StepFunc func(ctx context.Context, table Table) (Table, error)

// NamedStep wraps a StepFunc with a name so ordinary functions can be used
// as pipeline steps.
func NamedStep(name string, fn StepFunc) Step {
	return &namedStep{name: name, fn: fn}
}

type namedStep struct {
	name string
	fn   StepFunc
}

func (s *namedStep) Name() string { return s.name }

func (s *namedStep) Apply(ctx context.Context, table Table) (Table, error) {
	return s.fn(ctx, table)
}

// RuleFunc is a function adapter for the Rule interface.
type RuleFunc func(ctx context.Context, table Table) []Violation

// NamedRule wraps a RuleFunc with a name so ordinary functions can be used
// as validation rules.
func NamedRule(name string, fn RuleFunc) Rule {
	return &namedRule{name: name, fn: fn}
}

type namedRule struct {
	name string
	fn   RuleFunc
}

func (r *namedRule) Name() string { return r.name }

func (r *namedRule) Check(ctx context.Context, table Table) []Violation {
	return r.fn(ctx, table)
}
