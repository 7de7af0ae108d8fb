//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package critic

import "reflect"

// BinaryCritic performs exact structural equality comparison between the
// expected and actual values. It scores the full weight on a match and zero
// otherwise, for fields where only an exact match is acceptable.
type BinaryCritic struct {
	field  string
	weight float64
}

// NewBinary creates a BinaryCritic for the given field and weight.
func NewBinary(field string, weight float64) *BinaryCritic {
	return &BinaryCritic{field: field, weight: weight}
}

// Field returns the argument field this critic inspects.
func (c *BinaryCritic) Field() string { return c.field }

// Weight returns the maximum score this critic can contribute.
func (c *BinaryCritic) Weight() float64 { return c.weight }

// Evaluate compares expected and actual by structural equality.
func (c *BinaryCritic) Evaluate(expected, actual any) (*Result, error) {
	if reflect.DeepEqual(expected, actual) {
		return &Result{Matched: true, Score: c.weight}, nil
	}
	return &Result{}, nil
}
