//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package critic provides the per-argument scorers used to compare expected
// and actual tool calls.
package critic

import "errors"

// ErrConfiguration marks a critic that cannot execute with its own
// configuration, such as a degenerate numeric range or an unknown
// similarity metric. It surfaces at Evaluate time and is checked with
// errors.Is.
var ErrConfiguration = errors.New("critic configuration error")

// FieldToolSelection is the trace field name used for tool name comparison.
const FieldToolSelection = "tool_selection"

// Result reports the outcome of comparing one expected value to one actual value.
type Result struct {
	// Matched reports whether the comparison cleared the critic's threshold.
	Matched bool `json:"matched"`
	// Score is the weighted score in [0, weight].
	Score float64 `json:"score"`
}

// Critic scores one expected argument value against the actual value.
// Implementations are pure and deterministic: Evaluate never blocks,
// performs no I/O and always returns a score in [0, Weight()].
type Critic interface {
	// Field returns the argument field this critic inspects.
	Field() string
	// Weight returns the maximum score this critic can contribute.
	Weight() float64
	// Evaluate compares the expected value against the actual value.
	Evaluate(expected, actual any) (*Result, error)
}
