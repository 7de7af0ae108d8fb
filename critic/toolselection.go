//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package critic

// ToolSelectionCritic scores whether the actual call names the expected
// tool, by exact equality. It is applied once per candidate pairing in
// addition to the user-authored critics, with the weight configured in the
// case rubric rather than by the test writer.
type ToolSelectionCritic struct {
	weight float64
}

// NewToolSelection creates a ToolSelectionCritic with the given weight.
func NewToolSelection(weight float64) *ToolSelectionCritic {
	return &ToolSelectionCritic{weight: weight}
}

// Field returns the trace field name for tool selection.
func (c *ToolSelectionCritic) Field() string { return FieldToolSelection }

// Weight returns the maximum score this critic can contribute.
func (c *ToolSelectionCritic) Weight() float64 { return c.weight }

// Evaluate compares the expected and actual tool names.
func (c *ToolSelectionCritic) Evaluate(expected, actual any) (*Result, error) {
	if toText(expected) == toText(actual) {
		return &Result{Matched: true, Score: c.weight}, nil
	}
	return &Result{}, nil
}
