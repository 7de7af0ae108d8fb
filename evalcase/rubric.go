//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package evalcase

import "trpc.group/trpc-go/trpc-tooleval/status"

// defaultToolSelectionWeight is the weight of the implicit tool selection
// comparison in every candidate pairing.
const defaultToolSelectionWeight = 1.0

// Rubric converts a normalized evaluation score into a classification and
// configures the hard-failure policies applied before matching.
type Rubric struct {
	// FailThreshold is the score below which a case fails.
	FailThreshold float64 `json:"failThreshold"`
	// WarnThreshold is the score below which a case warns. Scores at or
	// above it pass.
	WarnThreshold float64 `json:"warnThreshold"`
	// ToolSelectionWeight is the weight of the tool name comparison.
	ToolSelectionWeight float64 `json:"toolSelectionWeight"`
	// FailOnToolSelection fails the case outright when the set of tool
	// names called differs from the expected set.
	FailOnToolSelection bool `json:"failOnToolSelection,omitempty"`
	// FailOnToolCallQuantity fails the case outright when the number of
	// calls differs from the expected number.
	FailOnToolCallQuantity bool `json:"failOnToolCallQuantity,omitempty"`
}

// RubricOption configures a Rubric.
type RubricOption func(*Rubric)

// WithToolSelectionWeight sets the weight of the tool name comparison.
func WithToolSelectionWeight(weight float64) RubricOption {
	return func(r *Rubric) {
		r.ToolSelectionWeight = weight
	}
}

// WithFailOnToolSelection enables the tool-set mismatch hard failure.
func WithFailOnToolSelection() RubricOption {
	return func(r *Rubric) {
		r.FailOnToolSelection = true
	}
}

// WithFailOnToolCallQuantity enables the call-count mismatch hard failure.
func WithFailOnToolCallQuantity() RubricOption {
	return func(r *Rubric) {
		r.FailOnToolCallQuantity = true
	}
}

// NewRubric creates a Rubric with the given thresholds.
func NewRubric(failThreshold, warnThreshold float64, opt ...RubricOption) Rubric {
	r := Rubric{
		FailThreshold:       failThreshold,
		WarnThreshold:       warnThreshold,
		ToolSelectionWeight: defaultToolSelectionWeight,
	}
	for _, o := range opt {
		o(&r)
	}
	return r
}

// Classify maps a normalized score to its tier. The tiers ascend: scores
// below FailThreshold fail, scores below WarnThreshold warn, the rest pass.
func (r Rubric) Classify(score float64) status.Classification {
	switch {
	case score < r.FailThreshold:
		return status.ClassificationFail
	case score < r.WarnThreshold:
		return status.ClassificationWarn
	default:
		return status.ClassificationPass
	}
}
