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

// Trace field names for unmatched calls.
const (
	// FieldMissingToolCall tags an expected call left unmatched by any actual call.
	FieldMissingToolCall = "missing_tool_call"
	// FieldExtraToolCall tags an actual call not matched to any expected call.
	FieldExtraToolCall = "extra_tool_call"
)

// FieldResult traces one scored comparison within an evaluation.
type FieldResult struct {
	// Field is the argument field, tool_selection, or an unmatched-call tag.
	Field string `json:"field"`
	// Expected is the expected value for this field, if any.
	Expected any `json:"expected,omitempty"`
	// Actual is the value the evaluated system produced, if any.
	Actual any `json:"actual,omitempty"`
	// Matched reports whether the comparison cleared its threshold.
	Matched bool `json:"matched"`
	// Score is the weighted score contributed by this comparison.
	Score float64 `json:"score"`
	// Weight is the maximum score this comparison could contribute.
	Weight float64 `json:"weight"`
}

// Result is the outcome of evaluating one case. It is produced fresh per
// Evaluate call and never mutated after return.
type Result struct {
	// Score is the normalized score in [0, 1].
	Score float64 `json:"score"`
	// Classification is the tier the score falls into.
	Classification status.Classification `json:"classification"`
	// FieldResults traces every comparison that contributed to the score.
	FieldResults []FieldResult `json:"fieldResults,omitempty"`
}
