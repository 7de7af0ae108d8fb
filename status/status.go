//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package status provides the classification tiers of an evaluation.
package status

// Classification represents the tier assigned to a normalized evaluation score.
type Classification int

const (
	// ClassificationUnknown represents an unknown classification.
	ClassificationUnknown Classification = iota
	// ClassificationFail represents a score below the fail threshold.
	ClassificationFail
	// ClassificationWarn represents a score between the fail and warn thresholds.
	ClassificationWarn
	// ClassificationPass represents a score at or above the warn threshold.
	ClassificationPass
)

// String returns the string representation of the classification.
func (c Classification) String() string {
	switch c {
	case ClassificationFail:
		return "fail"
	case ClassificationWarn:
		return "warn"
	case ClassificationPass:
		return "pass"
	default:
		return "unknown"
	}
}
