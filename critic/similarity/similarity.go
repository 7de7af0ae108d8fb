//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package similarity defines the pluggable text similarity strategies used
// by the similarity critic.
package similarity

import "trpc.group/trpc-go/trpc-tooleval/internal/textsim"

// Built-in metric names.
const (
	// MetricCosine is TF-IDF cosine similarity over the two input texts as a
	// two-document corpus. It is a relative signal, not an absolute one.
	MetricCosine = "cosine"
	// MetricLCS is the token-level longest-common-subsequence F-measure.
	MetricLCS = "lcs"
	// MetricLCSSum is the sentence-level union-LCS F-measure.
	MetricLCSSum = "lcs_sum"
)

// Strategy computes a similarity in [0, 1] between an expected and an actual
// text. Implementations must be deterministic for equal inputs.
type Strategy interface {
	// Score returns the similarity between expected and actual.
	Score(expected, actual string) (float64, error)
}

// Builtin returns the built-in strategy registered under the metric name.
// The empty name resolves to the cosine strategy.
func Builtin(metric string) (Strategy, bool) {
	switch metric {
	case MetricCosine, "":
		return cosineStrategy{}, true
	case MetricLCS:
		return lcsStrategy{}, true
	case MetricLCSSum:
		return lcsSumStrategy{}, true
	default:
		return nil, false
	}
}

type cosineStrategy struct{}

func (cosineStrategy) Score(expected, actual string) (float64, error) {
	return textsim.CosineTFIDF(expected, actual), nil
}

type lcsStrategy struct{}

func (lcsStrategy) Score(expected, actual string) (float64, error) {
	return textsim.LCSFMeasure(expected, actual), nil
}

type lcsSumStrategy struct{}

func (lcsSumStrategy) Score(expected, actual string) (float64, error) {
	return textsim.SummaryLCSFMeasure(expected, actual)
}
