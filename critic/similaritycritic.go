//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package critic

import (
	"fmt"

	"trpc.group/trpc-go/trpc-tooleval/critic/similarity"
)

// defaultSimilarityThreshold is the similarity above which texts count as matched.
const defaultSimilarityThreshold = 0.8

// SimilarityCritic compares the textual forms of the expected and actual
// values through a similarity strategy. The default metric is TF-IDF cosine
// similarity over the two inputs as a two-document corpus.
type SimilarityCritic struct {
	field               string
	weight              float64
	metric              string
	similarityThreshold float64
	strategy            similarity.Strategy
}

// SimilarityOption configures a SimilarityCritic.
type SimilarityOption func(*SimilarityCritic)

// WithMetric selects a built-in similarity metric by name.
func WithMetric(metric string) SimilarityOption {
	return func(c *SimilarityCritic) {
		c.metric = metric
	}
}

// WithSimilarityThreshold sets the similarity threshold for a match.
func WithSimilarityThreshold(threshold float64) SimilarityOption {
	return func(c *SimilarityCritic) {
		c.similarityThreshold = threshold
	}
}

// WithStrategy injects a custom similarity strategy, bypassing metric lookup.
func WithStrategy(strategy similarity.Strategy) SimilarityOption {
	return func(c *SimilarityCritic) {
		c.strategy = strategy
	}
}

// NewSimilarity creates a SimilarityCritic for the given field and weight.
func NewSimilarity(field string, weight float64, opt ...SimilarityOption) *SimilarityCritic {
	c := &SimilarityCritic{
		field:               field,
		weight:              weight,
		metric:              similarity.MetricCosine,
		similarityThreshold: defaultSimilarityThreshold,
	}
	for _, o := range opt {
		o(c)
	}
	return c
}

// Field returns the argument field this critic inspects.
func (c *SimilarityCritic) Field() string { return c.field }

// Weight returns the maximum score this critic can contribute.
func (c *SimilarityCritic) Weight() float64 { return c.weight }

// Evaluate converts both values to text and scores their similarity.
func (c *SimilarityCritic) Evaluate(expected, actual any) (*Result, error) {
	strategy := c.strategy
	if strategy == nil {
		builtin, ok := similarity.Builtin(c.metric)
		if !ok {
			return nil, fmt.Errorf("%w: similarity critic %s: unsupported metric %q",
				ErrConfiguration, c.field, c.metric)
		}
		strategy = builtin
	}
	score, err := strategy.Score(toText(expected), toText(actual))
	if err != nil {
		return nil, fmt.Errorf("similarity critic %s: %w", c.field, err)
	}
	return &Result{
		Matched: score >= c.similarityThreshold,
		Score:   score * c.weight,
	}, nil
}

// toText converts an argument value to its textual form.
func toText(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
