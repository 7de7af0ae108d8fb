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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// defaultNumericMatchThreshold is the similarity above which numeric values count as matched.
const defaultNumericMatchThreshold = 0.8

// NumericCritic performs a fuzzy comparison of numeric values: both values
// are normalized linearly against the configured range and the absolute
// difference of the normalized values determines the similarity. Values
// outside the range extrapolate rather than clamp.
type NumericCritic struct {
	field          string
	weight         float64
	valueMin       float64
	valueMax       float64
	matchThreshold float64
}

// NumericOption configures a NumericCritic.
type NumericOption func(*NumericCritic)

// WithMatchThreshold sets the similarity threshold for a match.
func WithMatchThreshold(threshold float64) NumericOption {
	return func(c *NumericCritic) {
		c.matchThreshold = threshold
	}
}

// NewNumeric creates a NumericCritic scoring closeness of numeric values
// relative to the range [valueMin, valueMax].
func NewNumeric(field string, weight, valueMin, valueMax float64, opt ...NumericOption) *NumericCritic {
	c := &NumericCritic{
		field:          field,
		weight:         weight,
		valueMin:       valueMin,
		valueMax:       valueMax,
		matchThreshold: defaultNumericMatchThreshold,
	}
	for _, o := range opt {
		o(c)
	}
	return c
}

// Field returns the argument field this critic inspects.
func (c *NumericCritic) Field() string { return c.field }

// Weight returns the maximum score this critic can contribute.
func (c *NumericCritic) Weight() float64 { return c.weight }

// Evaluate compares expected and actual numerically within the value range.
func (c *NumericCritic) Evaluate(expected, actual any) (*Result, error) {
	if c.valueMin >= c.valueMax {
		return nil, fmt.Errorf("%w: numeric critic %s: degenerate value range [%v, %v]",
			ErrConfiguration, c.field, c.valueMin, c.valueMax)
	}
	expectedValue, err := toFloat(expected)
	if err != nil {
		return nil, fmt.Errorf("numeric critic %s: expected value: %w", c.field, err)
	}
	actualValue, err := toFloat(actual)
	if err != nil {
		return nil, fmt.Errorf("numeric critic %s: actual value: %w", c.field, err)
	}
	span := c.valueMax - c.valueMin
	normalizedExpected := (expectedValue - c.valueMin) / span
	normalizedActual := (actualValue - c.valueMin) / span
	similarity := math.Max(0, 1-math.Abs(normalizedExpected-normalizedActual))
	return &Result{
		Matched: similarity >= c.matchThreshold,
		Score:   similarity * c.weight,
	}, nil
}

// toFloat converts an argument value to float64.
func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value %v of type %T is not numeric", value, value)
	}
}
