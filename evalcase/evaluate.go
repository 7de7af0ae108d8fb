//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package evalcase

import (
	"fmt"

	"trpc.group/trpc-go/trpc-tooleval/critic"
	"trpc.group/trpc-go/trpc-tooleval/evalcase/internal/hungarian"
	"trpc.group/trpc-go/trpc-tooleval/status"
	"trpc.group/trpc-go/trpc-tooleval/toolcall"
)

// Evaluate scores the actual tool calls against this case's expected calls.
// Expected and actual calls are aligned by an optimal assignment over a
// critic-scored cost matrix, so the result does not depend on call order.
// A critic that cannot execute aborts the evaluation with its error.
func (c *EvalCase) Evaluate(actualToolCalls []toolcall.Actual) (*Result, error) {
	if c.rubric.FailOnToolSelection && !c.sameToolNameSet(actualToolCalls) {
		return &Result{Classification: status.ClassificationFail}, nil
	}
	if c.rubric.FailOnToolCallQuantity && len(actualToolCalls) != len(c.expectedToolCalls) {
		return &Result{Classification: status.ClassificationFail}, nil
	}

	matrix, err := c.buildCostMatrix(actualToolCalls)
	if err != nil {
		return nil, err
	}
	solver, err := hungarian.New(matrix)
	if err != nil {
		return nil, fmt.Errorf("build assignment solver: %w", err)
	}
	assignment := solver.Solve()

	numExpected := len(c.expectedToolCalls)
	numActual := len(actualToolCalls)
	totalScore := 0.0
	totalWeight := 0.0
	fieldResults := make([]FieldResult, 0, numExpected*(len(c.critics)+1))
	for i, j := range assignment {
		switch {
		case i < numExpected && j < numActual:
			score, weight, fields, err := c.scorePair(c.expectedToolCalls[i], actualToolCalls[j])
			if err != nil {
				return nil, err
			}
			totalScore += score
			totalWeight += weight
			fieldResults = append(fieldResults, fields...)
		case i < numExpected:
			// Expected call paired with a phantom column: nothing was called for it.
			totalWeight++
			fieldResults = append(fieldResults, FieldResult{
				Field:    FieldMissingToolCall,
				Expected: c.expectedToolCalls[i].Name,
				Weight:   1,
			})
		case j < numActual:
			// Actual call paired with a phantom row: it was not expected.
			totalWeight++
			fieldResults = append(fieldResults, FieldResult{
				Field:  FieldExtraToolCall,
				Actual: actualToolCalls[j].Name,
				Weight: 1,
			})
		}
	}

	normalizedScore := 0.0
	if totalWeight > 0 {
		normalizedScore = totalScore / totalWeight
	}
	return &Result{
		Score:          normalizedScore,
		Classification: c.rubric.Classify(normalizedScore),
		FieldResults:   fieldResults,
	}, nil
}

// buildCostMatrix scores every pairing of expected and actual calls. The
// matrix is square with size max(len(expected), len(actual)); phantom rows
// and columns contribute zero to any pairing.
func (c *EvalCase) buildCostMatrix(actualToolCalls []toolcall.Actual) ([][]float64, error) {
	size := len(c.expectedToolCalls)
	if len(actualToolCalls) > size {
		size = len(actualToolCalls)
	}
	matrix := make([][]float64, size)
	for i := range matrix {
		matrix[i] = make([]float64, size)
	}
	for i, expected := range c.expectedToolCalls {
		for j, actual := range actualToolCalls {
			score, _, _, err := c.scorePair(expected, actual)
			if err != nil {
				return nil, err
			}
			matrix[i][j] = score
		}
	}
	return matrix, nil
}

// scorePair scores one expected call paired with one actual call: the tool
// selection comparison plus every critic whose field both sides define.
// Critics whose field is absent on either side contribute neither score nor
// weight.
func (c *EvalCase) scorePair(expected toolcall.Expected, actual toolcall.Actual) (float64, float64, []FieldResult, error) {
	toolSelection := critic.NewToolSelection(c.rubric.ToolSelectionWeight)
	selectionResult, err := toolSelection.Evaluate(expected.Name, actual.Name)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("evaluate tool selection: %w", err)
	}
	totalScore := selectionResult.Score
	totalWeight := toolSelection.Weight()
	fields := []FieldResult{{
		Field:    critic.FieldToolSelection,
		Expected: expected.Name,
		Actual:   actual.Name,
		Matched:  selectionResult.Matched,
		Score:    selectionResult.Score,
		Weight:   toolSelection.Weight(),
	}}

	for _, cr := range c.critics {
		expectedValue, expectedOK := expected.Args[cr.Field()]
		actualValue, actualOK := actual.Args[cr.Field()]
		if !expectedOK || !actualOK {
			continue
		}
		result, err := cr.Evaluate(expectedValue, actualValue)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("evaluate critic %s: %w", cr.Field(), err)
		}
		totalScore += result.Score
		totalWeight += cr.Weight()
		fields = append(fields, FieldResult{
			Field:    cr.Field(),
			Expected: expectedValue,
			Actual:   actualValue,
			Matched:  result.Matched,
			Score:    result.Score,
			Weight:   cr.Weight(),
		})
	}
	return totalScore, totalWeight, fields, nil
}

// sameToolNameSet reports whether the actual calls cover exactly the
// expected set of tool names.
func (c *EvalCase) sameToolNameSet(actualToolCalls []toolcall.Actual) bool {
	expectedNames := toolcall.NameSet(toolcall.ExpectedNames(c.expectedToolCalls))
	actualNames := toolcall.NameSet(toolcall.ActualNames(actualToolCalls))
	if len(expectedNames) != len(actualNames) {
		return false
	}
	for name := range expectedNames {
		if _, ok := actualNames[name]; !ok {
			return false
		}
	}
	return true
}
