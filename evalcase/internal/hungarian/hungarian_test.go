//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package hungarian

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveKnownOptimum(t *testing.T) {
	tests := []struct {
		name string
		cost [][]float64
		want []int
	}{
		{
			name: "identity diagonal",
			cost: [][]float64{
				{1, 0, 0},
				{0, 1, 0},
				{0, 0, 1},
			},
			want: []int{0, 1, 2},
		},
		{
			name: "anti diagonal",
			cost: [][]float64{
				{0, 0, 3},
				{0, 2, 0},
				{1, 0, 0},
			},
			want: []int{2, 1, 0},
		},
		{
			name: "greedy is suboptimal",
			// Taking the largest entry (1,1)=10 forces a total of 11;
			// the optimum pairs (0,1) and (1,0) for 17.
			cost: [][]float64{
				{1, 8},
				{9, 10},
			},
			want: []int{1, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solver, err := New(tt.cost)
			require.NoError(t, err)
			assert.Equal(t, tt.want, solver.Solve())
		})
	}
}

func TestSolveMatchesBruteForce(t *testing.T) {
	matrices := [][][]float64{
		{
			{0.3, 0.9, 0.1},
			{0.8, 0.2, 0.5},
			{0.4, 0.7, 0.6},
		},
		{
			{2, 2, 2, 2},
			{2, 3, 2, 2},
			{0, 0, 1, 0},
			{1.5, 0.5, 2.5, 1},
		},
		{
			{0, 0},
			{0, 0},
		},
		{
			{1, 1, 0.999, 1, 0.5},
			{0.2, 0.3, 0.1, 0, 0.9},
			{0.6, 0.6, 0.6, 0.6, 0.6},
			{0.4, 0.8, 0.05, 0.3, 0.7},
			{0.9, 0.1, 0.2, 0.85, 0},
		},
	}
	for _, cost := range matrices {
		solver, err := New(cost)
		require.NoError(t, err)
		assignment := solver.Solve()
		require.Len(t, assignment, len(cost))

		seen := make(map[int]bool, len(assignment))
		total := 0.0
		for i, j := range assignment {
			assert.False(t, seen[j], "column %d assigned twice", j)
			seen[j] = true
			total += cost[i][j]
		}
		assert.InDelta(t, bruteForceBest(cost), total, 1e-9)
	}
}

func TestSolveEmptyMatrix(t *testing.T) {
	solver, err := New(nil)
	require.NoError(t, err)
	assert.Empty(t, solver.Solve())
}

func TestNewMalformedMatrix(t *testing.T) {
	tests := []struct {
		name string
		cost [][]float64
	}{
		{name: "ragged", cost: [][]float64{{1, 2}, {3}}},
		{name: "rectangular", cost: [][]float64{{1, 2, 3}, {4, 5, 6}}},
		{name: "nan entry", cost: [][]float64{{1, math.NaN()}, {3, 4}}},
		{name: "inf entry", cost: [][]float64{{1, 2}, {math.Inf(1), 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cost)
			assert.ErrorIs(t, err, ErrMalformedMatrix)
		})
	}
}

// bruteForceBest returns the maximum assignment total over all permutations.
func bruteForceBest(cost [][]float64) float64 {
	n := len(cost)
	columns := make([]int, n)
	for i := range columns {
		columns[i] = i
	}
	best := math.Inf(-1)
	var permute func(k int)
	permute = func(k int) {
		if k == n {
			total := 0.0
			for i, j := range columns {
				total += cost[i][j]
			}
			if total > best {
				best = total
			}
			return
		}
		for i := k; i < n; i++ {
			columns[k], columns[i] = columns[i], columns[k]
			permute(k + 1)
			columns[k], columns[i] = columns[i], columns[k]
		}
	}
	permute(0)
	return best
}
