//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

// Package hungarian implements the Kuhn-Munkres algorithm for the optimal
// assignment problem on a weighted square matrix.
package hungarian

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedMatrix marks a non-square or otherwise malformed cost matrix.
// It indicates a programming error in matrix construction, not a
// recoverable condition.
var ErrMalformedMatrix = errors.New("malformed cost matrix")

// Solver computes a maximum-weight one-to-one assignment between the rows
// and columns of a square cost matrix in O(n^3) using dual potentials.
type Solver struct {
	size int         // size is the number of rows and columns.
	cost [][]float64 // cost holds the score of pairing row i with column j.
}

// New creates a Solver for the given square cost matrix.
func New(cost [][]float64) (*Solver, error) {
	size := len(cost)
	for i, row := range cost {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedMatrix, i, len(row), size)
		}
		for j, value := range row {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return nil, fmt.Errorf("%w: entry (%d, %d) is not finite", ErrMalformedMatrix, i, j)
			}
		}
	}
	return &Solver{size: size, cost: cost}, nil
}

// Solve returns the column assigned to each row under a maximum-weight
// perfect matching. The returned slice has one entry per row.
func (s *Solver) Solve() []int {
	n := s.size
	if n == 0 {
		return []int{}
	}

	// Minimization form with 1-based potentials; row 0 and column 0 are virtual.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	matchedRow := make([]int, n+1) // matchedRow[j] is the row currently matched to column j.
	way := make([]int, n+1)        // way[j] is the previous column on the alternating path to j.

	for i := 1; i <= n; i++ {
		matchedRow[0] = i
		j0 := 0
		minSlack := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minSlack {
			minSlack[j] = math.Inf(1)
		}
		// Grow the alternating tree until an unmatched column is reached.
		for {
			used[j0] = true
			i0 := matchedRow[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				// Negate to turn the maximization into a minimization.
				reduced := -s.cost[i0-1][j-1] - u[i0] - v[j]
				if reduced < minSlack[j] {
					minSlack[j] = reduced
					way[j] = j0
				}
				if minSlack[j] < delta {
					delta = minSlack[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[matchedRow[j]] += delta
					v[j] -= delta
				} else {
					minSlack[j] -= delta
				}
			}
			j0 = j1
			if matchedRow[j0] == 0 {
				break
			}
		}
		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			matchedRow[j0] = matchedRow[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= n; j++ {
		assignment[matchedRow[j]-1] = j - 1
	}
	return assignment
}
