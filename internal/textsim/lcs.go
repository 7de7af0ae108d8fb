//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package textsim

// LCSFMeasure computes the longest-common-subsequence F-measure between the
// tokenized forms of two texts. Identical texts score 1, token-disjoint
// texts score 0.
func LCSFMeasure(expected, actual string) float64 {
	expectedTokens := Tokenize(expected)
	actualTokens := Tokenize(actual)
	if len(expectedTokens) == 0 || len(actualTokens) == 0 {
		if len(expectedTokens) == 0 && len(actualTokens) == 0 {
			return 1
		}
		return 0
	}
	lcsLen := lcsLength(expectedTokens, actualTokens)
	precision := float64(lcsLen) / float64(len(actualTokens))
	recall := float64(lcsLen) / float64(len(expectedTokens))
	return fMeasure(precision, recall)
}

// fMeasure computes the harmonic mean of precision and recall.
func fMeasure(precision, recall float64) float64 {
	if precision+recall > 0 {
		return 2 * precision * recall / (precision + recall)
	}
	return 0
}

// lcsLength computes the length of the longest common subsequence.
func lcsLength(ref, can []string) int {
	if len(ref) == 0 || len(can) == 0 {
		return 0
	}
	prev := make([]int, len(can)+1)
	curr := make([]int, len(can)+1)
	for i := 1; i <= len(ref); i++ {
		curr[0] = 0
		for j := 1; j <= len(can); j++ {
			if ref[i-1] == can[j-1] {
				curr[j] = prev[j-1] + 1
				continue
			}
			if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(can)]
}

// lcsTable builds the full LCS dynamic programming table for backtracking.
func lcsTable(ref, can []string) [][]int {
	table := make([][]int, len(ref)+1)
	for i := range table {
		table[i] = make([]int, len(can)+1)
	}
	for i := 1; i <= len(ref); i++ {
		for j := 1; j <= len(can); j++ {
			if ref[i-1] == can[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}
	return table
}

// lcsRefIndices returns the reference token indices that participate in one
// longest common subsequence between ref and can.
func lcsRefIndices(ref, can []string) []int {
	table := lcsTable(ref, can)
	indices := make([]int, 0, table[len(ref)][len(can)])
	i, j := len(ref), len(can)
	for i > 0 && j > 0 {
		switch {
		case ref[i-1] == can[j-1]:
			indices = append(indices, i-1)
			i--
			j--
		case table[i-1][j] >= table[i][j-1]:
			i--
		default:
			j--
		}
	}
	return indices
}
