//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package textsim

import "math"

// CosineTFIDF computes the cosine similarity between two texts vectorized as
// a two-document TF-IDF corpus, following scikit-learn's TfidfVectorizer
// defaults (smoothed IDF, l2 normalization, tokens of two or more
// alphanumeric characters). With only two documents the result is a
// relative signal: shared vocabulary is discounted against vocabulary
// unique to either text.
func CosineTFIDF(a, b string) float64 {
	aCounts := termCounts(a)
	bCounts := termCounts(b)
	if len(aCounts) == 0 || len(bCounts) == 0 {
		return 0
	}

	// Smoothed IDF over the two-document corpus: ln((1+n)/(1+df)) + 1 with n = 2.
	idfShared := 1.0
	idfUnique := math.Log(3.0/2.0) + 1

	var dot, aNorm, bNorm float64
	for term, aCount := range aCounts {
		idf := idfUnique
		bCount, shared := bCounts[term]
		if shared {
			idf = idfShared
		}
		aw := float64(aCount) * idf
		aNorm += aw * aw
		if shared {
			dot += aw * float64(bCount) * idf
		}
	}
	for term, bCount := range bCounts {
		idf := idfUnique
		if _, shared := aCounts[term]; shared {
			idf = idfShared
		}
		bw := float64(bCount) * idf
		bNorm += bw * bw
	}
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	return dot / (math.Sqrt(aNorm) * math.Sqrt(bNorm))
}

// termCounts builds the term frequency map for one document, keeping only
// tokens of at least two characters as the sklearn default token pattern does.
func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range Tokenize(text) {
		if len(token) < 2 {
			continue
		}
		counts[token]++
	}
	return counts
}
