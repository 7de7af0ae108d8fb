//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package textsim

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

var (
	// englishSentenceTokenizerOnce ensures the Punkt model is loaded once.
	englishSentenceTokenizerOnce sync.Once
	// englishSentenceTokenizer holds the initialized sentence tokenizer instance.
	englishSentenceTokenizer *sentences.DefaultSentenceTokenizer
	// englishSentenceTokenizerErr caches any initialization error.
	englishSentenceTokenizerErr error
)

// splitSentences splits English text into sentences using Punkt training data.
func splitSentences(text string) ([]string, error) {
	englishSentenceTokenizerOnce.Do(func() {
		b, err := sentencesdata.Asset("data/english.json")
		if err != nil {
			englishSentenceTokenizerErr = fmt.Errorf("load english punkt data: %w", err)
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			englishSentenceTokenizerErr = fmt.Errorf("parse english punkt data: %w", err)
			return
		}
		englishSentenceTokenizer = sentences.NewSentenceTokenizer(training)
	})
	if englishSentenceTokenizerErr != nil {
		return nil, englishSentenceTokenizerErr
	}

	raw := englishSentenceTokenizer.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, sent := range raw {
		s := strings.TrimSpace(sent.Text)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// SummaryLCSFMeasure computes a sentence-level LCS F-measure between two
// texts. Each expected sentence contributes the union of its LCS matches
// across all actual sentences, which rewards content preserved across
// sentence boundaries more faithfully than a single flat LCS.
func SummaryLCSFMeasure(expected, actual string) (float64, error) {
	expectedSents, err := splitSentences(expected)
	if err != nil {
		return 0, err
	}
	actualSents, err := splitSentences(actual)
	if err != nil {
		return 0, err
	}

	expectedTokens := make([][]string, 0, len(expectedSents))
	expectedTotal := 0
	for _, s := range expectedSents {
		tokens := Tokenize(s)
		expectedTokens = append(expectedTokens, tokens)
		expectedTotal += len(tokens)
	}
	actualTokens := make([][]string, 0, len(actualSents))
	actualTotal := 0
	for _, s := range actualSents {
		tokens := Tokenize(s)
		actualTokens = append(actualTokens, tokens)
		actualTotal += len(tokens)
	}
	if expectedTotal == 0 || actualTotal == 0 {
		if expectedTotal == 0 && actualTotal == 0 {
			return 1, nil
		}
		return 0, nil
	}

	hits := 0
	for _, ref := range expectedTokens {
		hits += len(unionLCSIndices(ref, actualTokens))
	}
	// The union counts expected-side indices, so cap precision at 1 when the
	// actual text is shorter than the matched content.
	precision := math.Min(1, float64(hits)/float64(actualTotal))
	recall := float64(hits) / float64(expectedTotal)
	return fMeasure(precision, recall), nil
}

// unionLCSIndices returns the union of reference token indices matched by an
// LCS against any of the candidate sentences.
func unionLCSIndices(ref []string, cans [][]string) map[int]struct{} {
	union := make(map[int]struct{})
	if len(ref) == 0 {
		return union
	}
	for _, can := range cans {
		if len(can) == 0 {
			continue
		}
		for _, idx := range lcsRefIndices(ref, can) {
			union[idx] = struct{}{}
		}
	}
	return union
}
