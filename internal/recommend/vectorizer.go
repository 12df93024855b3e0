// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vectorizer builds a TF-IDF vector space over a document corpus.
// The vocabulary is capped at the MaxFeatures most frequent terms, stop
// words are excluded, IDF is smoothed, and document vectors are
// L2-normalized so cosine similarity reduces to a dot product against
// unit-length candidates.
type Vectorizer struct {
	maxFeatures int

	// Fitted state, populated by FitTransform.
	vocabulary map[string]int
	idf        []float64
}

// NewVectorizer creates a vectorizer with the given vocabulary cap.
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{maxFeatures: maxFeatures}
}

// FitTransform learns the vocabulary and IDF weights from docs and returns
// one vector per document, each of dimensionality VocabularySize with
// non-negative entries. Returns an error when the corpus yields an empty
// vocabulary (all tokens are stop words or too short).
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	tokenized := make([][]string, len(docs))
	for i, doc := range docs {
		tokenized[i] = tokenize(doc)
	}

	v.fitVocabulary(tokenized)
	if len(v.vocabulary) == 0 {
		return nil, fmt.Errorf("empty vocabulary: no informative terms in %d documents", len(docs))
	}

	v.fitIDF(tokenized)

	vectors := make([][]float64, len(tokenized))
	for i, tokens := range tokenized {
		vectors[i] = v.transform(tokens)
	}
	return vectors, nil
}

// VocabularySize returns the number of terms in the fitted vocabulary.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// fitVocabulary selects the maxFeatures most frequent corpus terms.
// Ties break lexicographically for determinism.
func (v *Vectorizer) fitVocabulary(tokenized [][]string) {
	counts := make(map[string]int)
	for _, tokens := range tokenized {
		for _, tok := range tokens {
			counts[tok]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}

	v.vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
	}
}

// fitIDF computes smoothed inverse document frequencies:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func (v *Vectorizer) fitIDF(tokenized [][]string) {
	df := make([]int, len(v.vocabulary))
	for _, tokens := range tokenized {
		seen := make(map[int]struct{}, len(tokens))
		for _, tok := range tokens {
			if idx, ok := v.vocabulary[tok]; ok {
				seen[idx] = struct{}{}
			}
		}
		for idx := range seen {
			df[idx]++
		}
	}

	n := float64(len(tokenized))
	v.idf = make([]float64, len(df))
	for i, d := range df {
		v.idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}
}

// transform maps one tokenized document to its L2-normalized TF-IDF vector.
func (v *Vectorizer) transform(tokens []string) []float64 {
	vec := make([]float64, len(v.vocabulary))
	for _, tok := range tokens {
		if idx, ok := v.vocabulary[tok]; ok {
			vec[idx] += v.idf[idx]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// tokenize lowercases the text and splits it into alphanumeric tokens,
// dropping single characters and stop words.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 2 || isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// meanVector returns the element-wise mean of the given vectors.
// All vectors must share the same dimensionality.
func meanVector(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	mean := make([]float64, len(vectors[0]))
	for _, vec := range vectors {
		for i, x := range vec {
			mean[i] += x
		}
	}
	n := float64(len(vectors))
	for i := range mean {
		mean[i] /= n
	}
	return mean
}

// cosineSimilarity returns the cosine of the angle between a and b.
// Both vectors are non-negative here, so the result lies in [0, 1];
// a zero vector yields 0.
func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
