// Package similarity scores how strongly a resume relates to skill names using TF-IDF
// vectors over unigrams and bigrams and cosine similarity.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// Similarities returns the cosine similarity between the resume and each skill, in skill order.
// The TF-IDF model is fitted on the corpus made of the resume followed by every skill, so the
// same inputs always yield the same scores. Each score lies in [0, 1]; a document with no
// terms scores 0 against everything.
func Similarities(resume string, skills []string) []float64 {
	scores := make([]float64, len(skills))
	if len(skills) == 0 {
		return scores
	}

	docs := make([][]string, 0, len(skills)+1)
	docs = append(docs, Terms(resume))
	for _, skill := range skills {
		docs = append(docs, Terms(skill))
	}

	vectors := vectorize(docs)
	for i := range skills {
		scores[i] = cosine(vectors[0], vectors[i+1])
	}
	return scores
}

// Terms returns the unigram and bigram terms of text after normalization.
func Terms(text string) []string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// tokenize splits normalized text on whitespace and trims sentence-ending dots.
// Leading dots stay so ".net" remains one token.
func tokenize(text string) []string {
	fields := strings.Fields(parsing.NormalizeText(text))
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.TrimRight(f, ".")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// vectorize fits a TF-IDF model on docs and returns one L2-normalized vector per doc.
// Vectors are indexed by the sorted vocabulary.
func vectorize(docs [][]string) [][]float64 {
	df := make(map[string]int)
	counts := make([]map[string]int, len(docs))
	for i, terms := range docs {
		counts[i] = make(map[string]int, len(terms))
		for _, term := range terms {
			counts[i][term]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for j, term := range vocab {
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec := make([]float64, len(vocab))
		var norm float64
		for j, term := range vocab {
			if c := counts[i][term]; c > 0 {
				vec[j] = float64(c) * idf[j]
				norm += vec[j] * vec[j]
			}
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range vec {
				vec[j] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}

// cosine returns the cosine similarity of two L2-normalized vectors, clamped to [0, 1].
func cosine(a, b []float64) float64 {
	var dot float64
	for j := range a {
		dot += a[j] * b[j]
	}
	switch {
	case dot < 0:
		return 0
	case dot > 1:
		return 1
	default:
		return dot
	}
}
