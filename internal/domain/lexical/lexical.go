// Package lexical implements the sparse TF-IDF vector space used for
// plagiarism screening.
//
// The vector space is induced by exactly one batch of documents: callers
// fit the corpus and the candidate submission together, every call. Two
// vectors are comparable only when they came out of the same FitTransform
// batch; vectors from different batches live in different vocabularies
// and must never be compared.
package lexical

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vector is one L2-normalized row of the fitted batch, dense over the
// batch vocabulary.
type Vector []float64

// Vectorizer builds a TF-IDF vector space over a document batch.
// A Vectorizer carries no state between FitTransform calls.
type Vectorizer struct {
	tokenPattern   *regexp.Regexp
	minTokenLength int
	stopwords      map[string]struct{}
}

// New creates a Vectorizer with default configuration.
func New(opts ...Option) *Vectorizer {
	v := &Vectorizer{
		tokenPattern:   regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`),
		minTokenLength: 2,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FitTransform builds the vocabulary from exactly docs, in input order,
// and returns one L2-normalized TF-IDF row per document. A single-document
// batch is well-defined. A document with no recognized tokens yields a
// zero vector rather than an error.
func (v *Vectorizer) FitTransform(docs []string) ([]Vector, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyBatch
	}

	tokenized := make([][]string, len(docs))
	for i, doc := range docs {
		tokenized[i] = v.tokenize(doc)
	}

	// Document frequencies over the batch.
	df := make(map[string]int)
	for _, tokens := range tokenized {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable vocabulary ordering.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocabulary[term] = i
		// Smoothed IDF
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	rows := make([]Vector, len(docs))
	for i, tokens := range tokenized {
		rows[i] = vectorizeRow(tokens, vocabulary, idf)
	}
	return rows, nil
}

// VocabularySize reports the number of distinct terms a batch would
// produce. Useful for instrumentation only.
func (v *Vectorizer) VocabularySize(docs []string) int {
	seen := make(map[string]struct{})
	for _, doc := range docs {
		for _, tok := range v.tokenize(doc) {
			seen[tok] = struct{}{}
		}
	}
	return len(seen)
}

func vectorizeRow(tokens []string, vocabulary map[string]int, idf []float64) Vector {
	vec := make(Vector, len(idf))
	if len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		if idx, ok := vocabulary[tok]; ok {
			vec[idx]++
		}
	}
	for idx := range vec {
		vec[idx] *= idf[idx]
	}

	// L2 normalize
	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

func (v *Vectorizer) tokenize(text string) []string {
	raw := v.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if len([]rune(tok)) < v.minTokenLength {
			continue
		}
		if _, isStop := v.stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Cosine computes the cosine similarity of two rows from the same batch,
// clamped to [0, 1]. Comparing rows of different lengths is a programming
// error; Cosine returns 0 for mismatched or zero vectors.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}

// MaxSimilarity returns the maximum cosine similarity between target and
// each of others. Ties are not distinguished; only the maximum matters.
func MaxSimilarity(target Vector, others []Vector) float64 {
	var maxSim float64
	for _, other := range others {
		if sim := Cosine(target, other); sim > maxSim {
			maxSim = sim
		}
	}
	return maxSim
}
