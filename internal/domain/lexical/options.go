package lexical

// Option applies a configuration option to the Vectorizer.
type Option func(*Vectorizer)

// WithMinTokenLength sets the minimum rune length of a counted token.
func WithMinTokenLength(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.minTokenLength = n
		}
	}
}

// WithStopwords excludes the given words from the vocabulary. The default
// is no stopword filtering, matching the joint-refit batch semantics.
func WithStopwords(words []string) Option {
	return func(v *Vectorizer) {
		v.stopwords = make(map[string]struct{}, len(words))
		for _, w := range words {
			v.stopwords[w] = struct{}{}
		}
	}
}
