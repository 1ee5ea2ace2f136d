package lexical_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/okian/scribe/internal/domain/lexical"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func TestFitTransform(t *testing.T) {
	Convey("Given a TF-IDF vectorizer", t, func() {
		v := lexical.New()

		Convey("When fitting two identical documents", func() {
			rows, err := v.FitTransform([]string{
				"the quick brown fox",
				"the quick brown fox",
			})

			Convey("Then their cosine similarity should be 1", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
				So(lexical.Cosine(rows[0], rows[1]), ShouldAlmostEqual, 1.0, tolerance)
			})
		})

		Convey("When fitting documents with disjoint vocabularies", func() {
			rows, err := v.FitTransform([]string{
				"alpha beta gamma",
				"delta epsilon zeta",
			})

			Convey("Then their cosine similarity should be 0", func() {
				So(err, ShouldBeNil)
				So(lexical.Cosine(rows[0], rows[1]), ShouldAlmostEqual, 0.0, tolerance)
			})
		})

		Convey("When fitting a single document", func() {
			rows, err := v.FitTransform([]string{"solitary submission text"})

			Convey("Then one L2-normalized row is returned", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)

				var norm float64
				for _, val := range rows[0] {
					norm += val * val
				}
				So(math.Sqrt(norm), ShouldAlmostEqual, 1.0, tolerance)
			})
		})

		Convey("When fitting an empty batch", func() {
			_, err := v.FitTransform(nil)

			Convey("Then it should report the empty batch", func() {
				So(err, ShouldEqual, lexical.ErrEmptyBatch)
			})
		})

		Convey("When a document has no recognizable tokens", func() {
			rows, err := v.FitTransform([]string{"real words here", "!!! ??? ..."})

			Convey("Then it should yield a zero vector, not an error", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
				So(lexical.Cosine(rows[0], rows[1]), ShouldAlmostEqual, 0.0, tolerance)
			})
		})

		Convey("When partial word overlap exists", func() {
			rows, err := v.FitTransform([]string{
				"students write essays about history",
				"students write poems about nature",
			})

			Convey("Then similarity should be strictly between 0 and 1", func() {
				So(err, ShouldBeNil)
				sim := lexical.Cosine(rows[0], rows[1])
				So(sim, ShouldBeGreaterThan, 0.0)
				So(sim, ShouldBeLessThan, 1.0)
			})
		})

		Convey("When the same text is fit in two different batches", func() {
			rowsA, err := v.FitTransform([]string{"the quick brown fox"})
			So(err, ShouldBeNil)
			rowsB, err := v.FitTransform([]string{"the quick brown fox", "an unrelated essay concerning turtles"})
			So(err, ShouldBeNil)

			Convey("Then vocabularies differ and vectors are not cross-comparable", func() {
				So(len(rowsA[0]), ShouldNotEqual, len(rowsB[0]))
				So(lexical.Cosine(rowsA[0], rowsB[0]), ShouldEqual, 0)
			})
		})

		Convey("When tokenizing mixed-case text", func() {
			rows, err := v.FitTransform([]string{"The QUICK Brown FOX", "the quick brown fox"})

			Convey("Then casing should not affect similarity", func() {
				So(err, ShouldBeNil)
				So(lexical.Cosine(rows[0], rows[1]), ShouldAlmostEqual, 1.0, tolerance)
			})
		})
	})
}

func TestVectorizerOptions(t *testing.T) {
	Convey("Given vectorizer options", t, func() {
		Convey("When a stopword list is configured", func() {
			v := lexical.New(lexical.WithStopwords([]string{"the"}))
			rows, err := v.FitTransform([]string{"the fox", "the hound"})

			Convey("Then stopwords should not contribute to similarity", func() {
				So(err, ShouldBeNil)
				So(lexical.Cosine(rows[0], rows[1]), ShouldAlmostEqual, 0.0, tolerance)
			})
		})

		Convey("When the minimum token length is raised", func() {
			v := lexical.New(lexical.WithMinTokenLength(5))
			So(v.VocabularySize([]string{"tiny word lengthy vocabulary"}), ShouldEqual, 2)
		})
	})
}

func TestCosine(t *testing.T) {
	Convey("Given the cosine similarity function", t, func() {
		Convey("When vectors have mismatched lengths", func() {
			So(lexical.Cosine(lexical.Vector{1, 0}, lexical.Vector{1}), ShouldEqual, 0)
		})

		Convey("When either vector is zero", func() {
			So(lexical.Cosine(lexical.Vector{0, 0}, lexical.Vector{1, 0}), ShouldEqual, 0)
		})

		Convey("When vectors are identical", func() {
			So(lexical.Cosine(lexical.Vector{0.6, 0.8}, lexical.Vector{0.6, 0.8}), ShouldAlmostEqual, 1.0, tolerance)
		})

		Convey("When the raw cosine would exceed bounds", func() {
			// Accumulated floating error can push the ratio past 1.
			sim := lexical.Cosine(lexical.Vector{1e-8, 1e-8}, lexical.Vector{1e-8, 1e-8})
			So(sim, ShouldBeLessThanOrEqualTo, 1.0)
			So(sim, ShouldBeGreaterThanOrEqualTo, 0.0)
		})
	})
}

func TestMaxSimilarity(t *testing.T) {
	Convey("Given a target vector and a set of prior vectors", t, func() {
		v := lexical.New()
		rows, err := v.FitTransform([]string{
			"completely different subject matter",
			"the quick brown fox jumps",
			"the quick brown fox jumps over the lazy dog",
		})
		So(err, ShouldBeNil)

		target := rows[len(rows)-1]
		priors := rows[:len(rows)-1]

		Convey("When computing the maximum similarity", func() {
			maxSim := lexical.MaxSimilarity(target, priors)

			Convey("Then it should equal the largest pairwise cosine", func() {
				expected := math.Max(
					lexical.Cosine(target, priors[0]),
					lexical.Cosine(target, priors[1]),
				)
				So(maxSim, ShouldAlmostEqual, expected, tolerance)
			})
		})

		Convey("When the prior set is empty", func() {
			So(lexical.MaxSimilarity(target, nil), ShouldEqual, 0)
		})
	})
}

func TestFingerprint(t *testing.T) {
	Convey("Given a fingerprint of a fitted row", t, func() {
		v := lexical.New()
		rows, err := v.FitTransform([]string{"one fish two fish", "red fish blue fish"})
		So(err, ShouldBeNil)

		fp := lexical.NewFingerprint(rows[1])

		Convey("When marshaling to JSON", func() {
			data, err := json.Marshal(fp)

			Convey("Then it should encode as an array of one array", func() {
				So(err, ShouldBeNil)

				var decoded [][]float64
				So(json.Unmarshal(data, &decoded), ShouldBeNil)
				So(decoded, ShouldHaveLength, 1)
				So(decoded[0], ShouldHaveLength, len(rows[1]))
			})
		})

		Convey("When round-tripping through JSON", func() {
			data, err := json.Marshal(fp)
			So(err, ShouldBeNil)

			var restored lexical.Fingerprint
			So(json.Unmarshal(data, &restored), ShouldBeNil)

			Convey("Then components should match within rounding precision", func() {
				So(restored.Row(), ShouldHaveLength, len(rows[1]))
				for i, val := range restored.Row() {
					So(val, ShouldAlmostEqual, rows[1][i], 1e-6)
				}
			})
		})

		Convey("When unmarshaling a malformed fingerprint", func() {
			var restored lexical.Fingerprint
			err := json.Unmarshal([]byte(`{"not": "a matrix"}`), &restored)
			So(err, ShouldNotBeNil)

			err = json.Unmarshal([]byte(`[[1,2],[3,4]]`), &restored)
			So(err, ShouldNotBeNil)
		})

		Convey("When rendering as a string", func() {
			So(fp.String(), ShouldStartWith, "[[")
		})
	})
}
