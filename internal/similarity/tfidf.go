package similarity

import "math"

// Score returns the TF-IDF cosine similarity of two texts as a percentage in
// [0, 100]. The vector space is fitted jointly over exactly the two texts
// with smoothed IDF and L2 normalization, so a text scored against itself
// yields 100. Degenerate inputs (empty, or nothing left after stopword
// removal) score 0.0 by contract, never an error.
func Score(a, b string) float64 {
	ta := Tokenize(a)
	tb := Tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	ca := termCounts(ta)
	cb := termCounts(tb)

	// Smoothed IDF over the two-document corpus: ln((1+n)/(1+df)) + 1.
	// Terms present in both documents get weight 1, terms unique to one get
	// a boost; this matches the conventional vectorizer behavior.
	idf := make(map[string]float64, len(ca)+len(cb))
	for term := range ca {
		df := 1.0
		if cb[term] > 0 {
			df = 2.0
		}
		idf[term] = math.Log(3.0/(1.0+df)) + 1.0
	}
	for term := range cb {
		if _, ok := idf[term]; !ok {
			idf[term] = math.Log(3.0/2.0) + 1.0
		}
	}

	va := weigh(ca, idf)
	vb := weigh(cb, idf)

	var dot float64
	for term, wa := range va {
		dot += wa * vb[term]
	}

	// Clamp against float drift so the result stays a valid percentage.
	return math.Min(1.0, math.Max(0.0, dot)) * 100.0
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

// weigh builds the L2-normalized TF-IDF vector for one document.
func weigh(counts map[string]int, idf map[string]float64) map[string]float64 {
	v := make(map[string]float64, len(counts))
	var norm float64
	for term, tf := range counts {
		w := float64(tf) * idf[term]
		v[term] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for term := range v {
		v[term] /= norm
	}
	return v
}
