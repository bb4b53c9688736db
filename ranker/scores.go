package ranker

import "sort"

// Score pairs a node identity with its PageRank score.
type Score struct {
	Title string
	Score float64
}

// Rank pairs every entry of vector with the node at the same index and
// sorts the result by descending score. Ties are broken by title so the
// output is deterministic. Neither input is modified.
func Rank(vector []float64, nodes []string) []Score {
	scores := make([]Score, len(vector))
	for i, v := range vector {
		scores[i] = Score{Title: nodes[i], Score: v}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Title < scores[j].Title
	})
	return scores
}

// Top returns the first k entries of scores. A non-positive k or a k larger
// than the number of scores returns every entry.
func Top(scores []Score, k int) []Score {
	if k <= 0 || k > len(scores) {
		return scores
	}
	return scores[:k]
}
