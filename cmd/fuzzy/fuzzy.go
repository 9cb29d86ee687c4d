package fuzzy

import (
	"sort"
	"strings"
)

// Result is a candidate that matched a query.
type Result struct {
	// Text is the candidate as given
	Text string
	// Score represents how well the candidate matched (higher is better)
	Score float64
	// Matches holds the rune indices of matched characters
	Matches []int
}

// DefaultMinScore drops weak subsequence matches.
const DefaultMinScore = 0.2

// Rank scores every candidate against query and returns the matches sorted
// by score, best first. Ties keep the candidates' order. A limit of zero or
// less returns every match.
func Rank(query string, candidates []string, minScore float64, limit int) []Result {
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		score, matches := Match(query, c)
		if score > 0 && score >= minScore {
			results = append(results, Result{Text: c, Score: score, Matches: matches})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Match calculates a score between 0 and 1 for how well pattern matches
// text, ignoring case. It also returns the indices of matching runes.
func Match(pattern, text string) (float64, []int) {
	p := []rune(strings.ToLower(pattern))
	t := []rune(strings.ToLower(text))

	if len(p) == 0 {
		return 1.0, []int{}
	}

	if string(p) == string(t) {
		return 1.0, span(0, len(p))
	}

	// Prefix matches are heavily weighted
	if strings.HasPrefix(string(t), string(p)) {
		return 0.9, span(0, len(p))
	}

	// Contains matches are moderately weighted
	if idx := strings.Index(string(t), string(p)); idx >= 0 {
		start := len([]rune(string(t)[:idx]))
		return 0.8, span(start, len(p))
	}

	// Find each pattern rune in the text, in order
	matches := make([]int, 0, len(p))
	i := 0
	for j := 0; i < len(p) && j < len(t); j++ {
		if p[i] == t[j] {
			matches = append(matches, j)
			i++
		}
	}
	if i < len(p) {
		return 0.0, []int{}
	}

	// Score on coverage, gaps between matches and where the first match is
	matchRatio := float64(len(p)) / float64(len(t))

	gapPenalty := 0.0
	for k := 1; k < len(matches); k++ {
		if gap := matches[k] - matches[k-1] - 1; gap > 0 {
			gapPenalty += float64(gap) / float64(len(t))
		}
	}

	positionBonus := 0.1 * (1.0 - float64(matches[0])/float64(len(t)))

	// Scale down subsequence matches compared to prefix/exact
	score := (matchRatio - gapPenalty + positionBonus) * 0.7
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	return score, matches
}

func span(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
