// Package search scores catalog item names against a free-text query using
// a tiered heuristic. It is pure and safe for concurrent use.
package search

import (
	"regexp"
	"sort"
	"strings"
)

// Result pairs a catalog name with its match score.
type Result struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

const (
	maxResults    = 15
	emptyQueryCap = 10
)

// Match tiers, best tier wins; scores never sum across tiers.
const (
	scoreExact     = 1.0 // case-insensitive equality
	scorePrefix    = 0.8 // name starts with query
	scoreWord      = 0.6 // query appears as a whole word inside name
	scoreSubstring = 0.4 // query appears anywhere inside name
	scoreScattered = 0.2 // query characters appear in order, gaps allowed
)

// Query scores every name against query and returns up to 15 matches,
// sorted by descending score then ascending name. Non-matches are excluded.
// An empty query returns the first 10 names in catalog order, all scored 0.
func Query(query string, names []string) []Result {
	if query == "" {
		n := len(names)
		if n > emptyQueryCap {
			n = emptyQueryCap
		}
		out := make([]Result, n)
		for i := 0; i < n; i++ {
			out[i] = Result{Name: names[i]}
		}
		return out
	}

	q := strings.ToLower(query)
	wordRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(q) + `\b`)

	var results []Result
	for _, name := range names {
		if s := score(q, strings.ToLower(name), wordRe); s > 0 {
			results = append(results, Result{Name: name, Score: s})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// score evaluates the best matching tier for one lowercased name.
func score(q, name string, wordRe *regexp.Regexp) float64 {
	switch {
	case name == q:
		return scoreExact
	case strings.HasPrefix(name, q):
		return scorePrefix
	case wordRe.MatchString(name):
		return scoreWord
	case strings.Contains(name, q):
		return scoreSubstring
	case subsequence(q, name):
		return scoreScattered
	}
	return 0
}

// subsequence reports whether every rune of q occurs in name in order,
// not necessarily contiguously.
func subsequence(q, name string) bool {
	rs := []rune(name)
	i := 0
	for _, qr := range q {
		found := false
		for ; i < len(rs); i++ {
			if rs[i] == qr {
				i++
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
