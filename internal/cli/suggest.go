package cli

import (
	"slices"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSuggestions = 3

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())

type candidate struct {
	node string
	rank int
}

// suggest returns the nodes closest to want by Levenshtein distance,
// nearest first. Nodes further away than half of want are dropped.
func suggest(want string, nodes []string) []string {
	target := fold(want)
	maxRank := len([]rune(target))/2 + 1

	ranked := make([]candidate, 0, len(nodes))
	for _, node := range nodes {
		rank := fuzzy.LevenshteinDistance(target, fold(node))
		if rank <= maxRank {
			ranked = append(ranked, candidate{node: node, rank: rank})
		}
	}
	slices.SortStableFunc(ranked, func(a, b candidate) int {
		return a.rank - b.rank
	})

	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(ranked) && i < maxSuggestions; i++ {
		out = append(out, ranked[i].node)
	}
	return out
}

func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return folded
}
