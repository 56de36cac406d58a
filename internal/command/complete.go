package command

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Complete completes the command word of a prompt entry and appends a space.
// Input is returned unchanged once arguments follow the word or when nothing
// matches.
func Complete(input string) string {
	prefix := ""
	text := input
	if strings.HasPrefix(text, CommandPrefix) {
		prefix = CommandPrefix
		text = text[len(CommandPrefix):]
	}
	word := strings.TrimSpace(text)
	if word == "" || strings.ContainsAny(text, " \t") {
		return input
	}
	if best := BestMatch(word); best != "" {
		return prefix + best + " "
	}
	return input
}

// BestMatch returns the command word closest to query, preferring prefix
// matches and then the smallest fuzzy distance.
func BestMatch(query string) string {
	lower := strings.ToLower(query)
	if full, ok := aliases[lower]; ok {
		return full
	}
	for _, name := range names {
		if strings.HasPrefix(name, lower) {
			return name
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.Target
}
