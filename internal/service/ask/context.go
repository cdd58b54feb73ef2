package ask

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lexaid/counsel/vectorindex"
)

const (
	boostAmount      = 0.2
	minContextLength = 50
)

// Questions about penalties get a keyword-based relevance boost. This is a
// heuristic, not a learned re-ranker.
var penaltyQuestion = regexp.MustCompile(`(?i)\b(penalty|penalties|fine|fines|parking|violation|violations|ordinance)\b`)

var boostKeywords = []string{"penalty", "fine", "parking", "₱"}

// Boost adds a fixed score bonus to matches whose content mentions any boost
// keyword, when the question is penalty-related. Ties keep original order.
func Boost(question string, matches []vectorindex.Match) []vectorindex.Match {
	if !penaltyQuestion.MatchString(question) {
		return matches
	}

	boosted := make([]vectorindex.Match, len(matches))
	copy(boosted, matches)

	for i := range boosted {
		content := strings.ToLower(metaString(boosted[i].Metadata, "content"))
		for _, kw := range boostKeywords {
			if strings.Contains(content, kw) {
				boosted[i].Score += boostAmount
				break
			}
		}
	}

	sort.SliceStable(boosted, func(i, j int) bool {
		return boosted[i].Score > boosted[j].Score
	})

	return boosted
}

// BuildContext concatenates matched passages into one context block, each
// prefixed with its Article/Section label when present. The second return is
// false when there is nothing worth sending to the model; the caller must
// short-circuit to a refusal answer. Never errors.
func BuildContext(matches []vectorindex.Match) (string, bool) {
	var parts []string

	for _, m := range matches {
		content := metaString(m.Metadata, "content")
		if len(content) == 0 {
			continue
		}

		if title := metaString(m.Metadata, "title"); len(title) > 0 {
			content = title + ": " + content
		}

		parts = append(parts, content)
	}

	context := strings.Join(parts, "\n\n")
	if len(context) < minContextLength {
		return "", false
	}

	return context, true
}

func metaString(metadata map[string]any, key string) string {
	if v, ok := metadata[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
