// Package extractor turns free text into a ComponentSet and distills the
// words no category claimed into a residual description.
package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/matcher"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/textutil"
	"github.com/samber/lo"
)

const (
	// a description shorter than this after stripping counts as over-stripped
	minDescriptionLength = 5
	// only inputs longer than this fall back to the original text
	fallbackInputLength = 10
)

// gap marks a removed term or filler. Normalized text never contains it.
const gap = "|"

var fillerPhrases = []*regexp.Regexp{
	regexp.MustCompile(`\bi\s+(?:want|need|would\s+like)\b`),
	regexp.MustCompile(`\bplease\s+make\b`),
	regexp.MustCompile(`\bmake\s+me\b`),
	regexp.MustCompile(`\b(?:create|generate|compose)\b`),
	regexp.MustCompile(`\ban?[\s|]+(?:song|track|piece|tune|beat)s?\b`),
	regexp.MustCompile(`\bmusic\s+(?:that\s+is|with)\b`),
	regexp.MustCompile(`\bsounds?\s+like\b`),
}

var (
	token = regexp.MustCompile(`,|[^\s,]+`)
	// joiner words only survive between two kept words
	joinerWords = map[string]bool{
		"and": true, "with": true, "a": true, "an": true, "the": true, "of": true,
		"featuring": true, "for": true, "that": true, "is": true, "to": true, "in": true,
		"from": true, "by": true, "at": true, "on": true, "or": true,
	}
)

// Extractor runs the matcher over every category. It holds no mutable state.
type Extractor struct {
	matcher *matcher.Matcher
}

func New(m *matcher.Matcher) *Extractor {
	return &Extractor{matcher: m}
}

// Extract never fails: empty input yields an all-empty set.
func (e *Extractor) Extract(raw string) models.ComponentSet {
	normalized := textutil.Normalize(raw)
	if normalized == "" {
		return models.EmptyComponents()
	}

	var terms []string
	single := func(cat taxonomy.Category) string {
		m, ok := e.matcher.Match(normalized, cat)
		if !ok {
			return ""
		}
		terms = append(terms, m.Terms...)
		return m.Value
	}
	multi := func(cat taxonomy.Category) []string {
		matches := e.matcher.MatchAll(normalized, cat)
		for _, m := range matches {
			terms = append(terms, m.Terms...)
		}
		return matcher.Values(matches)
	}

	components := models.ComponentSet{
		Genre:       single(taxonomy.Genres),
		Mood:        single(taxonomy.Moods),
		Tempo:       single(taxonomy.Tempos),
		Instruments: models.InstrumentList(multi(taxonomy.Instruments)),
		Decade:      single(taxonomy.Decades),
		Region:      single(taxonomy.Regions),
		Vocals:      single(taxonomy.Vocals),
		Structure:   single(taxonomy.Structures),
		Descriptors: strings.Join(multi(taxonomy.Descriptors), ", "),
	}

	description := Distill(normalized, terms)
	original := strings.TrimSpace(raw)
	if len(description) < minDescriptionLength && len(original) > fallbackInputLength {
		description = original
	}
	components.Description = description

	return components
}

// Distill removes every term from normalized text, longest first, then
// strips filler phrases and repeated separators. A run of joiner words is
// dropped unless it sits between two kept words, so "ballad with piano and
// bass about rain" keeps "ballad about rain".
func Distill(normalized string, terms []string) string {
	unique := lo.Uniq(lo.Filter(terms, func(t string, _ int) bool { return strings.TrimSpace(t) != "" }))
	sort.SliceStable(unique, func(i, j int) bool { return len(unique[i]) > len(unique[j]) })

	text := normalized
	for _, term := range unique {
		if p := matcher.TermPattern([]string{term}); p != nil {
			text = p.ReplaceAllString(text, " "+gap+" ")
		}
	}
	for _, filler := range fillerPhrases {
		text = filler.ReplaceAllString(text, " "+gap+" ")
	}

	return joinTokens(dropOrphanJoiners(token.FindAllString(text, -1)))
}

func isKeptWord(tok string) bool {
	return tok != gap && tok != "," && !joinerWords[tok]
}

func dropOrphanJoiners(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if !joinerWords[tokens[i]] {
			out = append(out, tokens[i])
			i++
			continue
		}
		j := i
		for j < len(tokens) && joinerWords[tokens[j]] {
			j++
		}
		if i > 0 && j < len(tokens) && isKeptWord(tokens[i-1]) && isKeptWord(tokens[j]) {
			out = append(out, tokens[i:j]...)
		}
		i = j
	}
	return out
}

// joinTokens drops gaps and rebuilds the text with one ", " between
// comma-separated parts. Empty parts disappear.
func joinTokens(tokens []string) string {
	var parts, words []string
	flush := func() {
		if len(words) > 0 {
			parts = append(parts, strings.Join(words, " "))
			words = nil
		}
	}
	for _, tok := range tokens {
		switch tok {
		case gap:
		case ",":
			flush()
		default:
			words = append(words, tok)
		}
	}
	flush()
	return strings.Join(parts, ", ")
}
