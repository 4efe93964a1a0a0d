package matcher

import (
	"regexp"
	"strconv"
	"strings"
)

// recentCentury marks text that talks about the current century; two-digit
// decades below 30 then resolve to the 2000s instead of the 1900s.
const recentCentury = "202"

const twoDigitCutoff = 30

// decadeNumericRule expands "80s" to "1980s" and keeps "1980s" as written.
// It runs before every named decade entry.
func decadeNumericRule() Rule {
	return Rule{
		Kind:    KindExact,
		Pattern: regexp.MustCompile(`\b(\d{2}|\d{4})s\b`),
		entry:   -1,
		resolve: func(groups []string, text string) string {
			digits := groups[1]
			if len(digits) == 4 {
				return digits + "s"
			}
			year, _ := strconv.Atoi(digits)
			if year < twoDigitCutoff && strings.Contains(text, recentCentury) {
				return "20" + digits + "s"
			}
			return "19" + digits + "s"
		},
	}
}

// bpmRule turns "120 bpm" or "90 beats per minute" into "120 BPM". It runs
// before the qualitative tempo entries.
func bpmRule() Rule {
	return Rule{
		Kind:    KindExact,
		Pattern: regexp.MustCompile(`\b(\d{2,3})\s*(?:bpm|beats[-\s]?per[-\s]?minute)\b`),
		entry:   -1,
		resolve: func(groups []string, _ string) string {
			return groups[1] + " BPM"
		},
	}
}

// tempoIntensity are the words that may sharpen a qualitative tempo.
const tempoIntensity = `(?:very|really|super|extremely|incredibly|moderately|somewhat|slightly|gradually|suddenly)`

// withTempoIntensity lets each qualitative tempo rule absorb one leading
// intensity word. "very slow" still resolves to slow, but the whole phrase
// is the matched term.
func withTempoIntensity(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Pattern = regexp.MustCompile(`(?:\b` + tempoIntensity + `\s+)?` + r.Pattern.String())
		out[i] = r
	}
	return out
}

// tempoModifierRules catch comparative tempo phrases. They rank below every
// qualitative tempo word.
func tempoModifierRules() []Rule {
	modifiers := []struct {
		canonical string
		pattern   string
	}{
		{"accelerating", `\b(?:gradually|steadily)\s+(?:accelerating|speeding\s+up|getting\s+faster)\b`},
		{"decelerating", `\b(?:gradually|steadily)\s+(?:decelerating|slowing\s+down|getting\s+slower)\b`},
		{"half-time", `\bhalf[-\s]?time\b`},
		{"double-time", `\bdouble[-\s]?time\b`},
	}

	rules := make([]Rule, 0, len(modifiers))
	for _, mod := range modifiers {
		rules = append(rules, Rule{
			Canonical: mod.canonical,
			Kind:      KindKeyword,
			Pattern:   regexp.MustCompile(mod.pattern),
			entry:     -1,
		})
	}
	return rules
}
