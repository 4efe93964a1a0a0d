// Package matcher turns taxonomy tables into ordered regex rules and runs
// them over normalized text.
//
// Each category is an ordered rule list. Single-valued categories return the
// first rule that hits: every exact rule (name or alias) in table order,
// then every synonym rule, then every keyword rule. Multi-valued categories
// (instruments, descriptors) collect every entry that appears anywhere in
// the text, in table order.
package matcher

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/textutil"
	"github.com/samber/lo"
)

// Kind is the precedence level of a rule. Lower kinds win.
type Kind int

const (
	KindExact Kind = iota
	KindSynonym
	KindKeyword
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindSynonym:
		return "synonym"
	case KindKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Rule is one compiled pattern resolving to a canonical value. Rules with a
// resolve func compute the value from the submatches instead.
type Rule struct {
	Canonical string
	Kind      Kind
	Pattern   *regexp.Regexp

	entry   int
	resolve func(groups []string, text string) string
}

// Match is a hit for one category. Terms lists the matched text followed by
// every spelling of the matched entry, for removal from the description.
type Match struct {
	Value string
	Kind  Kind
	Terms []string
}

// Matcher holds the compiled rules for every category. It is read-only after
// New and safe for concurrent use.
type Matcher struct {
	rules   map[taxonomy.Category][]Rule
	byEntry map[taxonomy.Category][]Rule
	terms   map[taxonomy.Category]map[string][]string
}

var multiValued = map[taxonomy.Category]bool{
	taxonomy.Instruments: true,
	taxonomy.Descriptors: true,
}

// IsMultiValued reports whether the category collects every hit.
func IsMultiValued(cat taxonomy.Category) bool {
	return multiValued[cat]
}

// New compiles the rule lists for every category of tax.
func New(tax *taxonomy.Taxonomy) *Matcher {
	m := &Matcher{
		rules:   make(map[taxonomy.Category][]Rule),
		byEntry: make(map[taxonomy.Category][]Rule),
		terms:   make(map[taxonomy.Category]map[string][]string),
	}

	for _, cat := range taxonomy.AllCategories {
		entries := tax.Entries(cat)
		rules := buildRules(entries)

		switch cat {
		case taxonomy.Decades:
			rules = append([]Rule{decadeNumericRule()}, rules...)
		case taxonomy.Tempos:
			rules = append([]Rule{bpmRule()}, withTempoIntensity(rules)...)
			rules = append(rules, tempoModifierRules()...)
		}

		m.rules[cat] = rules
		m.byEntry[cat] = groupByEntry(rules)

		names := make(map[string][]string, len(entries))
		for _, e := range entries {
			names[e.Name] = e.Terms()
		}
		m.terms[cat] = names
	}
	return m
}

// Rules returns the ordered rule list of a category.
func (m *Matcher) Rules(cat taxonomy.Category) []Rule {
	return append([]Rule(nil), m.rules[cat]...)
}

// Match returns the first rule hit for cat in precedence order. text must
// already be normalized with textutil.Normalize.
func (m *Matcher) Match(text string, cat taxonomy.Category) (Match, bool) {
	if text == "" {
		return Match{}, false
	}
	for _, rule := range m.rules[cat] {
		groups := rule.Pattern.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		value := rule.value(groups, text)
		return Match{
			Value: value,
			Kind:  rule.Kind,
			Terms: append([]string{groups[0]}, m.terms[cat][value]...),
		}, true
	}
	return Match{}, false
}

// MatchAll returns every distinct entry of cat found in text, in table
// order. An occurrence lying inside the span of an earlier accepted
// occurrence is not counted, so "synth bass" does not also yield "synth".
func (m *Matcher) MatchAll(text string, cat taxonomy.Category) []Match {
	if text == "" {
		return nil
	}

	var (
		matches []Match
		covered [][]int
	)
	rules := m.byEntry[cat]
	for i := 0; i < len(rules); {
		j := i
		for j < len(rules) && rules[j].entry == rules[i].entry {
			j++
		}

		var (
			hit     *Match
			matched []string
		)
		for _, rule := range rules[i:j] {
			for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
				if isCovered(covered, loc[0], loc[1]) {
					continue
				}
				covered = append(covered, []int{loc[0], loc[1]})
				matched = append(matched, text[loc[0]:loc[1]])
				if hit == nil {
					hit = &Match{Value: rule.value(submatches(text, loc), text), Kind: rule.Kind}
				}
			}
		}
		if hit != nil {
			hit.Terms = append(lo.Uniq(matched), m.terms[cat][hit.Value]...)
			matches = append(matches, *hit)
		}
		i = j
	}

	return lo.UniqBy(matches, func(match Match) string { return match.Value })
}

// Values is a convenience returning only the canonical values of matches.
func Values(matches []Match) []string {
	return lo.Map(matches, func(match Match, _ int) string { return match.Value })
}

// TermPattern compiles terms into one word-bounded alternation. Terms are
// normalized like input text; inner spaces and hyphens become optional
// separators and a trailing plural "s" is accepted. Nil when no term is
// usable.
func TermPattern(terms []string) *regexp.Regexp {
	alternatives := make([]string, 0, len(terms))
	for _, term := range terms {
		if alt := termAlternative(term); alt != "" {
			alternatives = append(alternatives, alt)
		}
	}
	alternatives = lo.Uniq(alternatives)
	if len(alternatives) == 0 {
		return nil
	}

	// longest first so "drum machine" beats "drum" inside the alternation
	sort.SliceStable(alternatives, func(i, j int) bool {
		return len(alternatives[i]) > len(alternatives[j])
	})
	return regexp.MustCompile(`\b(?:` + strings.Join(alternatives, "|") + `)s?\b`)
}

var termSeparators = regexp.MustCompile(`[\s-]+`)

func termAlternative(term string) string {
	normalized := strings.Trim(textutil.Normalize(term), " ,")
	if normalized == "" {
		return ""
	}
	words := lo.Filter(termSeparators.Split(normalized, -1), func(w string, _ int) bool { return w != "" })
	quoted := lo.Map(words, func(w string, _ int) string { return regexp.QuoteMeta(w) })
	return strings.Join(quoted, `[-\s]?`)
}

func buildRules(entries []taxonomy.Entry) []Rule {
	var exact, synonym, keyword []Rule
	for i, e := range entries {
		if p := TermPattern(e.ExactTerms()); p != nil {
			exact = append(exact, Rule{Canonical: e.Name, Kind: KindExact, Pattern: p, entry: i})
		}
		if p := TermPattern(e.Synonyms); p != nil {
			synonym = append(synonym, Rule{Canonical: e.Name, Kind: KindSynonym, Pattern: p, entry: i})
		}
		if p := TermPattern(e.Keywords); p != nil {
			keyword = append(keyword, Rule{Canonical: e.Name, Kind: KindKeyword, Pattern: p, entry: i})
		}
	}
	rules := append(exact, synonym...)
	return append(rules, keyword...)
}

func groupByEntry(rules []Rule) []Rule {
	grouped := append([]Rule(nil), rules...)
	sort.SliceStable(grouped, func(i, j int) bool {
		if grouped[i].entry != grouped[j].entry {
			return grouped[i].entry < grouped[j].entry
		}
		return grouped[i].Kind < grouped[j].Kind
	})
	return grouped
}

func (r Rule) value(groups []string, text string) string {
	if r.resolve != nil {
		return r.resolve(groups, text)
	}
	return r.Canonical
}

func isCovered(spans [][]int, start, end int) bool {
	return lo.SomeBy(spans, func(span []int) bool {
		return span[0] <= start && end <= span[1]
	})
}

func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return groups
}
