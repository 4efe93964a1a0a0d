// Package taxonomy holds the read-only vocabulary tables (genres, moods,
// decades, instruments and friends) plus the template gallery and the
// suggestion lookup tables. A Taxonomy is built once and never mutated.
package taxonomy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/textutil"
	"github.com/Conceptual-Machines/suno-prompt-api/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Category names one vocabulary table.
type Category string

const (
	Genres      Category = "genres"
	Moods       Category = "moods"
	Decades     Category = "decades"
	Tempos      Category = "tempos"
	Instruments Category = "instruments"
	Regions     Category = "regions"
	Vocals      Category = "vocals"
	Structures  Category = "structures"
	Descriptors Category = "descriptors"
)

// AllCategories lists the tables in extraction order.
var AllCategories = []Category{Genres, Moods, Tempos, Instruments, Decades, Regions, Vocals, Structures, Descriptors}

// ParseCategory maps a user-supplied name to a Category.
func ParseCategory(name string) (Category, bool) {
	cat := Category(strings.ToLower(strings.TrimSpace(name)))
	return cat, slices.Contains(AllCategories, cat)
}

// Entry is one canonical term with the spellings that resolve to it.
type Entry struct {
	Name     string   `yaml:"name" json:"name"`
	Aliases  []string `yaml:"aliases" json:"aliases,omitempty"`
	Synonyms []string `yaml:"synonyms" json:"synonyms,omitempty"`
	Keywords []string `yaml:"keywords" json:"keywords,omitempty"`
	Category string   `yaml:"category" json:"category,omitempty"`
}

// ExactTerms returns the name followed by its aliases.
func (e Entry) ExactTerms() []string {
	return append([]string{e.Name}, e.Aliases...)
}

// Terms returns every spelling of the entry, keywords included.
func (e Entry) Terms() []string {
	terms := e.ExactTerms()
	terms = append(terms, e.Synonyms...)
	return append(terms, e.Keywords...)
}

type tablesFile struct {
	Genres      []Entry `yaml:"genres"`
	Moods       []Entry `yaml:"moods"`
	Decades     []Entry `yaml:"decades"`
	Tempos      []Entry `yaml:"tempos"`
	Instruments []Entry `yaml:"instruments"`
	Regions     []Entry `yaml:"regions"`
	Vocals      []Entry `yaml:"vocals"`
	Structures  []Entry `yaml:"structures"`
	Descriptors []Entry `yaml:"descriptors"`
}

type templatesFile struct {
	Popular   []string          `yaml:"popular"`
	Templates []models.Template `yaml:"templates"`
}

// Taxonomy is the immutable set of lookup tables.
type Taxonomy struct {
	tables      map[Category][]Entry
	templates   []models.Template
	popular     []string
	suggestions SuggestionTables
}

// Parse decodes the three YAML documents and validates the result.
func Parse(tablesYAML, templatesYAML, suggestionsYAML []byte) (*Taxonomy, error) {
	var tf tablesFile
	if err := yaml.Unmarshal(tablesYAML, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy tables: %w", err)
	}

	var tpl templatesFile
	if err := yaml.Unmarshal(templatesYAML, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	var st SuggestionTables
	if err := yaml.Unmarshal(suggestionsYAML, &st); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion tables: %w", err)
	}

	for i := range tpl.Templates {
		if tpl.Templates[i].Components.Instruments == nil {
			tpl.Templates[i].Components.Instruments = models.InstrumentList{}
		}
	}

	t := &Taxonomy{
		tables: map[Category][]Entry{
			Genres:      tf.Genres,
			Moods:       tf.Moods,
			Decades:     tf.Decades,
			Tempos:      tf.Tempos,
			Instruments: tf.Instruments,
			Regions:     tf.Regions,
			Vocals:      tf.Vocals,
			Structures:  tf.Structures,
			Descriptors: tf.Descriptors,
		},
		templates:   tpl.Templates,
		popular:     tpl.Popular,
		suggestions: st,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that canonical names are present and unique within each
// table and that template ids are unique and resolvable.
func (t *Taxonomy) Validate() error {
	for _, cat := range AllCategories {
		entries := t.tables[cat]
		if len(entries) == 0 {
			return fmt.Errorf("taxonomy table %q is empty", cat)
		}
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			key := strings.ToLower(strings.TrimSpace(e.Name))
			if key == "" {
				return fmt.Errorf("taxonomy table %q has an entry without a name", cat)
			}
			if seen[key] {
				return fmt.Errorf("taxonomy table %q has duplicate entry %q", cat, e.Name)
			}
			seen[key] = true
		}
	}

	ids := make(map[string]bool, len(t.templates))
	for _, tpl := range t.templates {
		if tpl.ID == "" {
			return fmt.Errorf("template %q has no id", tpl.Name)
		}
		if ids[tpl.ID] {
			return fmt.Errorf("duplicate template id %q", tpl.ID)
		}
		ids[tpl.ID] = true
	}
	for _, id := range t.popular {
		if !ids[id] {
			return fmt.Errorf("popular template %q does not exist", id)
		}
	}
	return nil
}

// Entries returns a copy of one table in declaration order.
func (t *Taxonomy) Entries(cat Category) []Entry {
	return slices.Clone(t.tables[cat])
}

// Names returns the canonical names of one table in declaration order.
func (t *Taxonomy) Names(cat Category) []string {
	entries := t.tables[cat]
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

// Find resolves a term to its entry by name, alias or synonym. The
// comparison ignores case and punctuation.
func (t *Taxonomy) Find(cat Category, term string) (Entry, bool) {
	return t.find(cat, term, false)
}

// FindLoose is Find with keywords also accepted.
func (t *Taxonomy) FindLoose(cat Category, term string) (Entry, bool) {
	return t.find(cat, term, true)
}

func (t *Taxonomy) find(cat Category, term string, withKeywords bool) (Entry, bool) {
	needle := textutil.Normalize(term)
	if needle == "" {
		return Entry{}, false
	}
	for _, e := range t.tables[cat] {
		terms := append(e.ExactTerms(), e.Synonyms...)
		if withKeywords {
			terms = append(terms, e.Keywords...)
		}
		for _, candidate := range terms {
			if textutil.Normalize(candidate) == needle {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Suggestions returns the suggestion engine lookup tables.
func (t *Taxonomy) Suggestions() SuggestionTables {
	return t.suggestions
}

// LoadEmbedded parses the tables compiled into the binary.
func LoadEmbedded() (*Taxonomy, error) {
	return Parse(embedded.TaxonomyYAML, embedded.TemplatesYAML, embedded.SuggestionsYAML)
}
