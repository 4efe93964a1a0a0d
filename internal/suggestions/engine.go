// Package suggestions proposes next steps for a component set from fixed
// genre, mood and decade tables, recommends gallery templates, and offers
// creative ideas.
package suggestions

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/samber/lo"
)

const (
	maxSuggestions       = 5
	maxTemplates         = 3
	maxIdeas             = 3
	maxInstrumentOptions = 3
	maxTempoOptions      = 1
	maxDescriptorOptions = 2
	maxGenreOptions      = 3
	maxIdeaExamples      = 2
)

// Random is the source used to pick the wildcard idea. *rand.Rand satisfies
// it.
type Random interface {
	Intn(n int) int
}

// Engine is safe for concurrent use. The random source is the only mutable
// state and is guarded by mu.
type Engine struct {
	tax    *taxonomy.Taxonomy
	tables taxonomy.SuggestionTables

	mu  sync.Mutex
	rng Random
}

// New builds an engine. A nil rng falls back to a time-seeded source.
func New(tax *taxonomy.Taxonomy, rng Random) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{tax: tax, tables: tax.Suggestions(), rng: rng}
}

// NewSeeded builds an engine whose wildcard picks repeat for the same seed.
func NewSeeded(tax *taxonomy.Taxonomy, seed int64) *Engine {
	return New(tax, rand.New(rand.NewSource(seed)))
}

// Suggest proposes values for the empty fields of c and recommends up to
// three templates. A suggestion type is never produced for a field that is
// already populated.
func (e *Engine) Suggest(c models.ComponentSet) models.SuggestionResult {
	var suggestions []models.Suggestion
	if genre := strings.ToUpper(strings.TrimSpace(c.Genre)); genre != "" {
		suggestions = append(suggestions, e.genreSuggestions(genre, c)...)
	}
	if mood := strings.TrimSpace(c.Mood); mood != "" {
		suggestions = append(suggestions, e.moodSuggestions(mood, c)...)
	}
	if decade := strings.TrimSpace(c.Decade); decade != "" {
		suggestions = append(suggestions, e.decadeSuggestions(decade, c)...)
	}

	suggestions = lo.UniqBy(suggestions, func(s models.Suggestion) string {
		return string(s.Type) + ":" + s.Message
	})

	return models.SuggestionResult{
		Suggestions:          lo.Slice(suggestions, 0, maxSuggestions),
		RecommendedTemplates: e.RecommendTemplates(c),
	}
}

func (e *Engine) genreSuggestions(genre string, c models.ComponentSet) []models.Suggestion {
	var out []models.Suggestion
	if options, ok := e.tables.GenreInstruments[genre]; ok && !c.HasInstruments() {
		out = append(out, models.Suggestion{
			Type:    models.SuggestInstruments,
			Message: fmt.Sprintf("Try adding these instruments common in %s:", genre),
			Options: lo.Slice(options, 0, maxInstrumentOptions),
		})
	}
	if options, ok := e.tables.GenreTempos[genre]; ok && strings.TrimSpace(c.Tempo) == "" {
		out = append(out, models.Suggestion{
			Type:    models.SuggestTempo,
			Message: fmt.Sprintf("Consider this tempo range for %s:", genre),
			Options: lo.Slice(options, 0, maxTempoOptions),
		})
	}
	if structure, ok := e.tables.GenreStructures[genre]; ok && strings.TrimSpace(c.Structure) == "" {
		out = append(out, models.Suggestion{
			Type:    models.SuggestStructure,
			Message: fmt.Sprintf("Common structure for %s:", genre),
			Options: []string{structure},
		})
	}
	return out
}

func (e *Engine) moodSuggestions(mood string, c models.ComponentSet) []models.Suggestion {
	key := strings.ToLower(mood)
	var out []models.Suggestion
	if options, ok := e.tables.MoodDescriptors[key]; ok && strings.TrimSpace(c.Descriptors) == "" {
		out = append(out, models.Suggestion{
			Type:    models.SuggestDescriptors,
			Message: fmt.Sprintf("Descriptors that complement %q:", mood),
			Options: lo.Slice(options, 0, maxDescriptorOptions),
		})
	}
	if options, ok := e.tables.MoodInstruments[key]; ok && !c.HasInstruments() {
		out = append(out, models.Suggestion{
			Type:    models.SuggestInstruments,
			Message: fmt.Sprintf("Instruments that work well for %s music:", mood),
			Options: lo.Slice(options, 0, maxInstrumentOptions),
		})
	}
	return out
}

func (e *Engine) decadeSuggestions(decade string, c models.ComponentSet) []models.Suggestion {
	var out []models.Suggestion
	if options, ok := e.tables.DecadeInstruments[decade]; ok && !c.HasInstruments() {
		out = append(out, models.Suggestion{
			Type:    models.SuggestInstruments,
			Message: fmt.Sprintf("Instruments common in %s music:", decade),
			Options: lo.Slice(options, 0, maxInstrumentOptions),
		})
	}
	if options, ok := e.tables.DecadeGenres[decade]; ok && strings.TrimSpace(c.Genre) == "" {
		out = append(out, models.Suggestion{
			Type:    models.SuggestGenre,
			Message: fmt.Sprintf("Popular genres from the %s:", decade),
			Options: lo.Slice(options, 0, maxGenreOptions),
		})
	}
	return out
}

// RecommendTemplates returns genre matches, then mood matches, then the
// popular templates, without repeats and capped at three.
func (e *Engine) RecommendTemplates(c models.ComponentSet) []models.Template {
	matches := e.tax.TemplatesByGenre(c.Genre)
	if len(matches) < maxTemplates {
		matches = appendNewTemplates(matches, e.tax.TemplatesByMood(c.Mood))
	}
	if len(matches) < maxTemplates {
		matches = appendNewTemplates(matches, e.tax.PopularTemplates())
	}
	return lo.Slice(matches, 0, maxTemplates)
}

// appendNewTemplates appends the templates of more whose id is not in dst yet.
func appendNewTemplates(dst, more []models.Template) []models.Template {
	seen := lo.SliceToMap(dst, func(tpl models.Template) (string, bool) { return tpl.ID, true })
	for _, tpl := range more {
		if seen[tpl.ID] {
			continue
		}
		seen[tpl.ID] = true
		dst = append(dst, tpl)
	}
	return dst
}

// Ideas returns up to three creative ideas. A genre is required. The
// wildcard is drawn on every call but comes last, so it only survives the
// cap when fewer than three table ideas apply.
func (e *Engine) Ideas(c models.ComponentSet) []models.CreativeIdea {
	genre := strings.ToUpper(strings.TrimSpace(c.Genre))
	if genre == "" {
		return []models.CreativeIdea{}
	}

	var ideas []models.CreativeIdea
	if examples, ok := e.tables.GenreFusions[genre]; ok {
		ideas = append(ideas, models.CreativeIdea{
			Type:        models.IdeaFusion,
			Title:       "Genre Fusion",
			Description: "Try combining genres for a unique sound",
			Examples:    lo.Slice(examples, 0, maxIdeaExamples),
		})
	}
	if examples, ok := e.tables.UniqueInstrumentations[genre]; ok {
		ideas = append(ideas, models.CreativeIdea{
			Type:        models.IdeaInstrumentation,
			Title:       "Unique Instrumentation",
			Description: "Add unexpected elements to your composition",
			Examples:    lo.Slice(examples, 0, maxIdeaExamples),
		})
	}
	if contrast, ok := e.contrastFor(c.Mood); ok {
		ideas = append(ideas, models.CreativeIdea{
			Type:        models.IdeaContrast,
			Title:       "Emotional Contrast",
			Description: "Create interest with contrasting emotions",
			Examples:    lo.Slice(contrast.Ideas, 0, maxIdeaExamples),
		})
	}
	if examples, ok := e.tables.DecadeIdeas[strings.TrimSpace(c.Decade)]; ok {
		ideas = append(ideas, models.CreativeIdea{
			Type:        models.IdeaTimeFusion,
			Title:       "Time Fusion",
			Description: "Blend elements from different eras",
			Examples:    examples,
		})
	}
	if wildcard, ok := e.wildcard(); ok {
		ideas = append(ideas, models.CreativeIdea{
			Type:        models.IdeaWildcard,
			Title:       "Creative Wildcard",
			Description: "Try something unexpected and unique",
			Examples:    []string{wildcard},
		})
	}

	return lo.Slice(ideas, 0, maxIdeas)
}

// contrastFor finds the first mood family whose name occurs in mood.
func (e *Engine) contrastFor(mood string) (taxonomy.MoodContrast, bool) {
	lowered := strings.ToLower(strings.TrimSpace(mood))
	if lowered == "" {
		return taxonomy.MoodContrast{}, false
	}
	return lo.Find(e.tables.MoodContrasts, func(mc taxonomy.MoodContrast) bool {
		return strings.Contains(lowered, strings.ToLower(mc.Mood))
	})
}

func (e *Engine) wildcard() (string, bool) {
	if len(e.tables.Wildcards) == 0 {
		return "", false
	}
	e.mu.Lock()
	i := e.rng.Intn(len(e.tables.Wildcards))
	e.mu.Unlock()
	return e.tables.Wildcards[i], true
}
