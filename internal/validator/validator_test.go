package validator

import (
	"strings"
	"testing"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/extractor"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/formatter"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/matcher"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) (*Validator, *taxonomy.Taxonomy, *matcher.Matcher) {
	t.Helper()
	tax, err := taxonomy.LoadEmbedded()
	require.NoError(t, err)
	m := matcher.New(tax)
	return New(tax, m), tax, m
}

func hasFeedback(result models.ValidationResult, kind models.FeedbackType, fragment string) bool {
	for _, item := range result.Feedback {
		if item.Type == kind && strings.Contains(item.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidateEmptyPrompt(t *testing.T) {
	v, _, _ := newValidator(t)

	for _, prompt := range []string{"", "   "} {
		got := v.Validate(prompt)
		assert.False(t, got.IsValid)
		assert.Equal(t, 0, got.Score)
		require.Len(t, got.Feedback, 1)
		assert.Equal(t, models.FeedbackError, got.Feedback[0].Type)
		assert.Equal(t, "Prompt cannot be empty", got.Feedback[0].Message)
		assert.Len(t, got.Suggestions, 2)
	}
}

func TestValidateWellFormedPrompt(t *testing.T) {
	v, _, _ := newValidator(t)

	got := v.Validate("POP, Happy, fast, guitar, piano, 1980s")
	assert.True(t, got.IsValid)
	assert.Equal(t, 100, got.Score)
	assert.Empty(t, got.Feedback)
	assert.NotNil(t, got.Feedback)
	assert.Empty(t, got.Suggestions)
}

func TestValidateLowercaseGenre(t *testing.T) {
	v, _, _ := newValidator(t)

	got := v.Validate("pop, happy, fast, guitar, piano")
	assert.False(t, got.IsValid)
	assert.Equal(t, 65, got.Score)
	assert.True(t, hasFeedback(got, models.FeedbackError, "ALL CAPS"))
	assert.True(t, hasFeedback(got, models.FeedbackError, "Title Case"))
	assert.True(t, hasFeedback(got, models.FeedbackWarning, "decade"))
	assert.Contains(t, got.Suggestions, `Change "pop" to "POP"`)
	assert.LessOrEqual(t, len(got.Suggestions), 3)
}

func TestValidatePenalties(t *testing.T) {
	v, _, _ := newValidator(t)

	tests := []struct {
		name   string
		prompt string
		score  int
		kind   models.FeedbackType
		hint   string
	}{
		{"single component", "ROCK", 100 - 20 - 10 - 15, models.FeedbackWarning, "very basic"},
		{"two components", "ROCK, Energetic 1990s", 100 - 10 - 5 - 5, models.FeedbackWarning, "few components"},
		{"unknown genre", "VAPORCORE, Happy, guitar, 1980s", 90, models.FeedbackWarning, "not a recognized genre"},
		{"unknown mood", "ROCK, Stompy, guitar, 1980s", 95, models.FeedbackInfo, "not a recognized mood"},
		{"mood keyword counts as known", "ROCK, party, guitar, 1980s", 90, models.FeedbackError, "Title Case"},
		{"instrument casing", "ROCK, Happy, Electric Guitar, Drums, 1980s", 90, models.FeedbackWarning, "should be lowercase"},
		{"no instruments", "ROCK, Happy, fast, 1980s", 95, models.FeedbackInfo, "No specific instruments"},
		{"decade keyword counts", "ROCK, Happy, guitar, disco lights", 100, "", ""},
		{"era word counts", "CLASSICAL, Epic, strings, romantic era", 100, "", ""},
		{"repeated words", "ROCK, Happy, guitar solo, another guitar, 1980s", 95, models.FeedbackWarning, "Repeated words: guitar"},
		{"too many commas", "ROCK, Happy, fast, guitar, bass, drums, 1980s, warm, raw, loud", 95, models.FeedbackWarning, "too many commas"},
		{"too long", "ROCK, Happy, guitar, 1980s, " + strings.Repeat("x", 200), 90, models.FeedbackWarning, "very long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.prompt)
			assert.Equal(t, tt.score, got.Score, "feedback: %+v", got.Feedback)
			assert.Equal(t, tt.score >= 70, got.IsValid)
			if tt.hint != "" {
				assert.True(t, hasFeedback(got, tt.kind, tt.hint), "feedback: %+v", got.Feedback)
			}
		})
	}
}

func TestValidateCapsSuggestions(t *testing.T) {
	v, _, _ := newValidator(t)

	got := v.Validate("x")
	assert.Equal(t, 45, got.Score)
	assert.False(t, got.IsValid)
	assert.Len(t, got.Suggestions, 3)
}

func TestValidateTemplateExamples(t *testing.T) {
	v, tax, _ := newValidator(t)

	for _, tpl := range tax.Templates() {
		t.Run(tpl.ID, func(t *testing.T) {
			got := v.Validate(tpl.Example)
			assert.True(t, got.IsValid, "score %d, feedback %+v", got.Score, got.Feedback)
		})
	}
}

func TestValidityStableUnderRoundTrip(t *testing.T) {
	v, _, m := newValidator(t)
	e := extractor.New(m)

	for _, prompt := range []string{
		"POP, Happy, fast, guitar, piano, 1980s",
		"JAZZ, Relaxed, slow, saxophone, piano, 1950s, smoky lounge",
		"pop, happy, fast, guitar, piano",
	} {
		once := formatter.Format(e.Extract(prompt))
		twice := formatter.Format(e.Extract(once))
		assert.Equal(t, v.Validate(once).IsValid, v.Validate(twice).IsValid, prompt)
	}
}

func TestImprovementSuggestions(t *testing.T) {
	v, _, _ := newValidator(t)

	t.Run("empty set", func(t *testing.T) {
		got := v.ImprovementSuggestions(models.EmptyComponents())
		assert.False(t, got.HasEssentialComponents)
		assert.Equal(t, 0, got.ComponentsScore)
		assert.Equal(t, formatRecommendation, got.FormatRecommendation)
		assert.Len(t, got.Suggestions, 6)
		assert.Equal(t, models.ImprovementEssential, got.Suggestions[0].Type)
		assert.Equal(t, "genre", got.Suggestions[0].Component)
	})

	t.Run("complete set", func(t *testing.T) {
		got := v.ImprovementSuggestions(models.ComponentSet{
			Genre:       "ROCK",
			Mood:        "Energetic",
			Tempo:       "fast",
			Instruments: models.InstrumentList{"guitar"},
			Decade:      "1980s",
			Description: "with a soaring chorus and a long guitar solo",
		})
		assert.True(t, got.HasEssentialComponents)
		assert.Equal(t, 100, got.ComponentsScore)
		assert.Empty(t, got.Suggestions)
	})

	t.Run("description tiers", func(t *testing.T) {
		base := models.ComponentSet{Genre: "ROCK"}
		for desc, want := range map[string]int{"short": 35, "medium length text": 40, strings.Repeat("long ", 7): 45} {
			c := base
			c.Description = desc
			assert.Equal(t, want, v.ImprovementSuggestions(c).ComponentsScore, desc)
		}
	})
}

func TestAnalyzeStructure(t *testing.T) {
	v, _, _ := newValidator(t)

	got := v.AnalyzeStructure("POP, Happy, fast, guitar, 1980s, female vocals, Japanese, Catchy, Verse-Chorus")
	types := make([]models.SegmentType, 0, len(got))
	for _, segment := range got {
		types = append(types, segment.Type)
		assert.True(t, segment.IsFormatted, segment.Text)
	}
	assert.Equal(t, []models.SegmentType{
		models.SegmentGenre,
		models.SegmentMood,
		models.SegmentTempo,
		models.SegmentInstruments,
		models.SegmentDecade,
		models.SegmentVocals,
		models.SegmentRegion,
		models.SegmentDescriptor,
		models.SegmentStructure,
	}, types)

	badly := v.AnalyzeStructure("pop, happy, Guitar")
	require.Len(t, badly, 3)
	for _, segment := range badly {
		assert.False(t, segment.IsFormatted, segment.Text)
	}

	assert.Empty(t, v.AnalyzeStructure(""))
	assert.NotNil(t, v.AnalyzeStructure(""))
}

func TestCheckMissingComponents(t *testing.T) {
	v, _, _ := newValidator(t)

	empty := v.CheckMissingComponents("")
	assert.True(t, empty.Genre)
	assert.True(t, empty.Mood)
	assert.Equal(t, 5, empty.MissingCount)

	full := v.CheckMissingComponents("ROCK, Energetic, fast, guitar, 1980s")
	assert.Equal(t, models.MissingComponents{}, full)

	partial := v.CheckMissingComponents("JAZZ, piano")
	assert.False(t, partial.Genre)
	assert.False(t, partial.Instruments)
	assert.True(t, partial.Mood)
	assert.Equal(t, 3, partial.MissingCount)
}
