// Package validator scores formatted prompts against the generator's
// formatting guidelines and reports what a component set is missing.
//
// Scoring is a heuristic lint: it starts at 100 and deducts a fixed penalty
// per finding. The penalty values are part of the API contract.
package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/extractor"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/matcher"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/textutil"
	"github.com/samber/lo"
)

const (
	maxScore       = 100
	validThreshold = 70

	penaltySingleComponent   = 20
	penaltyTwoComponents     = 10
	penaltyGenreCase         = 15
	penaltyUnknownGenre      = 10
	penaltyMoodCase          = 10
	penaltyUnknownMood       = 5
	penaltyInstrumentCase    = 5
	penaltyNoInstruments     = 5
	penaltyNoDecade          = 10
	penaltyTooShort          = 15
	penaltyTooLong           = 10
	penaltyTooManyCommas     = 5
	penaltyRepeatedWords     = 5
	minPromptLength          = 15
	maxPromptLength          = 200
	maxCommas                = 8
	minRepeatedWordLength    = 4
	maxSuggestions           = 3
	shortDescriptionLength   = 10
	mediumDescriptionLength  = 30
	formatRecommendation     = "GENRE, Mood, tempo, instruments, decade, additional description"
	suggestionStartWithGenre = "Start with a genre in ALL CAPS (e.g., POP, ROCK, HIP HOP)"
	suggestionAddMood        = "Add a mood or emotion in Title Case"
	suggestionGuidelines     = "Review the prompt guidelines: GENRE, Mood, tempo, instruments, decade"
)

var instrumentKeywords = []string{
	"guitar", "piano", "drums", "bass", "synth", "violin", "trumpet", "sax",
	"flute", "cello", "harp", "organ", "percussion", "keyboard", "orchestra",
	"choir", "ensemble", "strings", "808",
}

var (
	decadeReference = regexp.MustCompile(`\b(?:\d{4}s?|\d{2}s|century|era)\b`)
	wordSeparators  = regexp.MustCompile(`[\s,]+`)
)

// Validator is read-only after New and safe for concurrent use.
type Validator struct {
	tax       *taxonomy.Taxonomy
	matcher   *matcher.Matcher
	extractor *extractor.Extractor
}

func New(tax *taxonomy.Taxonomy, m *matcher.Matcher) *Validator {
	return &Validator{tax: tax, matcher: m, extractor: extractor.New(m)}
}

type report struct {
	score       int
	feedback    []models.FeedbackItem
	suggestions []string
}

func (r *report) add(penalty int, kind models.FeedbackType, message string, suggestion ...string) {
	r.score -= penalty
	r.feedback = append(r.feedback, models.FeedbackItem{Type: kind, Message: message})
	r.suggestions = append(r.suggestions, suggestion...)
}

// Validate lints a formatted prompt. It never fails: an empty prompt gets a
// fixed zero-score result.
func (v *Validator) Validate(prompt string) models.ValidationResult {
	if strings.TrimSpace(prompt) == "" {
		return models.ValidationResult{
			IsValid:     false,
			Score:       0,
			Feedback:    []models.FeedbackItem{{Type: models.FeedbackError, Message: "Prompt cannot be empty"}},
			Suggestions: []string{suggestionStartWithGenre, suggestionAddMood},
		}
	}

	components := splitComponents(prompt)
	r := &report{score: maxScore}

	switch len(components) {
	case 1:
		r.add(penaltySingleComponent, models.FeedbackWarning,
			"Prompt is very basic. Consider adding more descriptive elements.",
			"Add more components separated by commas")
	case 2:
		r.add(penaltyTwoComponents, models.FeedbackWarning,
			"Prompt has few components",
			"Add more elements separated by commas (genre, mood, instruments, etc.)")
	}

	v.checkGenre(r, components[0])
	if len(components) > 1 {
		v.checkMood(r, components[1])
	}
	checkInstruments(r, components)

	if !v.hasDecadeReference(prompt) {
		r.add(penaltyNoDecade, models.FeedbackWarning,
			"No decade or era reference found",
			"Consider adding a decade or era reference (e.g., 1980s, 2010s)")
	}

	switch length := len(prompt); {
	case length < minPromptLength:
		r.add(penaltyTooShort, models.FeedbackWarning,
			"Prompt is too short and may not generate good results",
			"Add more descriptive elements to your prompt")
	case length > maxPromptLength:
		r.add(penaltyTooLong, models.FeedbackWarning,
			"Prompt is very long. Concise prompts work best.",
			"Consider shortening your prompt to be more concise")
	}

	if strings.Count(prompt, ",") > maxCommas {
		r.add(penaltyTooManyCommas, models.FeedbackWarning,
			"Prompt has too many commas. Consider consolidating similar ideas.")
	}

	if repeated := repeatedWords(prompt); len(repeated) > 0 {
		r.add(penaltyRepeatedWords, models.FeedbackWarning,
			"Repeated words: "+strings.Join(repeated, ", "),
			"Avoid repeating the same words in your prompt")
	}

	if r.score < validThreshold {
		r.suggestions = append(r.suggestions, suggestionGuidelines)
	}

	score := lo.Clamp(r.score, 0, maxScore)
	suggestions := lo.Uniq(r.suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	if r.feedback == nil {
		r.feedback = []models.FeedbackItem{}
	}

	return models.ValidationResult{
		IsValid:     score >= validThreshold,
		Score:       score,
		Feedback:    r.feedback,
		Suggestions: suggestions,
	}
}

func (v *Validator) checkGenre(r *report, first string) {
	if _, ok := v.tax.Find(taxonomy.Genres, first); !ok {
		r.add(penaltyUnknownGenre, models.FeedbackWarning,
			"First component is not a recognized genre",
			suggestionStartWithGenre)
		return
	}
	if !textutil.IsUpper(first) {
		r.add(penaltyGenreCase, models.FeedbackError,
			"Genre should be in ALL CAPS",
			fmt.Sprintf("Change %q to %q", first, strings.ToUpper(first)))
	}
}

func (v *Validator) checkMood(r *report, second string) {
	if _, ok := v.tax.FindLoose(taxonomy.Moods, second); !ok {
		r.add(penaltyUnknownMood, models.FeedbackInfo,
			"Second component is not a recognized mood",
			"Consider adding a mood descriptor in Title Case as the second component")
		return
	}
	if !textutil.IsTitleCase(second) {
		r.add(penaltyMoodCase, models.FeedbackError,
			"Mood should be in Title Case",
			fmt.Sprintf("Change %q to %q", second, textutil.TitleCase(second)))
	}
}

func checkInstruments(r *report, components []string) {
	if len(components) < 2 {
		return
	}
	found := false
	for _, component := range components[2:] {
		if !containsInstrument(component) {
			continue
		}
		found = true
		if !textutil.IsLower(component) {
			r.add(penaltyInstrumentCase, models.FeedbackWarning,
				fmt.Sprintf("Component %q contains instruments and should be lowercase", component),
				fmt.Sprintf("Change %q to %q", component, strings.ToLower(component)))
		}
	}
	if !found {
		r.add(penaltyNoInstruments, models.FeedbackInfo,
			"No specific instruments detected",
			"Add specific instruments for better results (e.g., guitar, piano, drums)")
	}
}

func containsInstrument(component string) bool {
	lowered := strings.ToLower(component)
	return lo.SomeBy(instrumentKeywords, func(keyword string) bool {
		return strings.Contains(lowered, keyword)
	})
}

func (v *Validator) hasDecadeReference(prompt string) bool {
	normalized := textutil.Normalize(prompt)
	if decadeReference.MatchString(normalized) {
		return true
	}
	_, ok := v.matcher.Match(normalized, taxonomy.Decades)
	return ok
}

// repeatedWords lists words of four or more characters used more than once,
// sorted.
func repeatedWords(prompt string) []string {
	counts := make(map[string]int)
	for _, word := range wordSeparators.Split(strings.ToLower(prompt), -1) {
		if len(word) >= minRepeatedWordLength {
			counts[word]++
		}
	}
	repeated := lo.Keys(lo.PickBy(counts, func(_ string, n int) bool { return n > 1 }))
	sort.Strings(repeated)
	return repeated
}

// splitComponents splits on commas and trims. Empty segments are kept so
// positions stay aligned with what the user wrote.
func splitComponents(prompt string) []string {
	return lo.Map(strings.Split(prompt, ","), func(c string, _ int) string {
		return strings.TrimSpace(c)
	})
}

// ImprovementSuggestions scores how complete a component set is and lists
// what to add next.
func (v *Validator) ImprovementSuggestions(c models.ComponentSet) models.ImprovementReport {
	var suggestions []models.Improvement
	add := func(kind models.ImprovementType, component, message string, examples ...string) {
		suggestions = append(suggestions, models.Improvement{
			Type: kind, Component: component, Message: message, Examples: examples,
		})
	}

	hasGenre := strings.TrimSpace(c.Genre) != ""
	hasMood := strings.TrimSpace(c.Mood) != ""
	hasTempo := strings.TrimSpace(c.Tempo) != ""
	hasInstruments := c.HasInstruments()
	hasDecade := strings.TrimSpace(c.Decade) != ""
	description := strings.TrimSpace(c.Description)

	if !hasGenre {
		add(models.ImprovementEssential, "genre", "Add a genre to your prompt",
			"POP", "ROCK", "HIP HOP", "ELECTRONIC")
	}
	if !hasMood {
		add(models.ImprovementEssential, "mood", "Add a mood or emotion to your prompt",
			"Upbeat", "Melancholic", "Energetic", "Peaceful")
	}
	if !hasInstruments {
		add(models.ImprovementEnhancement, "instruments", "Specify instruments to get more accurate sound",
			"piano, guitar", "synth bass, drums", "violin, cello")
	}
	if !hasTempo {
		add(models.ImprovementEnhancement, "tempo", "Add tempo information for better rhythm",
			"slow", "medium", "fast", "120 BPM")
	}
	if !hasDecade {
		add(models.ImprovementStyle, "decade", "Add a decade or era for historical style",
			"1980s", "1990s", "2000s")
	}
	if len(description) < shortDescriptionLength {
		add(models.ImprovementDetail, "description", "Add more descriptive elements to your prompt",
			"with driving rhythm", "featuring lush harmonies", "with a catchy chorus")
	}

	score := 0
	for _, part := range []struct {
		present bool
		points  int
	}{
		{hasGenre, 30},
		{hasMood, 20},
		{hasTempo, 15},
		{hasInstruments, 15},
		{hasDecade, 10},
	} {
		if part.present {
			score += part.points
		}
	}
	switch {
	case description == "":
	case len(description) < shortDescriptionLength:
		score += 5
	case len(description) < mediumDescriptionLength:
		score += 10
	default:
		score += 15
	}
	if hasGenre && hasMood && hasTempo && hasInstruments && hasDecade {
		score += 5
	}

	if suggestions == nil {
		suggestions = []models.Improvement{}
	}
	return models.ImprovementReport{
		HasEssentialComponents: hasGenre && hasMood,
		ComponentsScore:        min(score, maxScore),
		FormatRecommendation:   formatRecommendation,
		Suggestions:            suggestions,
	}
}
