package models

// SuggestionType names the component field a suggestion would fill.
type SuggestionType string

const (
	SuggestInstruments SuggestionType = "instruments"
	SuggestTempo       SuggestionType = "tempo"
	SuggestStructure   SuggestionType = "structure"
	SuggestDescriptors SuggestionType = "descriptors"
	SuggestGenre       SuggestionType = "genre"
)

type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Message string         `json:"message"`
	Options []string       `json:"options"`
}

// IdeaType names the kind of creative idea.
type IdeaType string

const (
	IdeaFusion          IdeaType = "fusion"
	IdeaInstrumentation IdeaType = "instrumentation"
	IdeaContrast        IdeaType = "contrast"
	IdeaTimeFusion      IdeaType = "timeFusion"
	IdeaWildcard        IdeaType = "wildcard"
)

type CreativeIdea struct {
	Type        IdeaType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// Template is a ready-made component set from the gallery.
type Template struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Components  ComponentSet `json:"components" yaml:"components"`
	Example     string       `json:"example" yaml:"example"`
}

type SuggestionResult struct {
	Suggestions          []Suggestion `json:"suggestions"`
	RecommendedTemplates []Template   `json:"recommended_templates"`
}
