package models

// FeedbackType classifies a validation finding.
type FeedbackType string

const (
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

type FeedbackItem struct {
	Type    FeedbackType `json:"type"`
	Message string       `json:"message"`
}

// ValidationResult is recomputed on every validation call.
type ValidationResult struct {
	IsValid     bool           `json:"is_valid"`
	Score       int            `json:"score"`
	Feedback    []FeedbackItem `json:"feedback"`
	Suggestions []string       `json:"suggestions"`
}

// ImprovementType groups component-level advice by importance.
type ImprovementType string

const (
	ImprovementEssential   ImprovementType = "essential"
	ImprovementEnhancement ImprovementType = "enhancement"
	ImprovementStyle       ImprovementType = "style"
	ImprovementDetail      ImprovementType = "detail"
)

type Improvement struct {
	Type      ImprovementType `json:"type"`
	Component string          `json:"component"`
	Message   string          `json:"message"`
	Examples  []string        `json:"examples"`
}

type ImprovementReport struct {
	HasEssentialComponents bool          `json:"has_essential_components"`
	ComponentsScore        int           `json:"components_score"`
	FormatRecommendation   string        `json:"format_recommendation"`
	Suggestions            []Improvement `json:"suggestions"`
}

// SegmentType names the role a comma-separated prompt segment plays.
type SegmentType string

const (
	SegmentGenre       SegmentType = "genre"
	SegmentMood        SegmentType = "mood"
	SegmentTempo       SegmentType = "tempo"
	SegmentDecade      SegmentType = "decade"
	SegmentInstruments SegmentType = "instruments"
	SegmentRegion      SegmentType = "region"
	SegmentVocals      SegmentType = "vocals"
	SegmentStructure   SegmentType = "structure"
	SegmentDescriptor  SegmentType = "descriptor"
)

type StructureSegment struct {
	Type        SegmentType `json:"type"`
	Text        string      `json:"text"`
	IsFormatted bool        `json:"is_formatted"`
}

// MissingComponents flags the core fields absent from a prompt.
type MissingComponents struct {
	Genre        bool `json:"genre"`
	Mood         bool `json:"mood"`
	Tempo        bool `json:"tempo"`
	Instruments  bool `json:"instruments"`
	Decade       bool `json:"decade"`
	MissingCount int  `json:"missing_count"`
}
