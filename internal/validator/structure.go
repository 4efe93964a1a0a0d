package validator

import (
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/textutil"
)

// AnalyzeStructure labels every non-empty comma-separated segment of prompt
// with the role it most likely plays and whether it is cased correctly.
func (v *Validator) AnalyzeStructure(prompt string) []models.StructureSegment {
	segments := []models.StructureSegment{}
	for i, text := range splitComponents(prompt) {
		if text == "" {
			continue
		}
		kind := v.classify(i, text)
		segments = append(segments, models.StructureSegment{
			Type:        kind,
			Text:        text,
			IsFormatted: isFormatted(kind, text),
		})
	}
	return segments
}

func (v *Validator) classify(position int, text string) models.SegmentType {
	if _, ok := v.tax.Find(taxonomy.Genres, text); ok && position == 0 {
		return models.SegmentGenre
	}
	if _, ok := v.tax.FindLoose(taxonomy.Moods, text); ok && position == 1 {
		return models.SegmentMood
	}

	normalized := textutil.Normalize(text)
	if _, ok := v.matcher.Match(normalized, taxonomy.Tempos); ok {
		return models.SegmentTempo
	}
	if _, ok := v.tax.Find(taxonomy.Decades, text); ok || decadeReference.MatchString(normalized) {
		return models.SegmentDecade
	}
	if len(v.matcher.MatchAll(normalized, taxonomy.Instruments)) > 0 || containsInstrument(text) {
		return models.SegmentInstruments
	}
	if _, ok := v.tax.Find(taxonomy.Regions, text); ok {
		return models.SegmentRegion
	}
	if _, ok := v.tax.Find(taxonomy.Vocals, text); ok {
		return models.SegmentVocals
	}
	if _, ok := v.tax.Find(taxonomy.Structures, text); ok {
		return models.SegmentStructure
	}
	return models.SegmentDescriptor
}

func isFormatted(kind models.SegmentType, text string) bool {
	switch kind {
	case models.SegmentGenre:
		return textutil.IsUpper(text)
	case models.SegmentMood, models.SegmentDescriptor:
		return textutil.IsTitleCase(text)
	case models.SegmentInstruments, models.SegmentVocals:
		return textutil.IsLower(text)
	default:
		return true
	}
}

// CheckMissingComponents runs extraction over prompt and flags which of the
// five core fields it lacks.
func (v *Validator) CheckMissingComponents(prompt string) models.MissingComponents {
	c := v.extractor.Extract(prompt)
	missing := models.MissingComponents{
		Genre:       strings.TrimSpace(c.Genre) == "",
		Mood:        strings.TrimSpace(c.Mood) == "",
		Tempo:       strings.TrimSpace(c.Tempo) == "",
		Instruments: !c.HasInstruments(),
		Decade:      strings.TrimSpace(c.Decade) == "",
	}
	for _, flag := range []bool{missing.Genre, missing.Mood, missing.Tempo, missing.Instruments, missing.Decade} {
		if flag {
			missing.MissingCount++
		}
	}
	return missing
}
