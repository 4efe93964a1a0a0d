// Package prompt bundles extraction, formatting, validation and suggestions
// behind one facade shared by the HTTP API and the CLI.
package prompt

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/extractor"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/formatter"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/logger"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/matcher"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/suggestions"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/validator"
)

// EngineConfig tunes the parts of the engine that are not table driven.
type EngineConfig struct {
	ExportBaseURL string
	// RandomSeed fixes wildcard picks; 0 seeds from the clock.
	RandomSeed int64
}

// Engine is safe for concurrent use.
type Engine struct {
	tax         *taxonomy.Taxonomy
	extractor   *extractor.Extractor
	validator   *validator.Validator
	suggestions *suggestions.Engine
	exportBase  string
}

// ProcessResult is the output of the full text-to-prompt pipeline.
type ProcessResult struct {
	Input      string                  `json:"input"`
	Components models.ComponentSet     `json:"components"`
	Prompt     string                  `json:"prompt"`
	Validation models.ValidationResult `json:"validation"`
	ExportURL  string                  `json:"export_url"`
}

func NewEngine(tax *taxonomy.Taxonomy, cfg EngineConfig) *Engine {
	m := matcher.New(tax)

	var ideas *suggestions.Engine
	if cfg.RandomSeed != 0 {
		ideas = suggestions.NewSeeded(tax, cfg.RandomSeed)
	} else {
		ideas = suggestions.New(tax, nil)
	}

	return &Engine{
		tax:         tax,
		extractor:   extractor.New(m),
		validator:   validator.New(tax, m),
		suggestions: ideas,
		exportBase:  cfg.ExportBaseURL,
	}
}

// Taxonomy exposes the loaded tables for template and category lookups.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy {
	return e.tax
}

func (e *Engine) ExtractComponents(text string) models.ComponentSet {
	return e.extractor.Extract(text)
}

func (e *Engine) OptimizePrompt(c models.ComponentSet) string {
	return formatter.Format(c)
}

func (e *Engine) ValidatePrompt(prompt string) models.ValidationResult {
	return e.validator.Validate(prompt)
}

func (e *Engine) ImprovementSuggestions(c models.ComponentSet) models.ImprovementReport {
	return e.validator.ImprovementSuggestions(c)
}

func (e *Engine) GenerateSuggestions(c models.ComponentSet) models.SuggestionResult {
	return e.suggestions.Suggest(c)
}

func (e *Engine) GenerateCreativeIdeas(c models.ComponentSet) []models.CreativeIdea {
	return e.suggestions.Ideas(c)
}

func (e *Engine) AnalyzeStructure(prompt string) []models.StructureSegment {
	return e.validator.AnalyzeStructure(prompt)
}

func (e *Engine) CheckMissingComponents(prompt string) models.MissingComponents {
	return e.validator.CheckMissingComponents(prompt)
}

// ExportURL builds the generator link for prompt.
func (e *Engine) ExportURL(prompt string) string {
	return BuildExportURL(e.exportBase, prompt)
}

// Process runs extract, format and validate over text and builds the export
// link. Each stage is logged with its duration.
func (e *Engine) Process(ctx context.Context, text string) ProcessResult {
	start := time.Now()
	components := e.ExtractComponents(text)
	logger.LogPipeline(ctx, "extract", time.Since(start), logger.Fields{
		"fields_matched": CountFields(components),
	})

	start = time.Now()
	formatted := e.OptimizePrompt(components)
	logger.LogPipeline(ctx, "format", time.Since(start), logger.Fields{
		"prompt_length": len(formatted),
	})

	start = time.Now()
	validation := e.ValidatePrompt(formatted)
	logger.LogPipeline(ctx, "validate", time.Since(start), logger.Fields{
		"score": validation.Score,
		"valid": validation.IsValid,
	})

	return ProcessResult{
		Input:      text,
		Components: components,
		Prompt:     formatted,
		Validation: validation,
		ExportURL:  e.ExportURL(formatted),
	}
}

// CountFields reports how many fields of c carry a value. Instruments count
// once however many are listed.
func CountFields(c models.ComponentSet) int {
	n := 0
	for _, v := range []string{c.Genre, c.Mood, c.Tempo, c.Decade, c.Region, c.Vocals, c.Structure, c.Descriptors, c.Description} {
		if v != "" {
			n++
		}
	}
	if c.HasInstruments() {
		n++
	}
	return n
}
