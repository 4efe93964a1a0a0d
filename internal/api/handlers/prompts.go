package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/api/middleware"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/logger"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/metrics"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/prompt"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/services"
	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	engine  *prompt.Engine
	history *services.HistoryService
	cw      *metrics.Client
	sentry  *metrics.SentryMetrics
}

func NewPromptHandler(engine *prompt.Engine, history *services.HistoryService, cw *metrics.Client) *PromptHandler {
	return &PromptHandler{
		engine:  engine,
		history: history,
		cw:      cw,
		sentry:  metrics.NewSentryMetrics(),
	}
}

type TextRequest struct {
	Text string `json:"text"`
}

type ProcessRequest struct {
	Text string `json:"text"`
	Save bool   `json:"save"`
}

type PromptRequest struct {
	Prompt string `json:"prompt"`
}

type ComponentsRequest struct {
	Components models.ComponentSet `json:"components"`
}

// Extract turns free text into a component set
func (h *PromptHandler) Extract(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	components := h.engine.ExtractComponents(req.Text)
	h.cw.RecordExtraction(prompt.CountFields(components))

	c.JSON(http.StatusOK, gin.H{"components": components})
}

// Optimize formats a component set into a prompt
func (h *PromptHandler) Optimize(c *gin.Context) {
	var req ComponentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	formatted := h.engine.OptimizePrompt(req.Components)
	c.JSON(http.StatusOK, gin.H{
		"prompt":     formatted,
		"export_url": h.engine.ExportURL(formatted),
	})
}

// Process runs the whole text to prompt pipeline and optionally keeps the
// result in the caller's history.
func (h *PromptHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	result := h.engine.Process(ctx, req.Text)
	h.cw.RecordExtraction(prompt.CountFields(result.Components))
	h.recordValidation(c, result.Validation)

	response := gin.H{"result": result}
	if req.Save && result.Prompt != "" {
		entry, err := h.history.SaveToHistory(ctx, middleware.OwnerID(c), result.Prompt, result.Components)
		if err != nil {
			logger.Error("Failed to save prompt to history", err, logger.WithContext(c))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save history"})
			return
		}
		response["history_id"] = entry.ID
	}

	c.JSON(http.StatusOK, response)
}

// Validate scores a prompt and explains the deductions
func (h *PromptHandler) Validate(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result := h.engine.ValidatePrompt(req.Prompt)
	h.recordValidation(c, result)

	c.JSON(http.StatusOK, result)
}

// Analyze breaks a prompt into classified segments and lists missing components
func (h *PromptHandler) Analyze(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"structure": h.engine.AnalyzeStructure(req.Prompt),
		"missing":   h.engine.CheckMissingComponents(req.Prompt),
	})
}

func (h *PromptHandler) Improvements(c *gin.Context) {
	var req ComponentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.engine.ImprovementSuggestions(req.Components))
}

// Export builds the generator link for a finished prompt
func (h *PromptHandler) Export(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prompt":     req.Prompt,
		"export_url": h.engine.ExportURL(req.Prompt),
	})
}

func (h *PromptHandler) recordValidation(c *gin.Context, result models.ValidationResult) {
	h.sentry.RecordValidation(c.Request.Context(), result.Score, result.IsValid)
	h.cw.RecordValidationScore(result.Score, result.IsValid)
}
