package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/prompt"
	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	engine *prompt.Engine
}

func NewSuggestionHandler(engine *prompt.Engine) *SuggestionHandler {
	return &SuggestionHandler{engine: engine}
}

// Suggest returns follow-up suggestions and recommended templates
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var req ComponentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.engine.GenerateSuggestions(req.Components))
}

// Ideas returns creative directions for the given components
func (h *SuggestionHandler) Ideas(c *gin.Context) {
	var req ComponentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ideas": h.engine.GenerateCreativeIdeas(req.Components)})
}
