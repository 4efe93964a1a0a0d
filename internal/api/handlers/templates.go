package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/prompt"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type TemplateHandler struct {
	engine *prompt.Engine
}

func NewTemplateHandler(engine *prompt.Engine) *TemplateHandler {
	return &TemplateHandler{engine: engine}
}

// ListTemplates returns the gallery, optionally filtered by genre and mood.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	tax := h.engine.Taxonomy()
	genre := c.Query("genre")
	mood := c.Query("mood")

	var templates []models.Template
	switch {
	case genre != "" && mood != "":
		byMood := lo.SliceToMap(tax.TemplatesByMood(mood), func(t models.Template) (string, bool) { return t.ID, true })
		templates = lo.Filter(tax.TemplatesByGenre(genre), func(t models.Template, _ int) bool { return byMood[t.ID] })
	case genre != "":
		templates = tax.TemplatesByGenre(genre)
	case mood != "":
		templates = tax.TemplatesByMood(mood)
	default:
		templates = tax.Templates()
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"count":     len(templates),
	})
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tpl, ok := h.engine.Taxonomy().TemplateByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"template":   tpl,
		"export_url": h.engine.ExportURL(tpl.Example),
	})
}

// GetCategory lists the canonical names of one vocabulary table for pickers.
func (h *TemplateHandler) GetCategory(c *gin.Context) {
	cat, ok := taxonomy.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "Unknown category",
			"categories": taxonomy.AllCategories,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": cat,
		"names":    h.engine.Taxonomy().Names(cat),
	})
}
