package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/api/middleware"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/logger"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/services"
	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	history *services.HistoryService
}

func NewHistoryHandler(history *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type SavePromptRequest struct {
	Prompt     string              `json:"prompt"`
	Components models.ComponentSet `json:"components"`
}

// GetHistory returns paginated history, newest first
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := queryInt(c, "page_size", defaultHistoryPageSize)
	if pageSize < 1 {
		pageSize = defaultHistoryPageSize
	}
	if pageSize > maxHistoryPageSize {
		pageSize = maxHistoryPageSize
	}

	entries, totalCount, err := h.history.GetHistoryPage(c.Request.Context(), middleware.OwnerID(c), page, pageSize)
	if err != nil {
		logger.Error("Failed to get history", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total_count": totalCount,
			"total_pages": (totalCount + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

func (h *HistoryHandler) SaveHistory(c *gin.Context) {
	var req SavePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	entry, err := h.history.SaveToHistory(c.Request.Context(), middleware.OwnerID(c), req.Prompt, req.Components)
	if err != nil {
		h.fail(c, "Failed to save history", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetInsights summarizes the caller's history and favorites
func (h *HistoryHandler) GetInsights(c *gin.Context) {
	insights, err := h.history.Insights(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.fail(c, "Failed to get insights", err)
		return
	}
	c.JSON(http.StatusOK, insights)
}

func (h *HistoryHandler) GetHistoryItem(c *gin.Context) {
	entry, err := h.history.GetHistoryItem(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to get history entry", err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	removed, err := h.history.ClearHistory(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.fail(c, "Failed to clear history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

func (h *HistoryHandler) GetFavorites(c *gin.Context) {
	favorites, err := h.history.GetFavorites(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.fail(c, "Failed to get favorites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "count": len(favorites)})
}

// AddFavorite answers 201 for a new favorite and 200 when the prompt was
// already pinned.
func (h *HistoryHandler) AddFavorite(c *gin.Context) {
	var req SavePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	favorite, created, err := h.history.AddToFavorites(c.Request.Context(), middleware.OwnerID(c), req.Prompt, req.Components)
	if err != nil {
		h.fail(c, "Failed to save favorite", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, favorite)
}

func (h *HistoryHandler) CheckFavorite(c *gin.Context) {
	isFavorite, err := h.history.IsInFavorites(c.Request.Context(), middleware.OwnerID(c), c.Query("prompt"))
	if err != nil {
		h.fail(c, "Failed to check favorites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}

func (h *HistoryHandler) UpdateFavorite(c *gin.Context) {
	var req SavePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	favorite, err := h.history.UpdateFavorite(c.Request.Context(), middleware.OwnerID(c), c.Param("id"), req.Prompt, req.Components)
	if err != nil {
		h.fail(c, "Failed to update favorite", err)
		return
	}
	c.JSON(http.StatusOK, favorite)
}

func (h *HistoryHandler) RemoveFavorite(c *gin.Context) {
	if err := h.history.RemoveFromFavorites(c.Request.Context(), middleware.OwnerID(c), c.Param("id")); err != nil {
		h.fail(c, "Failed to remove favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

// fail maps service errors onto HTTP status codes.
func (h *HistoryHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		logger.Error(msg, err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return value
}
