package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryEntry is a previously generated prompt, newest first per owner.
type HistoryEntry struct {
	ID         string       `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time    `gorm:"index" json:"created_at"`
	OwnerID    string       `gorm:"not null;index" json:"-"`
	Prompt     string       `gorm:"type:text;not null" json:"prompt"`
	Components ComponentSet `gorm:"serializer:json;type:text" json:"components"`
}

func (h *HistoryEntry) BeforeCreate(_ *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

// Favorite is a prompt the owner pinned; prompts are unique per owner.
type Favorite struct {
	ID         string       `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	OwnerID    string       `gorm:"not null;index" json:"-"`
	Prompt     string       `gorm:"type:text;not null" json:"prompt"`
	Components ComponentSet `gorm:"serializer:json;type:text" json:"components"`
}

func (f *Favorite) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// FrequencyItem is one value and how many history entries carry it.
type FrequencyItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// InsightSuggestion is a personalized tip derived from an owner's history.
type InsightSuggestion struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// UserInsights summarizes an owner's history and favorites. LastActivity is
// nil when the history is empty.
type UserInsights struct {
	TotalPrompts      int                 `json:"total_prompts"`
	TotalFavorites    int64               `json:"total_favorites"`
	UniqueGenres      int                 `json:"unique_genres"`
	UniqueMoods       int                 `json:"unique_moods"`
	LastActivity      *time.Time          `json:"last_activity"`
	GenreDistribution []FrequencyItem     `json:"genre_distribution"`
	MoodDistribution  []FrequencyItem     `json:"mood_distribution"`
	Suggestions       []InsightSuggestion `json:"suggestions"`
}
