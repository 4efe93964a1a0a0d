package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/samber/lo"
)

const (
	maxDistributionItems = 5

	// the genre-diversity tip needs a history this long with at most this
	// many distinct genres
	diversityMinPrompts = 5
	diversityMaxGenres  = 2

	templatesMinPrompts = 3
	favoritesMinPrompts = 5
)

const (
	InsightGenreDiversity = "genre-diversity"
	InsightTemplates      = "templates"
	InsightFavorites      = "favorites"
)

// neighbourGenres are the genres proposed to an owner stuck on one genre.
var neighbourGenres = map[string][]string{
	"POP":        {"ELECTRONIC", "R&B"},
	"ROCK":       {"METAL", "FOLK"},
	"HIP HOP":    {"R&B", "ELECTRONIC"},
	"ELECTRONIC": {"AMBIENT", "POP"},
	"JAZZ":       {"BLUES", "CLASSICAL"},
}

var defaultNeighbourGenres = []string{"JAZZ", "ELECTRONIC"}

// Insights summarizes the owner's kept history: totals, last activity, the
// five most frequent genres and moods, and personalized tips.
func (s *HistoryService) Insights(ctx context.Context, ownerID string) (*models.UserInsights, error) {
	entries, err := s.GetHistory(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}

	var favorites int64
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("owner_id = ?", ownerID).
		Count(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	genres := lo.CountValues(lo.FilterMap(entries, func(e models.HistoryEntry, _ int) (string, bool) {
		genre := strings.ToUpper(strings.TrimSpace(e.Components.Genre))
		return genre, genre != ""
	}))
	moods := lo.CountValues(lo.FilterMap(entries, func(e models.HistoryEntry, _ int) (string, bool) {
		mood := strings.TrimSpace(e.Components.Mood)
		return mood, mood != ""
	}))

	insights := &models.UserInsights{
		TotalPrompts:      len(entries),
		TotalFavorites:    favorites,
		UniqueGenres:      len(genres),
		UniqueMoods:       len(moods),
		GenreDistribution: topFrequencies(genres),
		MoodDistribution:  topFrequencies(moods),
	}
	if len(entries) > 0 {
		last := entries[0].CreatedAt
		insights.LastActivity = &last
	}
	insights.Suggestions = insightSuggestions(insights)
	return insights, nil
}

// topFrequencies orders counts by frequency, then name, and keeps the top five.
func topFrequencies(counts map[string]int) []models.FrequencyItem {
	items := lo.MapToSlice(counts, func(name string, count int) models.FrequencyItem {
		return models.FrequencyItem{Name: name, Count: count}
	})
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	return lo.Slice(items, 0, maxDistributionItems)
}

func insightSuggestions(in *models.UserInsights) []models.InsightSuggestion {
	out := []models.InsightSuggestion{}

	if in.UniqueGenres <= diversityMaxGenres && in.TotalPrompts >= diversityMinPrompts && len(in.GenreDistribution) > 0 {
		top := in.GenreDistribution[0].Name
		neighbours, ok := neighbourGenres[top]
		if !ok {
			neighbours = defaultNeighbourGenres
		}
		out = append(out, models.InsightSuggestion{
			Type:  InsightGenreDiversity,
			Title: "Explore New Genres",
			Text: fmt.Sprintf("You've been creating a lot of %s. Try exploring %s for fresh inspiration.",
				top, strings.Join(neighbours, " or ")),
		})
	}

	if in.TotalPrompts >= templatesMinPrompts {
		out = append(out, models.InsightSuggestion{
			Type:  InsightTemplates,
			Title: "Try Templates",
			Text:  "Try using our template gallery to discover new music styles and combinations.",
		})
	}

	if in.TotalPrompts >= favoritesMinPrompts && in.TotalFavorites == 0 {
		out = append(out, models.InsightSuggestion{
			Type:  InsightFavorites,
			Title: "Save Your Favorites",
			Text:  "Star your favorite prompts to build a collection of go-to starting points.",
		})
	}

	return out
}
