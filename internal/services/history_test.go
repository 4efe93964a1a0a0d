package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/database"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, limit int) *HistoryService {
	t.Helper()
	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewHistoryService(db, limit)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func TestSaveToHistoryNewestFirst(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := context.Background()

	_, err := svc.SaveToHistory(ctx, "alice", "POP, Happy", models.ComponentSet{Genre: "POP", Mood: "Happy"})
	require.NoError(t, err)
	_, err = svc.SaveToHistory(ctx, "alice", "ROCK, Energetic", models.ComponentSet{Genre: "ROCK"})
	require.NoError(t, err)
	_, err = svc.SaveToHistory(ctx, "bob", "JAZZ", models.ComponentSet{Genre: "JAZZ"})
	require.NoError(t, err)

	entries, err := svc.GetHistory(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ROCK, Energetic", entries[0].Prompt)
	assert.Equal(t, "POP, Happy", entries[1].Prompt)
	assert.Equal(t, "POP", entries[1].Components.Genre)
	assert.NotEmpty(t, entries[0].ID)
}

func TestSaveToHistoryRejectsEmptyPrompt(t *testing.T) {
	svc := newTestService(t, 0)

	_, err := svc.SaveToHistory(context.Background(), "alice", "   ", models.EmptyComponents())
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestSaveToHistoryTrimsToLimit(t *testing.T) {
	svc := newTestService(t, 3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := svc.SaveToHistory(ctx, "alice", fmt.Sprintf("prompt %d", i), models.EmptyComponents())
		require.NoError(t, err)
	}

	entries, err := svc.GetHistory(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "prompt 5", entries[0].Prompt)
	assert.Equal(t, "prompt 3", entries[2].Prompt)
}

func TestGetHistoryPage(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := svc.SaveToHistory(ctx, "alice", fmt.Sprintf("prompt %d", i), models.EmptyComponents())
		require.NoError(t, err)
	}

	entries, total, err := svc.GetHistoryPage(ctx, "alice", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "prompt 3", entries[0].Prompt)
	assert.Equal(t, "prompt 2", entries[1].Prompt)

	entries, _, err = svc.GetHistoryPage(ctx, "alice", 4, 2)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetHistoryItemScopedToOwner(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := context.Background()

	entry, err := svc.SaveToHistory(ctx, "alice", "POP", models.EmptyComponents())
	require.NoError(t, err)

	got, err := svc.GetHistoryItem(ctx, "alice", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "POP", got.Prompt)

	_, err = svc.GetHistoryItem(ctx, "bob", entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearHistory(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := context.Background()

	for _, p := range []string{"a", "b"} {
		_, err := svc.SaveToHistory(ctx, "alice", p, models.EmptyComponents())
		require.NoError(t, err)
	}
	_, err := svc.SaveToHistory(ctx, "bob", "c", models.EmptyComponents())
	require.NoError(t, err)

	removed, err := svc.ClearHistory(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	entries, err := svc.GetHistory(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFavoritesLifecycle(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := context.Background()

	fav, created, err := svc.AddToFavorites(ctx, "alice", "JAZZ, Melancholic", models.ComponentSet{Genre: "JAZZ"})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.AddToFavorites(ctx, "alice", "JAZZ, Melancholic", models.EmptyComponents())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, fav.ID, again.ID)

	ok, err := svc.IsInFavorites(ctx, "alice", "JAZZ, Melancholic")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsInFavorites(ctx, "bob", "JAZZ, Melancholic")
	require.NoError(t, err)
	assert.False(t, ok)

	favorites, err := svc.GetFavorites(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	require.NoError(t, svc.RemoveFromFavorites(ctx, "alice", fav.ID))
	assert.ErrorIs(t, svc.RemoveFromFavorites(ctx, "alice", fav.ID), ErrNotFound)
}

func TestUpdateFavorite(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := context.Background()

	fav, _, err := svc.AddToFavorites(ctx, "alice", "POP, Happy", models.ComponentSet{Genre: "POP", Mood: "Happy"})
	require.NoError(t, err)

	updated, err := svc.UpdateFavorite(ctx, "alice", fav.ID, "", models.ComponentSet{Genre: "ROCK"})
	require.NoError(t, err)
	assert.Equal(t, fav.ID, updated.ID)
	assert.Equal(t, "POP, Happy", updated.Prompt)
	assert.Equal(t, "ROCK", updated.Components.Genre)
	assert.True(t, updated.UpdatedAt.After(fav.UpdatedAt))

	updated, err = svc.UpdateFavorite(ctx, "alice", fav.ID, "ROCK, Energetic", models.EmptyComponents())
	require.NoError(t, err)
	assert.Equal(t, "ROCK, Energetic", updated.Prompt)
	assert.Equal(t, "ROCK", updated.Components.Genre)

	_, err = svc.UpdateFavorite(ctx, "bob", fav.ID, "x", models.EmptyComponents())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsightsEmptyHistory(t *testing.T) {
	svc := newTestService(t, 0)

	got, err := svc.Insights(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, got.TotalPrompts)
	assert.Zero(t, got.TotalFavorites)
	assert.Nil(t, got.LastActivity)
	assert.Empty(t, got.GenreDistribution)
	assert.Empty(t, got.MoodDistribution)
	assert.NotNil(t, got.Suggestions)
	assert.Empty(t, got.Suggestions)
}

func TestInsights(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := context.Background()

	var last *models.HistoryEntry
	for _, c := range []models.ComponentSet{
		{Genre: "POP", Mood: "Happy"},
		{Genre: "pop", Mood: "Happy"},
		{Genre: "POP", Mood: "Sad"},
		{Genre: "ROCK", Mood: "Happy"},
		{Genre: "ROCK"},
	} {
		entry, err := svc.SaveToHistory(ctx, "alice", c.Genre+" "+c.Mood, c)
		require.NoError(t, err)
		last = entry
	}
	_, err := svc.SaveToHistory(ctx, "bob", "JAZZ", models.ComponentSet{Genre: "JAZZ"})
	require.NoError(t, err)

	got, err := svc.Insights(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 5, got.TotalPrompts)
	assert.Equal(t, 2, got.UniqueGenres)
	assert.Equal(t, 2, got.UniqueMoods)
	assert.Equal(t, []models.FrequencyItem{{Name: "POP", Count: 3}, {Name: "ROCK", Count: 2}}, got.GenreDistribution)
	assert.Equal(t, []models.FrequencyItem{{Name: "Happy", Count: 3}, {Name: "Sad", Count: 1}}, got.MoodDistribution)
	require.NotNil(t, got.LastActivity)
	assert.WithinDuration(t, last.CreatedAt, *got.LastActivity, time.Millisecond)

	types := func(in []models.InsightSuggestion) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			out = append(out, s.Type)
		}
		return out
	}
	assert.Equal(t, []string{InsightGenreDiversity, InsightTemplates, InsightFavorites}, types(got.Suggestions))
	assert.Contains(t, got.Suggestions[0].Text, "a lot of POP. Try exploring ELECTRONIC or R&B")

	_, _, err = svc.AddToFavorites(ctx, "alice", "POP Happy", models.ComponentSet{Genre: "POP"})
	require.NoError(t, err)

	got, err = svc.Insights(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalFavorites)
	assert.Equal(t, []string{InsightGenreDiversity, InsightTemplates}, types(got.Suggestions))
}

func TestInsightSuggestions(t *testing.T) {
	genres := func(names ...string) []models.FrequencyItem {
		out := make([]models.FrequencyItem, 0, len(names))
		for _, n := range names {
			out = append(out, models.FrequencyItem{Name: n, Count: 1})
		}
		return out
	}

	tests := []struct {
		name     string
		insights models.UserInsights
		want     []string
		wantText string
	}{
		{"short history", models.UserInsights{TotalPrompts: 2, UniqueGenres: 1, GenreDistribution: genres("POP")}, []string{}, ""},
		{"templates only", models.UserInsights{TotalPrompts: 3, UniqueGenres: 1, GenreDistribution: genres("POP")}, []string{InsightTemplates}, ""},
		{"diverse owner", models.UserInsights{TotalPrompts: 6, TotalFavorites: 1, UniqueGenres: 3, GenreDistribution: genres("POP", "ROCK", "JAZZ")}, []string{InsightTemplates}, ""},
		{"unknown top genre", models.UserInsights{TotalPrompts: 5, TotalFavorites: 2, UniqueGenres: 1, GenreDistribution: genres("REGGAE")}, []string{InsightGenreDiversity, InsightTemplates}, "JAZZ or ELECTRONIC"},
		{"jazz neighbours", models.UserInsights{TotalPrompts: 5, TotalFavorites: 2, UniqueGenres: 1, GenreDistribution: genres("JAZZ")}, []string{InsightGenreDiversity, InsightTemplates}, "BLUES or CLASSICAL"},
		{"no genres at all", models.UserInsights{TotalPrompts: 5}, []string{InsightTemplates, InsightFavorites}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insightSuggestions(&tt.insights)
			types := make([]string, 0, len(got))
			for _, s := range got {
				types = append(types, s.Type)
			}
			assert.Equal(t, tt.want, types)
			if tt.wantText != "" {
				assert.Contains(t, got[0].Text, tt.wantText)
			}
		})
	}
}
