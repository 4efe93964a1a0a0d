package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/config"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/database"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/prompt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, authMode string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	tax, err := prompt.NewLoader("").Load()
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:   "test",
		AuthMode:      authMode,
		ExportBaseURL: "https://suno.ai",
		HistoryLimit:  50,
		RandomSeed:    7,
	}
	engine := prompt.NewEngine(tax, prompt.EngineConfig{ExportBaseURL: cfg.ExportBaseURL, RandomSeed: cfg.RandomSeed})
	return SetupRouter(db, cfg, engine, nil, "test")
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])

	w, body = doJSON(t, router, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", body["version"])
	tax := body["taxonomy"].(map[string]any)
	assert.Equal(t, float64(12), tax["templates"])
}

func TestExtractEndpoint(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/prompts/extract", map[string]string{
		"text": "energetic rock with electric guitar",
	})
	require.Equal(t, http.StatusOK, w.Code)
	components := body["components"].(map[string]any)
	assert.Equal(t, "ROCK", components["genre"])
	assert.Equal(t, "Energetic", components["mood"])
}

func TestExtractRejectsMalformedJSON(t *testing.T) {
	router := newTestRouter(t, "none")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prompts/extract", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptimizeEndpoint(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/prompts/optimize", map[string]any{
		"components": map[string]any{"genre": "pop", "mood": "happy", "decade": "1980s"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "POP, Happy, 1980s", body["prompt"])
	assert.Equal(t, "https://suno.ai/create?prompt=POP%2C+Happy%2C+1980s", body["export_url"])
}

func TestValidateEndpoint(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/prompts/validate", map[string]string{
		"prompt": "POP, Happy, fast, guitar, piano, 1980s",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["is_valid"])
	assert.Equal(t, float64(100), body["score"])

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/prompts/validate", map[string]string{"prompt": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["is_valid"])
	assert.Equal(t, float64(0), body["score"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/prompts/analyze", map[string]string{
		"prompt": "ROCK, Energetic",
	})
	require.Equal(t, http.StatusOK, w.Code)
	structure := body["structure"].([]any)
	require.Len(t, structure, 2)
	assert.Equal(t, "genre", structure[0].(map[string]any)["type"])

	missing := body["missing"].(map[string]any)
	assert.Equal(t, false, missing["genre"])
	assert.Equal(t, true, missing["decade"])
}

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/prompts/export", map[string]string{"prompt": "R&B"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://suno.ai/create?prompt=R%26B", body["export_url"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/prompts/export", map[string]string{"prompt": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessSavesToHistory(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/prompts/process", map[string]any{
		"text": "A slow, melancholic jazz ballad with piano and upright bass, 1950s",
		"save": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	result := body["result"].(map[string]any)
	assert.Equal(t, "JAZZ, Melancholic, slow, double bass, piano, 1950s, ballad", result["prompt"])
	historyID, ok := body["history_id"].(string)
	require.True(t, ok)

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["total_count"])
	assert.Equal(t, float64(1), pagination["total_pages"])

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/history/"+historyID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, historyID, body["id"])

	w, body = doJSON(t, router, http.MethodDelete, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["deleted"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/history/"+historyID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProcessWithoutSaveSkipsHistory(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/prompts/process", map[string]any{"text": "happy pop"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, body, "history_id")
}

func TestHistoryPagination(t *testing.T) {
	router := newTestRouter(t, "none")

	for _, p := range []string{"POP", "ROCK", "JAZZ"} {
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/history", map[string]any{"prompt": p})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/history?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["entries"].([]any), 2)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pagination["total_count"])
	assert.Equal(t, float64(2), pagination["total_pages"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/history", map[string]any{"prompt": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryInsightsEndpoint(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/history/insights", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["total_prompts"])
	assert.Nil(t, body["last_activity"])

	for _, genre := range []string{"POP", "POP", "ROCK"} {
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/history", map[string]any{
			"prompt":     genre + ", Happy",
			"components": map[string]any{"genre": genre, "mood": "Happy"},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/history/insights", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["total_prompts"])
	assert.NotNil(t, body["last_activity"])
	genres := body["genre_distribution"].([]any)
	require.Len(t, genres, 2)
	assert.Equal(t, map[string]any{"name": "POP", "count": float64(2)}, genres[0])
	suggestions := body["suggestions"].([]any)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "templates", suggestions[0].(map[string]any)["type"])
}

func TestFavoritesEndpoints(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/favorites", map[string]any{
		"prompt":     "JAZZ, Melancholic",
		"components": map[string]any{"genre": "JAZZ", "instruments": "piano, double bass"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := body["id"].(string)
	instruments := body["components"].(map[string]any)["instruments"].([]any)
	assert.Len(t, instruments, 2)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/favorites", map[string]any{"prompt": "JAZZ, Melancholic"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/favorites/check?prompt=JAZZ,%20Melancholic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["is_favorite"])

	w, body = doJSON(t, router, http.MethodPut, "/api/v1/favorites/"+id, map[string]any{"prompt": "JAZZ, Relaxed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "JAZZ, Relaxed", body["prompt"])

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/favorites/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodDelete, "/api/v1/favorites/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestionEndpoints(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/suggestions", map[string]any{
		"components": map[string]any{"genre": "ROCK"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["suggestions"])
	assert.NotEmpty(t, body["recommended_templates"])

	w, body = doJSON(t, router, http.MethodPost, "/api/v1/suggestions/ideas", map[string]any{
		"components": map[string]any{},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["ideas"])
}

func TestTemplateEndpoints(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(12), body["count"])

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/templates?genre=electronic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/templates?genre=electronic&mood=nostalgic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/templates/jazz_smooth", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jazz_smooth", body["template"].(map[string]any)["id"])

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/templates/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaxonomyEndpoint(t *testing.T) {
	router := newTestRouter(t, "none")

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/taxonomy/genres", nil)
	require.Equal(t, http.StatusOK, w.Code)
	names := body["names"].([]any)
	assert.Equal(t, "POP", names[0])

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/taxonomy/colors", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGatewayModeScopesHistory(t *testing.T) {
	router := newTestRouter(t, "gateway")

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/history", map[string]any{"prompt": "POP"}, "X-User-ID", "alice")
	require.Equal(t, http.StatusCreated, w.Code)

	_, body := doJSON(t, router, http.MethodGet, "/api/v1/history", nil, "X-User-ID", "bob")
	assert.Equal(t, float64(0), body["pagination"].(map[string]any)["total_count"])

	_, body = doJSON(t, router, http.MethodGet, "/api/v1/history", nil, "X-User-ID", "alice")
	assert.Equal(t, float64(1), body["pagination"].(map[string]any)["total_count"])
}
