package database

import (
	"testing"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgresURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"postgres://user@localhost/prompts", true},
		{"postgresql://user@localhost/prompts", true},
		{"prompts.db", false},
		{"file::memory:?cache=shared", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPostgresURL(tt.url))
		})
	}
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	db, err := Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(db))

	assert.True(t, db.Migrator().HasTable(&models.HistoryEntry{}))
	assert.True(t, db.Migrator().HasTable(&models.Favorite{}))
}
