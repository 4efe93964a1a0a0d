package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/taxonomy"
	"github.com/Conceptual-Machines/suno-prompt-api/pkg/embedded"
)

const (
	taxonomyFile    = "taxonomy.yaml"
	templatesFile   = "templates.yaml"
	suggestionsFile = "suggestions.yaml"
)

// Loader reads the lookup tables. With an empty dir every table comes from
// the binary; otherwise a file present in dir replaces its embedded copy.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// GetTaxonomyTables loads the category tables
func (l *Loader) GetTaxonomyTables() ([]byte, error) {
	return l.read(taxonomyFile, embedded.TaxonomyYAML)
}

// GetTemplates loads the template gallery
func (l *Loader) GetTemplates() ([]byte, error) {
	return l.read(templatesFile, embedded.TemplatesYAML)
}

// GetSuggestionTables loads the suggestion engine lookups
func (l *Loader) GetSuggestionTables() ([]byte, error) {
	return l.read(suggestionsFile, embedded.SuggestionsYAML)
}

// Load reads and validates all three tables.
func (l *Loader) Load() (*taxonomy.Taxonomy, error) {
	tables, err := l.GetTaxonomyTables()
	if err != nil {
		return nil, err
	}
	templates, err := l.GetTemplates()
	if err != nil {
		return nil, err
	}
	suggestions, err := l.GetSuggestionTables()
	if err != nil {
		return nil, err
	}
	return taxonomy.Parse(tables, templates, suggestions)
}

func (l *Loader) read(name string, fallback []byte) ([]byte, error) {
	if l.dir == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fallback, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
