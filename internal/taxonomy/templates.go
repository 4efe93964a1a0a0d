package taxonomy

import (
	"slices"
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/samber/lo"
)

// Templates returns the full gallery in declaration order.
func (t *Taxonomy) Templates() []models.Template {
	return slices.Clone(t.templates)
}

// TemplateByID returns the template with the given id.
func (t *Taxonomy) TemplateByID(id string) (models.Template, bool) {
	return lo.Find(t.templates, func(tpl models.Template) bool { return tpl.ID == id })
}

// TemplatesByGenre returns templates whose genre equals genre, ignoring case.
func (t *Taxonomy) TemplatesByGenre(genre string) []models.Template {
	if strings.TrimSpace(genre) == "" {
		return []models.Template{}
	}
	want := strings.ToUpper(strings.TrimSpace(genre))
	return lo.Filter(t.templates, func(tpl models.Template, _ int) bool {
		return strings.ToUpper(tpl.Components.Genre) == want
	})
}

// TemplatesByMood returns templates whose mood equals mood, ignoring case.
func (t *Taxonomy) TemplatesByMood(mood string) []models.Template {
	if strings.TrimSpace(mood) == "" {
		return []models.Template{}
	}
	want := strings.ToLower(strings.TrimSpace(mood))
	return lo.Filter(t.templates, func(tpl models.Template, _ int) bool {
		return strings.ToLower(tpl.Components.Mood) == want
	})
}

// PopularTemplates returns the fallback recommendations in order.
func (t *Taxonomy) PopularTemplates() []models.Template {
	out := make([]models.Template, 0, len(t.popular))
	for _, id := range t.popular {
		if tpl, ok := t.TemplateByID(id); ok {
			out = append(out, tpl)
		}
	}
	return out
}
