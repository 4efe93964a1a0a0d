package prompt

import (
	"net/url"
	"strings"
)

// DefaultExportBaseURL is the generator's site.
const DefaultExportBaseURL = "https://suno.ai"

// BuildExportURL returns the generator's create page with prompt prefilled.
func BuildExportURL(base, prompt string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultExportBaseURL
	}
	return base + "/create?prompt=" + url.QueryEscape(prompt)
}
