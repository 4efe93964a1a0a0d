package embedded

import (
	_ "embed"
)

// Embed all lookup tables
//
//go:embed data/taxonomy.yaml
var TaxonomyYAML []byte

//go:embed data/templates.yaml
var TemplatesYAML []byte

//go:embed data/suggestions.yaml
var SuggestionsYAML []byte
