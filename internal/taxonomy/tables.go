package taxonomy

// SuggestionTables are the keyed lookups behind suggestions and creative
// ideas. Genre keys are upper case, mood keys lower case and decade keys
// canonical decade names.
type SuggestionTables struct {
	GenreInstruments       map[string][]string `yaml:"genre_instruments"`
	GenreTempos            map[string][]string `yaml:"genre_tempos"`
	GenreStructures        map[string]string   `yaml:"genre_structures"`
	MoodDescriptors        map[string][]string `yaml:"mood_descriptors"`
	MoodInstruments        map[string][]string `yaml:"mood_instruments"`
	DecadeInstruments      map[string][]string `yaml:"decade_instruments"`
	DecadeGenres           map[string][]string `yaml:"decade_genres"`
	GenreFusions           map[string][]string `yaml:"genre_fusions"`
	UniqueInstrumentations map[string][]string `yaml:"unique_instrumentations"`
	MoodContrasts          []MoodContrast      `yaml:"mood_contrasts"`
	DecadeIdeas            map[string][]string `yaml:"decade_ideas"`
	Wildcards              []string            `yaml:"wildcards"`
}

// MoodContrast pairs a mood family with ideas that play against it.
type MoodContrast struct {
	Mood  string   `yaml:"mood"`
	Ideas []string `yaml:"ideas"`
}
