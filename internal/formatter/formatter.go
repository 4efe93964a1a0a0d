// Package formatter renders a ComponentSet as a comma-separated prompt with
// fixed per-field casing and ordering.
package formatter

import (
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/textutil"
	"github.com/samber/lo"
)

// sparseThreshold is the number of emitted fields below which missing genre
// and mood are backfilled.
const sparseThreshold = 3

const (
	defaultGenre = "POP"
	defaultMood  = "Upbeat"
)

var decadeGenres = map[string]string{
	"1950s":         "ROCK",
	"1960s":         "ROCK",
	"1970s":         "FUNK",
	"1980s":         "POP",
	"1990s":         "ROCK",
	"2000s":         "POP",
	"2010s":         "POP",
	"2020s":         "POP",
	"Classical Era": "CLASSICAL",
	"Baroque Era":   "CLASSICAL",
	"Medieval Era":  "CLASSICAL",
}

var moodGenres = map[string]string{
	"Happy":       "POP",
	"Playful":     "POP",
	"Uplifting":   "POP",
	"Sad":         "FOLK",
	"Melancholic": "FOLK",
	"Energetic":   "ELECTRONIC",
	"Dark":        "ELECTRONIC",
	"Tense":       "ELECTRONIC",
	"Calm":        "AMBIENT",
	"Peaceful":    "AMBIENT",
	"Dreamy":      "AMBIENT",
	"Mysterious":  "AMBIENT",
	"Ethereal":    "AMBIENT",
	"Aggressive":  "METAL",
	"Angry":       "METAL",
	"Romantic":    "R&B",
	"Nostalgic":   "ROCK",
	"Epic":        "CLASSICAL",
	"Triumphant":  "CLASSICAL",
	"Relaxed":     "JAZZ",
}

var genreMoods = map[string]string{
	"POP":        "Upbeat",
	"ROCK":       "Energetic",
	"HIP HOP":    "Energetic",
	"ELECTRONIC": "Energetic",
	"R&B":        "Romantic",
	"SOUL":       "Romantic",
	"JAZZ":       "Relaxed",
	"CLASSICAL":  "Epic",
	"COUNTRY":    "Nostalgic",
	"FOLK":       "Nostalgic",
	"METAL":      "Aggressive",
	"PUNK":       "Aggressive",
	"BLUES":      "Melancholic",
	"REGGAE":     "Happy",
	"FUNK":       "Playful",
	"AMBIENT":    "Calm",
	"WORLD":      "Uplifting",
}

var tempoMoods = map[string]string{
	"slow":      "Calm",
	"fast":      "Energetic",
	"very fast": "Energetic",
}

var nostalgicDecades = []string{"1950s", "1960s", "1970s", "1980s", "1990s", "2000s"}

// Format renders components in the order genre, mood, tempo, instruments,
// decade, vocals, region, descriptors, structure, description. Empty fields
// are omitted and an empty set yields "".
func Format(c models.ComponentSet) string {
	parts := fields(c)
	if len(parts) > 0 && len(parts) < sparseThreshold {
		parts = fields(Backfill(c))
	}
	return strings.Join(parts, ", ")
}

// Backfill fills a missing genre and mood from the other fields. Set fields
// are never overridden.
func Backfill(c models.ComponentSet) models.ComponentSet {
	if strings.TrimSpace(c.Genre) == "" {
		c.Genre = InferGenre(c)
	}
	if strings.TrimSpace(c.Mood) == "" {
		c.Mood = InferMood(c)
	}
	return c
}

// InferGenre guesses a genre from instruments, then decade, then mood.
func InferGenre(c models.ComponentSet) string {
	instruments := strings.ToLower(strings.Join(c.Instruments, " "))
	hasDrums := strings.Contains(instruments, "drum")
	switch {
	case strings.Contains(instruments, "guitar") && hasDrums:
		return "ROCK"
	case strings.Contains(instruments, "synth"),
		strings.Contains(instruments, "808"),
		strings.Contains(instruments, "drum machine"):
		return "ELECTRONIC"
	case strings.Contains(instruments, "piano") && !hasDrums:
		return "CLASSICAL"
	case strings.Contains(instruments, "sax"), strings.Contains(instruments, "trumpet"):
		return "JAZZ"
	}

	if genre, ok := decadeGenres[strings.TrimSpace(c.Decade)]; ok {
		return genre
	}
	if genre, ok := moodGenres[textutil.TitleCase(strings.TrimSpace(c.Mood))]; ok {
		return genre
	}
	return defaultGenre
}

// InferMood guesses a mood from genre, then tempo, then decade.
func InferMood(c models.ComponentSet) string {
	if mood, ok := genreMoods[strings.ToUpper(strings.TrimSpace(c.Genre))]; ok {
		return mood
	}
	if mood, ok := tempoMoods[strings.ToLower(strings.TrimSpace(c.Tempo))]; ok {
		return mood
	}
	if lo.Contains(nostalgicDecades, strings.TrimSpace(c.Decade)) {
		return "Nostalgic"
	}
	return defaultMood
}

func fields(c models.ComponentSet) []string {
	var parts []string
	add := func(value string) {
		if v := strings.TrimSpace(value); v != "" {
			parts = append(parts, v)
		}
	}

	add(strings.ToUpper(c.Genre))
	add(textutil.TitleCase(strings.TrimSpace(c.Mood)))
	add(c.Tempo)
	add(instruments(c.Instruments))
	add(c.Decade)
	add(strings.ToLower(c.Vocals))
	add(c.Region)
	add(descriptors(c.Descriptors))
	add(c.Structure)
	add(c.Description)
	return parts
}

func instruments(list models.InstrumentList) string {
	kept := lo.Filter(list, func(i string, _ int) bool { return strings.TrimSpace(i) != "" })
	trimmed := lo.Map(kept, func(i string, _ int) string { return strings.TrimSpace(i) })
	return strings.ToLower(strings.Join(trimmed, ", "))
}

func descriptors(raw string) string {
	parts := lo.FilterMap(strings.Split(raw, ","), func(d string, _ int) (string, bool) {
		d = strings.TrimSpace(d)
		return textutil.TitleCase(d), d != ""
	})
	return strings.Join(parts, ", ")
}
