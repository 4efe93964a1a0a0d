package models

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
)

// ComponentSet is the bundle of musical descriptors extracted from free text
// or edited directly by a user. Every transformation returns a new value.
type ComponentSet struct {
	Genre       string         `json:"genre" yaml:"genre"`
	Mood        string         `json:"mood" yaml:"mood"`
	Tempo       string         `json:"tempo" yaml:"tempo"`
	Instruments InstrumentList `json:"instruments" yaml:"instruments"`
	Decade      string         `json:"decade" yaml:"decade"`
	Region      string         `json:"region" yaml:"region"`
	Vocals      string         `json:"vocals" yaml:"vocals"`
	Structure   string         `json:"structure" yaml:"structure"`
	Descriptors string         `json:"descriptors" yaml:"descriptors"`
	Description string         `json:"description" yaml:"description"`
}

// EmptyComponents returns a set with every field empty and a non-nil
// instrument list, so it serializes as [] rather than null.
func EmptyComponents() ComponentSet {
	return ComponentSet{Instruments: InstrumentList{}}
}

// HasInstruments reports whether at least one non-blank instrument is set.
func (c ComponentSet) HasInstruments() bool {
	return lo.SomeBy(c.Instruments, func(i string) bool { return strings.TrimSpace(i) != "" })
}

// IsEmpty reports whether no field carries a value.
func (c ComponentSet) IsEmpty() bool {
	return c.Genre == "" && c.Mood == "" && c.Tempo == "" && !c.HasInstruments() &&
		c.Decade == "" && c.Region == "" && c.Vocals == "" && c.Structure == "" &&
		c.Descriptors == "" && c.Description == ""
}

// InstrumentList keeps instruments in discovery order. It decodes from either
// a JSON array or a single comma-separated string.
type InstrumentList []string

func (l *InstrumentList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = cleanInstruments(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = cleanInstruments(strings.Split(joined, ","))
	return nil
}

func cleanInstruments(raw []string) InstrumentList {
	out := InstrumentList{}
	for _, item := range raw {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
