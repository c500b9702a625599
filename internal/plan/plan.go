// Package plan holds the fixed weekly workout plan: one focus area per
// day, each with an ordered list of exercises, coaching cues and reference
// video links. The data is immutable and embedded at build time; the
// package only reads it.
package plan

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed plan.yaml
var planYAML []byte

// Exercise is one movement in a day's session.
type Exercise struct {
	Name   string   `yaml:"name" json:"name"`
	Target string   `yaml:"target" json:"target"`
	Cues   []string `yaml:"cues" json:"cues"`
	Videos []string `yaml:"videos" json:"videos,omitempty"`
}

// Day is one entry in the weekly grid.
type Day struct {
	Key       string     `yaml:"key" json:"key"`
	Label     string     `yaml:"label" json:"label"`
	Focus     string     `yaml:"focus" json:"focus"`
	Exercises []Exercise `yaml:"exercises" json:"exercises"`
}

// Week is the whole plan in day order.
type Week struct {
	Days []Day `yaml:"days" json:"days"`
}

// Match is one search hit: the exercise plus where in the week it lives.
type Match struct {
	DayKey   string   `json:"day"`
	DayLabel string   `json:"day_label"`
	Focus    string   `json:"focus"`
	Exercise Exercise `json:"exercise"`
}

// Load parses the embedded plan. It fails only if the embedded data is
// broken, which is a build problem, not a runtime one.
func Load() (*Week, error) {
	var w Week
	if err := yaml.Unmarshal(planYAML, &w); err != nil {
		return nil, fmt.Errorf("parsing embedded plan: %w", err)
	}
	if len(w.Days) == 0 {
		return nil, fmt.Errorf("embedded plan has no days")
	}
	return &w, nil
}

// Day returns the plan entry for the given key (e.g. "monday").
func (w *Week) Day(key string) (Day, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, d := range w.Days {
		if d.Key == key {
			return d, true
		}
	}
	return Day{}, false
}

// Search returns exercises whose name or target muscle text contains the
// query, plus every exercise of a day whose focus matches. Matching is
// case-insensitive substring; an empty query matches nothing.
func (w *Week) Search(query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Match
	for _, d := range w.Days {
		focusHit := strings.Contains(strings.ToLower(d.Focus), q)
		for _, ex := range d.Exercises {
			if focusHit ||
				strings.Contains(strings.ToLower(ex.Name), q) ||
				strings.Contains(strings.ToLower(ex.Target), q) {
				matches = append(matches, Match{
					DayKey:   d.Key,
					DayLabel: d.Label,
					Focus:    d.Focus,
					Exercise: ex,
				})
			}
		}
	}
	return matches
}
