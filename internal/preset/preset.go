// Package preset defines the quick-rest duration chips offered as one-tap
// shortcuts to start the countdown. A builtin set ships with the binary;
// users may replace it via a TOML file.
package preset

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/claude/restbell/internal/timer"
)

// Preset is one quick-rest chip.
type Preset struct {
	Label   string `toml:"label" json:"label"`
	Seconds int    `toml:"seconds" json:"seconds"`
}

// Builtin returns the default chips in display order.
func Builtin() []Preset {
	return []Preset{
		{Label: "0:45", Seconds: 45},
		{Label: "1:00", Seconds: 60},
		{Label: "1:30", Seconds: 90},
		{Label: "2:00", Seconds: 120},
		{Label: "3:00", Seconds: 180},
	}
}

// tomlFile is the on-disk shape: a list of [[preset]] tables.
type tomlFile struct {
	Presets []Preset `toml:"preset"`
}

// LoadFromTOML parses custom chips from TOML data. Entries with a
// non-positive duration are dropped; a missing label is derived from the
// duration. An empty result is an error so callers fall back to builtins.
func LoadFromTOML(data []byte) ([]Preset, error) {
	var raw tomlFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("preset: parse TOML: %w", err)
	}

	presets := make([]Preset, 0, len(raw.Presets))
	for _, p := range raw.Presets {
		if p.Seconds <= 0 {
			continue
		}
		if p.Label == "" {
			p.Label = timer.FormatMMSS(p.Seconds)
		}
		presets = append(presets, p)
	}
	if len(presets) == 0 {
		return nil, fmt.Errorf("preset: no valid presets in file")
	}
	return presets, nil
}

// Resolve returns the chips to offer: the TOML file at path when it loads
// cleanly, otherwise the builtins. An empty path means no override.
func Resolve(path string) ([]Preset, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: reading %s: %w", path, err)
	}
	return LoadFromTOML(data)
}
