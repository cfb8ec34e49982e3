package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// MaxPresets is how many presets are kept; saving more evicts the oldest.
const MaxPresets = 10

// Preset is a named set of settings, stored as config key=value pairs.
type Preset struct {
	Name     string            `yaml:"name"`
	SavedAt  int64             `yaml:"saved_at"` // Unix seconds
	Settings map[string]string `yaml:"settings"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

func presetsPath() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "presets.yaml"), nil
}

// Presets returns saved presets, newest first.
func Presets() ([]Preset, error) {
	p, err := presetsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p) // #nosec G304 -- path is constructed from config dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	return f.Presets, nil
}

// FindPreset returns the preset with the given name.
func FindPreset(name string) (Preset, error) {
	presets, err := Presets()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%q: %w", name, ErrPresetNotFound)
}

// Time returns when the preset was saved.
func (p Preset) Time() time.Time {
	return time.Unix(p.SavedAt, 0)
}

// SavePreset stores settings under name, replacing a preset of the same
// name. The new preset goes first; presets beyond MaxPresets are dropped
// from the end.
func SavePreset(name string, settings map[string]string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("preset name cannot be empty: %w", ErrInvalidValue)
	}

	clean := make(map[string]string, len(settings))
	for key, value := range settings {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if err := Validate(key, value); err != nil {
			return err
		}
		clean[key] = value
	}

	presets, err := Presets()
	if err != nil {
		return err
	}

	kept := []Preset{{Name: name, SavedAt: now.Unix(), Settings: clean}}
	for _, p := range presets {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) > MaxPresets {
		kept = kept[:MaxPresets]
	}
	return writePresets(kept)
}

// DeletePreset removes the preset with the given name.
func DeletePreset(name string) error {
	presets, err := Presets()
	if err != nil {
		return err
	}

	kept := presets[:0]
	for _, p := range presets {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(presets) {
		return fmt.Errorf("%q: %w", name, ErrPresetNotFound)
	}
	return writePresets(kept)
}

func writePresets(presets []Preset) error {
	p, err := presetsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := yaml.Marshal(presetFile{Presets: presets})
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	// #nosec G306 -- presets file with standard permissions
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("cannot write presets file: %w", err)
	}
	return nil
}
