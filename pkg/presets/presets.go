// Package presets provides named adjustment bundles. A preset replaces the
// session's slider values wholesale; it never touches the edit history.
package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gomcpgo/photo_studio_ai/pkg/session"
)

// Preset is a named, immutable bundle of adjustment values.
type Preset struct {
	Name        string
	Description string
	Adjustments session.Adjustments
}

// Library holds the built-in presets plus any user-defined ones.
type Library struct {
	presets map[string]Preset
}

// BuiltIn returns a library with only the built-in presets.
func BuiltIn() *Library {
	lib := &Library{presets: make(map[string]Preset)}
	for _, p := range builtinPresets {
		lib.presets[p.Name] = p
	}
	return lib
}

// Load returns the built-in library merged with user presets from a TOML
// file. An empty path falls back to ~/.config/photo_studio_ai/presets.toml;
// a missing file is not an error. User presets override built-ins by name.
//
// File shape:
//
//	[presets.golden_hour]
//	description = "warm evening light"
//	brightness = 108
//	sepia = 30
func Load(path string) (*Library, error) {
	lib := BuiltIn()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return lib, nil
		}
		path = filepath.Join(home, ".config", "photo_studio_ai", "presets.toml")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return lib, nil
		}
		return nil, fmt.Errorf("failed to stat presets file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load presets file: %w", err)
	}

	for _, name := range k.MapKeys("presets") {
		prefix := "presets." + name
		adj := session.Baseline()
		if k.Exists(prefix + ".brightness") {
			adj.Brightness = k.Float64(prefix + ".brightness")
		}
		if k.Exists(prefix + ".contrast") {
			adj.Contrast = k.Float64(prefix + ".contrast")
		}
		if k.Exists(prefix + ".saturation") {
			adj.Saturation = k.Float64(prefix + ".saturation")
		}
		if k.Exists(prefix + ".grayscale") {
			adj.Grayscale = k.Float64(prefix + ".grayscale")
		}
		if k.Exists(prefix + ".sepia") {
			adj.Sepia = k.Float64(prefix + ".sepia")
		}
		if k.Exists(prefix + ".blur") {
			adj.Blur = k.Float64(prefix + ".blur")
		}
		lib.presets[name] = Preset{
			Name:        name,
			Description: k.String(prefix + ".description"),
			Adjustments: adj.Clamped(),
		}
	}

	return lib, nil
}

// Get returns the preset with the given name.
func (l *Library) Get(name string) (Preset, bool) {
	p, ok := l.presets[name]
	return p, ok
}

// List returns all presets sorted by name.
func (l *Library) List() []Preset {
	out := make([]Preset, 0, len(l.presets))
	for _, p := range l.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the preset names sorted alphabetically.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.presets))
	for name := range l.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtinPresets = []Preset{
	{
		Name:        "none",
		Description: "No adjustments",
		Adjustments: session.Baseline(),
	},
	{
		Name:        "dramatic",
		Description: "High contrast black and white with crushed shadows",
		Adjustments: session.Adjustments{Brightness: 80, Contrast: 150, Saturation: 0, Grayscale: 0, Sepia: 0, Blur: 0},
	},
	{
		Name:        "vintage",
		Description: "Faded tones with a sepia wash",
		Adjustments: session.Adjustments{Brightness: 110, Contrast: 90, Saturation: 85, Grayscale: 0, Sepia: 45, Blur: 0},
	},
	{
		Name:        "noir",
		Description: "Full grayscale with punchy contrast",
		Adjustments: session.Adjustments{Brightness: 95, Contrast: 130, Saturation: 100, Grayscale: 100, Sepia: 0, Blur: 0},
	},
	{
		Name:        "chrome",
		Description: "Saturated, slightly contrasty look",
		Adjustments: session.Adjustments{Brightness: 100, Contrast: 110, Saturation: 140, Grayscale: 0, Sepia: 0, Blur: 0},
	},
	{
		Name:        "fade",
		Description: "Washed-out low contrast look",
		Adjustments: session.Adjustments{Brightness: 110, Contrast: 85, Saturation: 75, Grayscale: 0, Sepia: 0, Blur: 0},
	},
	{
		Name:        "warm",
		Description: "Gentle warm tint",
		Adjustments: session.Adjustments{Brightness: 105, Contrast: 100, Saturation: 110, Grayscale: 0, Sepia: 25, Blur: 0},
	},
	{
		Name:        "dreamy",
		Description: "Soft focus with lifted brightness",
		Adjustments: session.Adjustments{Brightness: 105, Contrast: 95, Saturation: 90, Grayscale: 0, Sepia: 0, Blur: 2},
	},
}
