package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "default"

// ErrThemeNotFound is returned by Get for a name with no embedded theme.
var ErrThemeNotFound = errors.New("theme not found")

// Theme is a named set of hex colors as stored in the embedded JSON files.
type Theme struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Empty      string `json:"empty"`
	Label      string `json:"label"`
	Text       string `json:"text"`
	Alert      string `json:"alert"`
}

// Palette holds a theme's parsed colors.
type Palette struct {
	Background colorful.Color
	Empty      colorful.Color
	Label      colorful.Color
	Text       colorful.Color
	Alert      colorful.Color
}

// Get loads the embedded theme with the given name.
func Get(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	t, err := Load[Theme](name + ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
		}
		return nil, err
	}
	return &t, nil
}

// Names returns the names of all embedded themes, sorted.
func Names() []string {
	files, err := fs.Glob(themeFS, "*.json")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f, ".json"))
	}
	slices.Sort(names)
	return names
}

// Palette parses every color in the theme.
func (t *Theme) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", t.Background, &p.Background},
		{"empty", t.Empty, &p.Empty},
		{"label", t.Label, &p.Label},
		{"text", t.Text, &p.Text},
		{"alert", t.Alert, &p.Alert},
	}

	for _, f := range fields {
		c, err := ParseColorful(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("theme %s: %s: %w", t.Name, f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}
