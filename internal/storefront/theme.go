package storefront

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StoreTheme is an immutable entry of the storefront theme catalog.
type StoreTheme struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Accent   string `json:"accent"`
	Accent2  string `json:"accent2"`
	Surface  string `json:"surface"`
	Surface2 string `json:"surface2"`
	Text     string `json:"text"`
	Muted    string `json:"muted"`
	Radius   int    `json:"radius"`
	Font     string `json:"font"`
}

const (
	fontSans  = "'Inter', system-ui, -apple-system, 'Segoe UI', sans-serif"
	fontSerif = "'Playfair Display', Georgia, 'Times New Roman', serif"
)

// themeCatalog order matters: the first entry is the fallback theme.
var themeCatalog = []StoreTheme{
	{ID: "aurora", Name: "Aurora", Accent: "#6d5dfc", Accent2: "#22d3ee", Surface: "#ffffff", Surface2: "#f4f5fb", Text: "#111827", Muted: "#6b7280", Radius: 16, Font: fontSans},
	{ID: "onyx", Name: "Onyx", Accent: "#d4af37", Accent2: "#f5d76e", Surface: "#0f0f12", Surface2: "#1a1a1f", Text: "#f5f5f5", Muted: "#a1a1aa", Radius: 14, Font: fontSerif},
	{ID: "coral", Name: "Coral", Accent: "#ff6b6b", Accent2: "#ffa94d", Surface: "#fffaf5", Surface2: "#fff0e6", Text: "#2b2d42", Muted: "#7d7f8c", Radius: 20, Font: fontSans},
	{ID: "forest", Name: "Forest", Accent: "#2f855a", Accent2: "#68d391", Surface: "#f7faf7", Surface2: "#e9f3ec", Text: "#1c2a22", Muted: "#5f6f65", Radius: 12, Font: fontSans},
	{ID: "ocean", Name: "Ocean", Accent: "#0077b6", Accent2: "#00b4d8", Surface: "#f5fbff", Surface2: "#e3f2fb", Text: "#0b2233", Muted: "#587082", Radius: 18, Font: fontSans},
	{ID: "sand", Name: "Sand", Accent: "#b08968", Accent2: "#ddb892", Surface: "#fdf8f3", Surface2: "#f3e9dc", Text: "#3d2c1e", Muted: "#86705b", Radius: 10, Font: fontSerif},
}

var themesByID = func() map[string]StoreTheme {
	m := make(map[string]StoreTheme, len(themeCatalog))
	for _, t := range themeCatalog {
		m[t.ID] = t
	}
	return m
}()

// Themes returns a copy of the catalog in display order.
func Themes() []StoreTheme {
	out := make([]StoreTheme, len(themeCatalog))
	copy(out, themeCatalog)
	return out
}

// LookupTheme returns the theme for id, or the first catalog entry when
// the id is unknown.
func LookupTheme(id string) StoreTheme {
	if t, ok := themesByID[strings.ToLower(strings.TrimSpace(id))]; ok {
		return t
	}
	return themeCatalog[0]
}

// Channel is one RGB component. It decodes from JSON numbers or numeric
// strings; anything else decodes as zero.
type Channel float64

func (c *Channel) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Channel(f)
	return nil
}

// Value truncates toward zero and clamps to [0,255].
func (c Channel) Value() int {
	f := float64(c)
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return int(f)
}

// StoreRgb is a numeric accent override.
type StoreRgb struct {
	R Channel `json:"r"`
	G Channel `json:"g"`
	B Channel `json:"b"`
}

// CSS renders the override as an rgb() color string.
func (c StoreRgb) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R.Value(), c.G.Value(), c.B.Value())
}

// CustomRgb holds optional overrides for the two accent colors.
type CustomRgb struct {
	Accent  *StoreRgb `json:"accent,omitempty"`
	Accent2 *StoreRgb `json:"accent2,omitempty"`
}
