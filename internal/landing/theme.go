package landing

import "strings"

// LandingTheme is a palette of the marketing-page theme table.
type LandingTheme struct {
	Key        string `json:"key"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
	Font       string `json:"font"`
}

const fallbackThemeKey = "neutral"

var landingThemes = map[string]LandingTheme{
	"warm":    {Key: "warm", Primary: "#c2410c", Secondary: "#f59e0b", Background: "#fffbf5", Surface: "#ffffff", Text: "#2d1a0e", Muted: "#7c6350", Font: "'Poppins', system-ui, sans-serif"},
	"fresh":   {Key: "fresh", Primary: "#0e7490", Secondary: "#10b981", Background: "#f4fbfb", Surface: "#ffffff", Text: "#0f2a30", Muted: "#55757b", Font: "'Poppins', system-ui, sans-serif"},
	"elegant": {Key: "elegant", Primary: "#7c3aed", Secondary: "#d4a373", Background: "#faf7f5", Surface: "#ffffff", Text: "#1f1a24", Muted: "#6e6475", Font: "'Playfair Display', Georgia, serif"},
	"bold":    {Key: "bold", Primary: "#dc2626", Secondary: "#111827", Background: "#ffffff", Surface: "#f3f4f6", Text: "#111827", Muted: "#4b5563", Font: "'Poppins', system-ui, sans-serif"},
	"calm":    {Key: "calm", Primary: "#4f7cac", Secondary: "#9bc1bc", Background: "#f6f8fa", Surface: "#ffffff", Text: "#1e2a36", Muted: "#5d6b78", Font: "'Poppins', system-ui, sans-serif"},
	"neutral": {Key: "neutral", Primary: "#334155", Secondary: "#64748b", Background: "#f8fafc", Surface: "#ffffff", Text: "#0f172a", Muted: "#64748b", Font: "system-ui, -apple-system, 'Segoe UI', sans-serif"},
}

// LookupLandingTheme returns the palette for key, or the neutral palette.
func LookupLandingTheme(key string) LandingTheme {
	if t, ok := landingThemes[strings.ToLower(strings.TrimSpace(key))]; ok {
		return t
	}
	return landingThemes[fallbackThemeKey]
}
