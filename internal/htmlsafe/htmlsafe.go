// Package htmlsafe is the single escaping boundary for generated documents.
// Every user-supplied string that reaches HTML text, an attribute value or an
// inline JSON block goes through one of these helpers.
package htmlsafe

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML-significant characters with entities.
// Safe for both text nodes and quoted attribute values.
func Escape(s string) string {
	return replacer.Replace(s)
}

// ScriptJSON marshals v for embedding as the text of a <script> element.
// With HTML escaping on, encoding/json writes <, > and & as \u003c, \u003e
// and \u0026, so the output can never close the surrounding element.
func ScriptJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// SafeURL returns raw when it is an http(s), protocol-relative, root-relative
// or data:image URL, and an empty string otherwise. The result still needs
// Escape before it is placed in an attribute.
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "data:image/") {
		return raw
	}
	if strings.HasPrefix(raw, "/") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return raw
	}
	return ""
}

// CSSValue accepts a CSS color-like token (hex, named, rgb()/hsl() calls,
// including the slash alpha form) and rejects anything that could terminate
// the declaration.
func CSSValue(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > 64 {
		return ""
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("#(),.%/ -", r):
		default:
			return ""
		}
	}
	return raw
}
