package tracking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInjector_Endpoint(t *testing.T) {
	assert.Equal(t, "https://pages.example.com/metrics/event", NewInjector("https://pages.example.com/").Endpoint)
}

func TestInject_BeforeClosingBody(t *testing.T) {
	inj := NewInjector("https://pages.example.com")
	html := "<html><body><p>hola</p></BODY></html>"

	out := inj.Inject(html, "site-1")

	require.True(t, Instrumented(out))
	assert.True(t, strings.HasPrefix(out, "<html><body><p>hola</p><script data-lp-metrics"))
	assert.True(t, strings.HasSuffix(out, "</script></BODY></html>"))
	assert.Contains(t, out, `data-site-id="site-1"`)
	assert.Contains(t, out, `data-endpoint="https://pages.example.com/metrics/event"`)
}

func TestInject_UsesLastBodyTag(t *testing.T) {
	inj := NewInjector("https://x.io")
	html := "<body><pre>&lt;/body&gt; </body> literal</pre></body>"

	out := inj.Inject(html, "s")

	assert.True(t, strings.HasSuffix(out, "</script></body>"))
	assert.Equal(t, 1, strings.Count(out, Marker))
}

func TestInject_AppendsWithoutBody(t *testing.T) {
	inj := NewInjector("https://x.io")

	out := inj.Inject("<p>fragment</p>", "s")

	assert.True(t, strings.HasPrefix(out, "<p>fragment</p><script "))
	assert.True(t, strings.HasSuffix(out, "</script>"))
}

func TestInject_Idempotent(t *testing.T) {
	inj := NewInjector("https://x.io")
	html := "<html><body>x</body></html>"

	once := inj.Inject(html, "s")
	twice := inj.Inject(once, "s")

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, "<script "+Marker))
}

func TestInject_NoOps(t *testing.T) {
	inj := NewInjector("https://x.io")

	assert.Equal(t, "", inj.Inject("", "s"))
	assert.Equal(t, "<body></body>", inj.Inject("<body></body>", ""))
	assert.Equal(t, "<body></body>", inj.Inject("<body></body>", "   "))
}

func TestInject_EscapesSiteID(t *testing.T) {
	out := NewInjector("https://x.io").Inject("<body></body>", `"><script>alert(1)</script>`)

	assert.NotContains(t, out, `"><script>alert(1)`)
	assert.Contains(t, out, `data-site-id="&quot;&gt;&lt;script&gt;alert(1)&lt;/script&gt;"`)
}

func TestSource_Fragment(t *testing.T) {
	src := Source()

	assert.NotContains(t, strings.ToLower(src), "</script")
	for _, event := range []string{"'page_view'", "'click'", "'conversion'", "'session_end'"} {
		assert.Contains(t, src, event)
	}
	assert.Contains(t, src, "navigator.sendBeacon")
	assert.Contains(t, src, "keepalive: true")
	assert.Contains(t, src, "if (sessionEnded) return;")
	assert.Contains(t, src, "'pagehide'")
	assert.Contains(t, src, "slice(0, 120)")
}

func TestInstrumented_RequiresMarkedScript(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"marker in text", "<body><h1>Tienda data-lp-metrics</h1></body>", false},
		{"marker on another element", `<body><div data-lp-metrics="1"></div></body>`, false},
		{"marker inside attribute value", `<script src="/data-lp-metrics.js"></script>`, false},
		{"marked script", `<script data-lp-metrics data-site-id="s">x</script>`, true},
		{"marked script upper case", `<SCRIPT type="text/javascript" data-lp-metrics>x</SCRIPT>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Instrumented(tt.html))
		})
	}
}

func TestInject_MarkerTextInContent(t *testing.T) {
	inj := NewInjector("https://x.io")

	out := inj.Inject("<html><body><h1>Tienda data-lp-metrics</h1></body></html>", "s")

	assert.True(t, Instrumented(out))
	assert.Equal(t, 1, strings.Count(out, "<script "+Marker))
}
