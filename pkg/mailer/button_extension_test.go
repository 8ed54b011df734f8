package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func convertMarkdown(t *testing.T, source string) string {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension()))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(source), &buf))
	return buf.String()
}

func TestButtonExtension(t *testing.T) {
	t.Parallel()

	t.Run("renders button", func(t *testing.T) {
		t.Parallel()
		out := convertMarkdown(t, `[!button|Read more](https://example.com/news)`)
		require.Contains(t, out, `<a href="https://example.com/news" class="btn">Read more</a>`)
	})

	t.Run("escapes label and url", func(t *testing.T) {
		t.Parallel()
		out := convertMarkdown(t, `[!button|Tom & Jerry <3](https://example.com/?a=1&b=2)`)
		require.Contains(t, out, "Tom &amp; Jerry &lt;3")
		require.Contains(t, out, "a=1&amp;b=2")
	})

	t.Run("surrounding markdown", func(t *testing.T) {
		t.Parallel()
		out := convertMarkdown(t, "# News\n\n[!button|Open](https://example.com)\n\nBye")
		require.Contains(t, out, "<h1>News</h1>")
		require.Contains(t, out, `class="btn"`)
		require.Contains(t, out, "Bye")
	})

	t.Run("regular link untouched", func(t *testing.T) {
		t.Parallel()
		out := convertMarkdown(t, `[Docs](https://example.com)`)
		require.NotContains(t, out, `class="btn"`)
		require.Contains(t, out, `<a href="https://example.com">Docs</a>`)
	})

	for name, src := range map[string]string{
		"missing url":           `[!button|Click]`,
		"missing close bracket": `[!button|Click(https://example.com)`,
		"missing close paren":   `[!button|Click](https://example.com`,
		"wrong prefix":          `[button|Click](https://example.com)`,
	} {
		t.Run("ignores "+name, func(t *testing.T) {
			t.Parallel()
			require.NotContains(t, convertMarkdown(t, src), `class="btn"`)
		})
	}
}

func TestButtonNode_Kind(t *testing.T) {
	t.Parallel()

	require.Equal(t, KindButton, (&ButtonNode{}).Kind())
}
