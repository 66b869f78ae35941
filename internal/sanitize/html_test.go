package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextStripsAllMarkup(t *testing.T) {
	require.Equal(t, "Hall A", Text("Hall <b>A</b>"))
	require.Equal(t, "plain", Text("plain"))
	require.NotContains(t, Text(`<script>alert(1)</script>ok`), "alert")
}

func TestHTMLKeepsSafeFormatting(t *testing.T) {
	out := HTML(`<p>Join <strong>us</strong></p><script>alert(1)</script>`)
	require.Contains(t, out, "<p>Join <strong>us</strong></p>")
	require.NotContains(t, out, "script")
}

func TestHTMLDropsEventHandlers(t *testing.T) {
	out := HTML(`<p onclick="evil()">hi</p>`)
	require.NotContains(t, out, "onclick")
	require.Contains(t, out, "hi")
}
