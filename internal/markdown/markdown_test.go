package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out := Render("hello **world**")
	require.Contains(t, out, "<strong>world</strong>")
}

func TestRenderHardWraps(t *testing.T) {
	out := Render("line one\nline two")
	require.Contains(t, out, "<br>")
}

func TestRenderGFMStrikethrough(t *testing.T) {
	out := Render("~~gone~~")
	require.Contains(t, out, "<del>gone</del>")
}
