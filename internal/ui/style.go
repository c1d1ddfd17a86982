package ui

import (
	"axis-viewer/internal/ui/stylesheet"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// computedStyle is a resolved stylesheet.Style with colors converted for raylib.
type computedStyle struct {
	stylesheet.Style
	background rl.Color
	color      rl.Color
	border     rl.Color
}

func compute(props map[string]string) computedStyle {
	st := stylesheet.Resolve(props)
	return computedStyle{
		Style:      st,
		background: toRL(st.Background),
		color:      toRL(st.Color),
		border:     toRL(st.Border),
	}
}

func toRL(c stylesheet.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
