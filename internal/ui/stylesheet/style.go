package stylesheet

import (
	"strconv"
	"strings"

	"axis-viewer/internal/geom"
)

// RGBA is a color with alpha.
type RGBA struct {
	R, G, B, A uint8
}

var (
	transparent = RGBA{}
	white       = RGBA{255, 255, 255, 255}
	black       = RGBA{0, 0, 0, 255}
)

// Style holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type Style struct {
	Background RGBA
	Color      RGBA
	Border     RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32 // text offset from node bounds (default 4)
	FontSize   int32
	LineHeight int32 // 0 = FontSize + 4
}

// DefaultStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultStyle() Style {
	return Style{
		Background: transparent,
		Color:      white,
		Border:     black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   20,
	}
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA, "transparent" or a basic color name.
func ParseColor(s string) (RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return transparent, true
	}
	if len(s) == 9 && s[0] == '#' {
		c, err := geom.ParseColor(s[:7])
		if err != nil {
			return black, false
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return black, false
		}
		return RGBA{c.R, c.G, c.B, uint8(a)}, true
	}
	c, err := geom.ParseColor(s)
	if err != nil {
		return black, false
	}
	return RGBA{c.R, c.G, c.B, 255}, true
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// Resolve builds a Style from a merged property map (e.g. from Match).
// Unknown properties and unparsable values are ignored.
func Resolve(props map[string]string) Style {
	out := DefaultStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			// Shorthand "1px solid #333": the color is the last word.
			fields := strings.Fields(v)
			if len(fields) == 0 {
				continue
			}
			if c, ok := ParseColor(fields[len(fields)-1]); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "line-height":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.LineHeight = n
			}
		}
	}
	return out
}

// Line returns the distance between text lines.
func (s Style) Line() int32 {
	if s.LineHeight > 0 {
		return s.LineHeight
	}
	return s.FontSize + 4
}
