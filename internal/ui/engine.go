// Package ui draws CSS-styled 2D panels over the 3D view.
package ui

import (
	_ "embed"
	"os"

	"axis-viewer/internal/ui/stylesheet"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed default.css
var defaultCSS string

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached and only recomputed when sheet or nodes change to avoid per-frame allocations.
type Engine struct {
	sheet        *stylesheet.Stylesheet
	nodes        []*Node
	cachedStyles []computedStyle
	cacheValid   bool
}

// New creates a UI engine with the built-in stylesheet and no nodes.
func New() *Engine {
	// The embedded sheet is known to parse.
	sheet, _ := stylesheet.Parse(defaultCSS)
	return &Engine{sheet: sheet}
}

// LoadCSS loads and parses a CSS file from path and appends its rules to the built-in ones,
// so a user sheet only needs to override what it changes. Rules that parsed are applied
// even when the file has syntax errors; the first error is returned.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	user, perr := stylesheet.Parse(string(data))
	merged := &stylesheet.Stylesheet{}
	if e.sheet != nil {
		merged.Rules = append(merged.Rules, e.sheet.Rules...)
	}
	merged.Rules = append(merged.Rules, user.Rules...)
	e.SetStylesheet(merged)
	return perr
}

// SetStylesheet sets the stylesheet directly.
func (e *Engine) SetStylesheet(sheet *stylesheet.Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *stylesheet.Stylesheet {
	return e.sheet
}

// SetNodes replaces all nodes. Passing the same nodes again keeps cached styles.
func (e *Engine) SetNodes(nodes []*Node) {
	if sameNodes(e.nodes, nodes) {
		return
	}
	e.nodes = append(e.nodes[:0], nodes...)
	e.cacheValid = false
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// resolveBounds sets n.Bounds from style (left, top, width, height). If style has zero size, Bounds is unchanged.
func resolveBounds(n *Node, style computedStyle) {
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	n.Bounds.X = float32(style.Left)
	n.Bounds.Y = float32(style.Top)
}

// Draw draws all nodes: for each node, resolve style (cached), update bounds from style, then draw background, border, and text.
// A node with no CSS height is sized to fit its lines.
func (e *Engine) Draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	if !e.cacheValid {
		e.cachedStyles = make([]computedStyle, len(e.nodes))
		for i, n := range e.nodes {
			e.cachedStyles[i] = compute(e.sheet.Match(n.Class, n.ID))
			resolveBounds(n, e.cachedStyles[i])
		}
		e.cacheValid = true
	}
	for i, n := range e.nodes {
		style := e.cachedStyles[i]
		w := int32(n.Bounds.Width)
		h := int32(n.Bounds.Height)
		if style.Height <= 0 && len(n.Lines) > 0 {
			rows := int32(len(n.Lines))
			if n.Text != "" {
				rows++
			}
			h = rows*style.Line() + 2*style.Padding
		}
		x := int32(n.Bounds.X)
		y := int32(n.Bounds.Y)
		if style.LeftPct >= 0 {
			x = (screenW - w) * style.LeftPct / 100
		}
		if style.TopPct >= 0 {
			y = (screenH - h) * style.TopPct / 100
		}

		// Background
		if style.background.A > 0 {
			rl.DrawRectangle(x, y, w, h, style.background)
		}
		// Border (1px)
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.border)
		}
		textX := x + style.Padding
		textY := y + style.Padding
		if n.Text != "" {
			rl.DrawText(n.Text, textX, textY, style.FontSize, style.color)
			textY += style.Line()
		}
		for _, line := range n.Lines {
			rl.DrawText(line, textX, textY, style.FontSize, style.color)
			textY += style.Line()
		}
	}
}
