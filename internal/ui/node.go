package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel or label. It has optional class and id for CSS matching,
// bounds (position and size), and optional text. Multi-line text is drawn one line per row.
type Node struct {
	Type   string // "panel", "label"
	Class  string // e.g. "drawer" for .drawer
	ID     string // e.g. "axis" for #axis
	Bounds rl.Rectangle
	Text   string
	Lines  []string // drawn below Text, one per row
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
	}
}
