package geom

import (
	"fmt"
	"strings"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

var (
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Gray  = Color{128, 128, 128}
)

var namedColors = map[string]Color{
	"red":   Red,
	"green": Green,
	"blue":  Blue,
	"black": Black,
	"white": White,
	"gray":  Gray,
	"grey":  Gray,
}

// ParseColor accepts #RGB, #RRGGBB, 0xRRGGBB, RRGGBB or a basic color name.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	for i := 0; i < len(hex); i++ {
		if hexByte(hex[i]) < 0 {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
	}
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		return Color{
			R: uint8(hexByte(hex[0]) * 17),
			G: uint8(hexByte(hex[1]) * 17),
			B: uint8(hexByte(hex[2]) * 17),
		}, nil
	case 6:
		return Color{
			R: uint8(hexByte(hex[0])<<4 + hexByte(hex[1])),
			G: uint8(hexByte(hex[2])<<4 + hexByte(hex[3])),
			B: uint8(hexByte(hex[4])<<4 + hexByte(hex[5])),
		}, nil
	}
	return Color{}, fmt.Errorf("invalid color %q", s)
}

func hexByte(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	return -1
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// MarshalText lets YAML and JSON encode colors as hex strings.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts any form ParseColor does.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
