package axis

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"axis-viewer/internal/geom"
)

var (
	// ErrInvalidDivisions is returned when the tick count is not positive.
	ErrInvalidDivisions = errors.New("axis divisions must be > 0")
	// ErrInvalidLength is returned when the axis length is not a positive number.
	ErrInvalidLength = errors.New("axis length must be > 0")
)

// Label layout. Ticks lie flat in front of the reference box.
const (
	// UnitSuffix is the text of the trailing unit label.
	UnitSuffix = "(m)"
	// CenterOffset shifts each tick label left so its text is roughly centered on the tick.
	CenterOffset = 2
	// UnitGap is how far past the end of the axis the unit label sits.
	UnitGap = 8
	// FrontOffset is the Z distance of the label row from the axis origin.
	FrontOffset = 25
)

// Label is one text placement. Tick is the swept X position the label marks;
// Position is where the text is drawn.
type Label struct {
	Tick     float64
	Position geom.Vec3
	Text     string
}

// Labels returns divisions+1 tick labels from start to start+length followed by
// one unit label. Tick i is at i*length/divisions along the box and reads
// start + i*length/divisions.
func Labels(start, length float64, divisions int) ([]Label, error) {
	if divisions <= 0 {
		return nil, ErrInvalidDivisions
	}
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, ErrInvalidLength
	}
	step := length / float64(divisions)
	out := make([]Label, 0, divisions+2)
	for i := 0; i <= divisions; i++ {
		tick := float64(i) * step
		out = append(out, Label{
			Tick:     tick,
			Position: geom.V3(float32(tick-CenterOffset), 0, FrontOffset),
			Text:     FormatTick(start + float64(i)*step),
		})
	}
	unit := length + UnitGap
	out = append(out, Label{
		Tick:     unit,
		Position: geom.V3(float32(unit), 0, FrontOffset),
		Text:     UnitSuffix,
	})
	return out, nil
}

// FormatTick formats v as the shortest plain decimal that parses back to v.
// Negative zero prints as "0"; very large or small magnitudes use an exponent.
func FormatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimExponent drops leading zeros from the exponent: "1e-07" becomes "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	exp := strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:i+2] + exp
}
