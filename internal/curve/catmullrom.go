// Package curve samples smooth 3D curves and sweeps tube meshes along them.
package curve

import (
	"axis-viewer/internal/geom"

	"github.com/chewxy/math32"
)

// Type selects the Catmull-Rom parameterisation.
type Type int

const (
	// Centripetal uses alpha 0.5 (distance^0.25 on squared distances). It never cusps.
	Centripetal Type = iota
	// Chordal uses alpha 1.
	Chordal
	// Uniform is the classic form with a tension factor.
	Uniform
)

// DefaultArcLengthDivisions is how many chords approximate the curve length.
const DefaultArcLengthDivisions = 200

// minKnotDelta replaces degenerate knot intervals when control points coincide.
const minKnotDelta = 1e-4

// tangentDelta is the parameter step used for finite-difference tangents.
const tangentDelta = 1e-4

// Curve is anything that can be sampled by normalized arc length u in [0, 1].
type Curve interface {
	PointAt(u float32) geom.Vec3
	TangentAt(u float32) geom.Vec3
}

// CatmullRom is an interpolating spline that passes through every control point.
// Open curves reflect the first and last points to form the missing end tangents.
type CatmullRom struct {
	Points  []geom.Vec3
	Closed  bool
	Type    Type
	Tension float32 // used by Uniform only

	ArcLengthDivisions int
	lengths            []float32
}

// NewCatmullRom returns an open centripetal curve through points.
func NewCatmullRom(points ...geom.Vec3) *CatmullRom {
	return &CatmullRom{
		Points:             points,
		Type:               Centripetal,
		Tension:            0.5,
		ArcLengthDivisions: DefaultArcLengthDivisions,
	}
}

// Point returns the curve position at parameter t in [0, 1]. The parameter is
// spread uniformly over the control segments, not by arc length.
func (c *CatmullRom) Point(t float32) geom.Vec3 {
	pts := c.Points
	l := len(pts)
	switch l {
	case 0:
		return geom.Vec3{}
	case 1:
		return pts[0]
	}

	n := l - 1
	if c.Closed {
		n = l
	}
	p := float32(n) * t
	intPoint := int(math32.Floor(p))
	weight := p - float32(intPoint)

	if c.Closed {
		if intPoint <= 0 {
			intPoint += (abs(intPoint)/l + 1) * l
		}
	} else if weight == 0 && intPoint == l-1 {
		intPoint = l - 2
		weight = 1
	}

	var p0, p3 geom.Vec3
	if c.Closed || intPoint > 0 {
		p0 = pts[(intPoint-1)%l]
	} else {
		p0 = pts[0].Sub(pts[1]).Add(pts[0])
	}
	p1 := pts[intPoint%l]
	p2 := pts[(intPoint+1)%l]
	if c.Closed || intPoint+2 < l {
		p3 = pts[(intPoint+2)%l]
	} else {
		p3 = pts[l-1].Sub(pts[l-2]).Add(pts[l-1])
	}

	if c.Type == Uniform {
		return geom.Vec3{
			X: uniformCubic(p0.X, p1.X, p2.X, p3.X, c.Tension).at(weight),
			Y: uniformCubic(p0.Y, p1.Y, p2.Y, p3.Y, c.Tension).at(weight),
			Z: uniformCubic(p0.Z, p1.Z, p2.Z, p3.Z, c.Tension).at(weight),
		}
	}

	pow := float32(0.25)
	if c.Type == Chordal {
		pow = 0.5
	}
	dt0 := math32.Pow(p0.DistSq(p1), pow)
	dt1 := math32.Pow(p1.DistSq(p2), pow)
	dt2 := math32.Pow(p2.DistSq(p3), pow)
	if dt1 < minKnotDelta {
		dt1 = 1
	}
	if dt0 < minKnotDelta {
		dt0 = dt1
	}
	if dt2 < minKnotDelta {
		dt2 = dt1
	}
	return geom.Vec3{
		X: nonUniformCubic(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2).at(weight),
		Y: nonUniformCubic(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2).at(weight),
		Z: nonUniformCubic(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2).at(weight),
	}
}

// Lengths returns cumulative chord lengths at ArcLengthDivisions+1 evenly spaced
// parameters. The table is computed once and cached; reset it with Invalidate
// after editing Points.
func (c *CatmullRom) Lengths() []float32 {
	divisions := c.ArcLengthDivisions
	if divisions <= 0 {
		divisions = DefaultArcLengthDivisions
	}
	if len(c.lengths) == divisions+1 {
		return c.lengths
	}
	lengths := make([]float32, divisions+1)
	last := c.Point(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		cur := c.Point(float32(i) / float32(divisions))
		sum += cur.Dist(last)
		lengths[i] = sum
		last = cur
	}
	c.lengths = lengths
	return lengths
}

// Invalidate drops the cached arc-length table.
func (c *CatmullRom) Invalidate() {
	c.lengths = nil
}

// Length returns the approximate total arc length.
func (c *CatmullRom) Length() float32 {
	ls := c.Lengths()
	return ls[len(ls)-1]
}

// UtoT maps normalized arc length u to the curve parameter t.
func (c *CatmullRom) UtoT(u float32) float32 {
	ls := c.Lengths()
	il := len(ls)
	target := u * ls[il-1]

	// Largest index whose cumulative length is <= target.
	low, high := 0, il-1
	for low <= high {
		i := low + (high-low)/2
		cmp := ls[i] - target
		if cmp < 0 {
			low = i + 1
		} else if cmp > 0 {
			high = i - 1
		} else {
			high = i
			break
		}
	}
	i := high
	if i < 0 {
		return 0
	}
	if ls[i] == target || i == il-1 || ls[i+1] == ls[i] {
		return float32(i) / float32(il-1)
	}
	before, after := ls[i], ls[i+1]
	fraction := (target - before) / (after - before)
	return (float32(i) + fraction) / float32(il-1)
}

// PointAt returns the position at normalized arc length u.
func (c *CatmullRom) PointAt(u float32) geom.Vec3 {
	return c.Point(c.UtoT(u))
}

// Tangent returns the unit tangent at parameter t by central difference.
func (c *CatmullRom) Tangent(t float32) geom.Vec3 {
	t1 := t - tangentDelta
	t2 := t + tangentDelta
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	return c.Point(t2).Sub(c.Point(t1)).Normalize()
}

// TangentAt returns the unit tangent at normalized arc length u.
func (c *CatmullRom) TangentAt(u float32) geom.Vec3 {
	return c.Tangent(c.UtoT(u))
}

// cubic is c0 + c1*t + c2*t^2 + c3*t^3.
type cubic struct {
	c0, c1, c2, c3 float32
}

func (p cubic) at(t float32) float32 {
	t2 := t * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t2*t
}

// hermite builds the cubic through x0 and x1 with end tangents t0 and t1.
func hermite(x0, x1, t0, t1 float32) cubic {
	return cubic{
		c0: x0,
		c1: t0,
		c2: -3*x0 + 3*x1 - 2*t0 - t1,
		c3: 2*x0 - 2*x1 + t0 + t1,
	}
}

func uniformCubic(x0, x1, x2, x3, tension float32) cubic {
	return hermite(x1, x2, tension*(x2-x0), tension*(x3-x1))
}

func nonUniformCubic(x0, x1, x2, x3, dt0, dt1, dt2 float32) cubic {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	// Rescale tangents to the [0, 1] parameter of the middle segment.
	return hermite(x1, x2, t1*dt1, t2*dt1)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
