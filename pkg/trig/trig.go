// pkg/trig/trig.go
package trig

import (
	"math"
	"sync"
)

// FullCircle is the number of degrees in a full turn.
const FullCircle = 360.0

// DefaultResolution is the number of table steps per degree.
const DefaultResolution = 10

// Tables holds precomputed sine, cosine and tangent values over a fixed-degree domain.
// A Tables value is immutable after New and safe to share between components.
type Tables struct {
	resolution int
	steps      int
	sin        []float64
	cos        []float64
	tan        []float64
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// New builds tables with resolution steps per degree.
func New(resolution int) *Tables {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	steps := int(FullCircle) * resolution
	t := &Tables{
		resolution: resolution,
		steps:      steps,
		sin:        make([]float64, steps),
		cos:        make([]float64, steps),
		tan:        make([]float64, steps),
	}
	for i := 0; i < steps; i++ {
		rad := float64(i) / float64(resolution) * math.Pi / 180
		t.sin[i] = math.Sin(rad)
		t.cos[i] = math.Cos(rad)
		// tan is unbounded at 90 and 270; clamp so callers never see Inf
		c := t.cos[i]
		if math.Abs(c) < 1e-9 {
			t.tan[i] = math.Copysign(1e9, t.sin[i])
		} else {
			t.tan[i] = t.sin[i] / c
		}
	}
	return t
}

// Default returns the process-wide tables, built on first use.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables = New(DefaultResolution)
	})
	return defaultTables
}

// Resolution returns the number of steps per degree.
func (t *Tables) Resolution() int { return t.resolution }

func (t *Tables) index(deg float64) int {
	i := int(math.Round(Normalize(deg) * float64(t.resolution)))
	if i >= t.steps {
		i -= t.steps
	}
	return i
}

// Sin returns the sine of deg degrees.
func (t *Tables) Sin(deg float64) float64 { return t.sin[t.index(deg)] }

// Cos returns the cosine of deg degrees.
func (t *Tables) Cos(deg float64) float64 { return t.cos[t.index(deg)] }

// Tan returns the tangent of deg degrees, clamped near the asymptotes.
func (t *Tables) Tan(deg float64) float64 { return t.tan[t.index(deg)] }

// Polar converts a length and heading into a cartesian offset.
func (t *Tables) Polar(length, deg float64) (dx, dy float64) {
	return length * t.Cos(deg), length * t.Sin(deg)
}

// Normalize maps any angle into [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, FullCircle)
	if deg < 0 {
		deg += FullCircle
	}
	if deg >= FullCircle {
		deg = 0
	}
	return deg
}

// Delta returns the shortest signed difference to-from in (-180, 180].
func Delta(from, to float64) float64 {
	d := Normalize(to - from)
	if d > FullCircle/2 {
		d -= FullCircle
	}
	return d
}

// Heading returns the heading in degrees of the vector (dx, dy).
func Heading(dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	return Normalize(math.Atan2(dy, dx) * 180 / math.Pi)
}
