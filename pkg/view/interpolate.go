package view

import (
	"math"
	"time"
)

const (
	rho       = math.Sqrt2
	rho2      = 2.0
	rho4      = 4.0
	epsilon2  = 1e-12
	unitSpeed = float64(time.Second)
)

// Interpolator walks the smooth zoom path between two viewports.
type Interpolator struct {
	from, to Viewport
	s        float64 // path length
	r0       float64 // general case only
	d1       float64
	straight bool // centres coincide: zoom only
}

// Zoom returns the interpolator from one viewport to another.
func Zoom(from, to Viewport) Interpolator {
	dx, dy := to.X-from.X, to.Y-from.Y
	d2 := dx*dx + dy*dy
	w0, w1 := from.D, to.D

	if d2 < epsilon2 {
		return Interpolator{
			from:     from,
			to:       to,
			s:        math.Log(w1/w0) / rho,
			straight: true,
		}
	}

	d1 := math.Sqrt(d2)
	b0 := (w1*w1 - w0*w0 + rho4*d2) / (2 * w0 * rho2 * d1)
	b1 := (w1*w1 - w0*w0 - rho4*d2) / (2 * w1 * rho2 * d1)
	r0 := math.Log(math.Sqrt(b0*b0+1) - b0)
	r1 := math.Log(math.Sqrt(b1*b1+1) - b1)
	return Interpolator{
		from: from,
		to:   to,
		s:    (r1 - r0) / rho,
		r0:   r0,
		d1:   d1,
	}
}

// At returns the viewport at t in [0, 1]. At(0) is the start viewport and
// At(1) the end viewport, up to rounding.
func (z Interpolator) At(t float64) Viewport {
	from, to := z.from, z.to
	dx, dy := to.X-from.X, to.Y-from.Y
	if t >= 1 {
		return to
	}

	if z.straight {
		return Viewport{
			X: from.X + t*dx,
			Y: from.Y + t*dy,
			D: from.D * math.Exp(rho*t*z.s),
		}
	}

	s := t * z.s
	coshr0 := math.Cosh(z.r0)
	u := from.D / (rho2 * z.d1) * (coshr0*math.Tanh(rho*s+z.r0) - math.Sinh(z.r0))
	return Viewport{
		X: from.X + u*dx,
		Y: from.Y + u*dy,
		D: from.D * coshr0 / math.Cosh(rho*s+z.r0),
	}
}

// Duration is the path length expressed as a recommended animation time.
func (z Interpolator) Duration() time.Duration {
	return time.Duration(math.Abs(z.s) * unitSpeed * rho / math.Sqrt2)
}
