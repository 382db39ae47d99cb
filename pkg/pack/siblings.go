package pack

import "math"

// Siblings positions circles so that no two overlap and each is tangent to
// at least one other, centring their enclosing circle on the origin. Radii
// are read from the input; X and Y are overwritten. It returns the radius of
// the enclosing circle.
func Siblings(circles []Circle) float64 {
	return packSiblings(circles, lcg())
}

type chainNode struct {
	c          *Circle
	next, prev *chainNode
}

func packSiblings(circles []Circle, random func() float64) float64 {
	n := len(circles)
	if n == 0 {
		return 0
	}

	a := &circles[0]
	a.X, a.Y = 0, 0
	if n == 1 {
		return a.R
	}

	b := &circles[1]
	a.X = -b.R
	b.X, b.Y = a.R, 0
	if n == 2 {
		return a.R + b.R
	}

	place(b, a, &circles[2])

	// Front-chain: a -> b -> c -> a.
	na := &chainNode{c: &circles[0]}
	nb := &chainNode{c: &circles[1]}
	nc := &chainNode{c: &circles[2]}
	na.next, nc.prev = nb, nb
	nb.next, na.prev = nc, nc
	nc.next, nb.prev = na, na

pack:
	for i := 3; i < n; i++ {
		c := &circles[i]
		place(na.c, nb.c, c)
		cn := &chainNode{c: c}

		// Find the closest intersecting circle on the front-chain, measured
		// by distance along the chain.
		j, k := nb.next, na.prev
		sj, sk := nb.c.R, na.c.R
		for {
			if sj <= sk {
				if intersects(j.c, cn.c) {
					nb = j
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sj += j.c.R
				j = j.next
			} else {
				if intersects(k.c, cn.c) {
					na = k
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sk += k.c.R
				k = k.prev
			}
			if j == k.next {
				break
			}
		}

		// Insert c between a and b.
		cn.prev, cn.next = na, nb
		na.next, nb.prev = cn, cn
		nb = cn

		// The new pair closest to the centroid becomes a, b.
		aa := score(na)
		for m := cn.next; m != nb; m = m.next {
			if s := score(m); s < aa {
				na, aa = m, s
			}
		}
		nb = na.next
	}

	chain := []Circle{*nb.c}
	for m := nb.next; m != nb; m = m.next {
		chain = append(chain, *m.c)
	}
	e := encloseRandom(chain, random)

	for i := range circles {
		circles[i].X -= e.X
		circles[i].Y -= e.Y
	}
	return e.R
}

// place positions c tangent to both a and b.
func place(b, a, c *Circle) {
	dx, dy := b.X-a.X, b.Y-a.Y
	d2 := dx*dx + dy*dy
	if d2 == 0 {
		c.X, c.Y = a.X+c.R, a.Y
		return
	}

	a2 := (a.R + c.R) * (a.R + c.R)
	b2 := (b.R + c.R) * (b.R + c.R)
	if a2 > b2 {
		x := (d2 + b2 - a2) / (2 * d2)
		y := math.Sqrt(math.Max(0, b2/d2-x*x))
		c.X = b.X - x*dx - y*dy
		c.Y = b.Y - x*dy + y*dx
		return
	}
	x := (d2 + a2 - b2) / (2 * d2)
	y := math.Sqrt(math.Max(0, a2/d2-x*x))
	c.X = a.X + x*dx - y*dy
	c.Y = a.Y + x*dy + y*dx
}

func intersects(a, b *Circle) bool {
	dr := a.R + b.R - 1e-6
	dx, dy := b.X-a.X, b.Y-a.Y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

// score is the squared distance from the origin to the weighted midpoint of
// n and its successor.
func score(n *chainNode) float64 {
	a, b := n.c, n.next.c
	ab := a.R + b.R
	dx := (a.X*b.R + b.X*a.R) / ab
	dy := (a.Y*b.R + b.Y*a.R) / ab
	return dx*dx + dy*dy
}
