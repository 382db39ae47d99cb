package pack

// lcg returns the sequence s' = 1664525·s + 1013904223 mod 2³² seeded at 1,
// scaled to [0, 1).
func lcg() func() float64 {
	var s uint32 = 1
	return func() float64 {
		s = 1664525*s + 1013904223
		return float64(s) / 4294967296
	}
}

// shuffle permutes a in place (Fisher–Yates) and returns it.
func shuffle(a []Circle, random func() float64) []Circle {
	for m := len(a); m > 0; {
		i := int(random() * float64(m))
		m--
		a[m], a[i] = a[i], a[m]
	}
	return a
}
