package view

// EaseCubicInOut is the symmetric cubic easing used for zoom transitions.
// Input outside [0, 1] is clamped.
func EaseCubicInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
