package morph

// Ease is a symmetric quadratic ease-in-out on [0, 1].
func Ease(u float64) float64 {
	if u < 0.5 {
		return 2 * u * u
	}
	v := -2*u + 2
	return 1 - v*v/2
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
