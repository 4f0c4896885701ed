package smoothing

import "math"

// minWindow is the narrowest window a second order filter can use.
const minWindow = 3

// WindowSize derives the odd window width used by SGolay and MovMean from
// the smoothing strength and the series length n. The width is the odd
// number nearest to strength*n, at least 3 and at most n. Halves round to
// even so the widths match those of the reference tooling.
func WindowSize(strength float64, n int) int {
	if !(strength*float64(n) < float64(n)) {
		return widest(n)
	}
	w := int(math.RoundToEven((strength*float64(n)-1)/2))*2 + 1
	if w < minWindow {
		w = minWindow
	}
	if w > n {
		w = widest(n)
	}
	return w
}

// widest is the largest odd width that fits n samples.
func widest(n int) int {
	if n%2 == 0 {
		return n - 1
	}
	return n
}
