package util

import "cmp"

// Clamp limits val to [low, high]. Bounds given in the wrong order are swapped.
func Clamp[T cmp.Ordered](val, low, high T) T {
	if low > high {
		low, high = high, low
	}
	return max(low, min(val, high))
}
