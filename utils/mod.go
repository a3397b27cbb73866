package utils

import "golang.org/x/exp/constraints"

// Clamp bounds v to [lo, hi]. When lo > hi, lo wins.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
