// Package bitint provides power-of-two sizing helpers used when rounding
// buffer capacities and texture extents. All operations are constant time
// and allocation free.
package bitint

import "math/bits"

// NextPowerOfTwo returns the next power of 2 >= size. Exact powers of two
// are preserved (the size-1 subtraction keeps 8 from becoming 16); zero and
// negative inputs yield 1.
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	if ^uint(0)>>63 == 0 {
		return int(1 << bits.Len64(uint64(size-1)))
	}
	return int(1 << bits.Len32(uint32(size-1)))
}

// IsPowerOfTwo reports whether n is a positive power of 2. Powers of two
// have exactly one bit set, so n&(n-1) clears to zero only for them.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
