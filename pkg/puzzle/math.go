package puzzle

import (
	"math/big"
	"time"
)

// IsPrime is exact for every int; ProbablyPrime is deterministic below 2^64.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	return big.NewInt(int64(n)).ProbablyPrime(0)
}

// ProperDivisors returns the divisors of n other than 1 and n, ascending.
func ProperDivisors(n int) []int {
	var low, high []int
	for i := 2; i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		low = append(low, i)
		if j := n / i; j != i {
			high = append(high, j)
		}
	}
	for i := len(high) - 1; i >= 0; i-- {
		low = append(low, high[i])
	}
	return low
}

// MaxBonus is the multiplier bonus for an instant correct multi answer.
func MaxBonus(d Difficulty) float64 {
	switch d {
	case Easy:
		return 0.1
	case Normal:
		return 0.4
	default:
		return 0.8
	}
}

// Multiplier scales the personal rate after a correct multi answer. It is not
// clamped: answers slower than the deadline shrink the rate.
func Multiplier(d Difficulty, elapsed, deadline time.Duration) float64 {
	timeFactor := (deadline.Seconds() - elapsed.Seconds()) / deadline.Seconds()
	return 1 + MaxBonus(d)*timeFactor
}
