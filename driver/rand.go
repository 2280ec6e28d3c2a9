package driver

import "math/rand"

func randIndex(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}

func randFloat() float64 {
	return rand.Float64()
}
