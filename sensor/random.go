package sensor

import "math/rand/v2"

// RandomSource draws uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type defaultSource struct{}

func (defaultSource) Float64() float64 {
	return rand.Float64()
}

// NewRandomSource returns a RandomSource backed by the runtime's global
// generator, which is safe for concurrent use.
func NewRandomSource() RandomSource {
	return defaultSource{}
}
