package random

import (
	"math/rand"
)

// Source is a seedable stream of floats in [0, 1)
type Source interface {
	// Seed reinitializes the generator state
	Seed(seed int64)

	// Float64 advances the state and returns a value in [0, 1)
	Float64() float64
}

// Mulberry32 is a 32-bit state generator. The same seed always yields the same sequence.
type Mulberry32 struct {
	state uint32
}

// Config for the generator
type Config struct {
	// Seed is truncated to its low 32 bits
	Seed int64
}

// NewMulberry32 creates a generator seeded from the config
func NewMulberry32(cfg *Config) *Mulberry32 {
	m := &Mulberry32{}
	if cfg != nil {
		m.Seed(cfg.Seed)
	}
	return m
}

// Seed resets the state. Negative seeds wrap the same way a 32-bit integer does.
func (m *Mulberry32) Seed(seed int64) {
	m.state = uint32(seed)
}

// Float64 returns the next value in [0, 1)
func (m *Mulberry32) Float64() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Index draws an index in [0, n). n must be positive.
func Index(src Source, n int) int {
	return int(src.Float64() * float64(n))
}

// Shuffle returns a Fisher-Yates shuffled copy of items. The input is left untouched.
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := Index(src, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RandomSeed picks a fresh seed in [0, 1000000) from an unseeded source
func RandomSeed() int64 {
	return rand.Int63n(1_000_000)
}
