package drop

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source abstracts the randomness used by the Monte Carlo layer so
// simulations can be replayed with a fixed seed.
type Source interface {
	Float64() float64 // [0, 1)
}

// cryptoSource draws 53 random bits from crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// crypto source unavailable; math/rand/v2 is good enough here
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultSource returns the crypto-backed random source.
func DefaultSource() Source { return cryptoSource{} }

// seededSource is a replicable PCG source for repeatable simulations.
type seededSource struct{ r *rand.Rand }

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }
