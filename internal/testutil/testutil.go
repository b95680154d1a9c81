package testutil

import (
	"math/rand"
	"sync"
)

// RNG wraps a seeded generator so failures reproduce. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32 returns a pseudo-random uint32.
func (r *RNG) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32()
}

// Fill fills dst with random bytes.
// Locks only once per call.
func (r *RNG) Fill(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	r.Fill(b)
	return b
}

// Splits returns cut points that divide n bytes into random pieces, in
// increasing order, starting with 0 and ending with n.
func (r *RNG) Splits(n, pieces int) []int {
	cuts := []int{0}
	for i := 1; i < pieces && n > 0; i++ {
		cuts = append(cuts, cuts[len(cuts)-1]+r.Intn(n-cuts[len(cuts)-1]+1))
	}
	return append(cuts, n)
}

// Polynomial is the reversed Castagnoli polynomial.
const Polynomial = 0x82F63B78

// Reference extends crc with data bit by bit.
func Reference(crc uint32, data []byte) uint32 {
	crc = ^crc
	for _, b := range data {
		crc ^= uint32(b)
		for range 8 {
			if crc&1 != 0 {
				crc = crc>>1 ^ Polynomial
			} else {
				crc >>= 1
			}
		}
	}
	return ^crc
}
