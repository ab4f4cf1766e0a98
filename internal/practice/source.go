package practice

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the random source used for word selection and shuffling.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// LockedSource is a seedable Source safe for use by concurrent requests.
type LockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSource returns a LockedSource seeded with seed, or with the current time when seed is 0.
func NewSource(seed int64) *LockedSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

func (s *LockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}
