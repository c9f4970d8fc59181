package battle

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness the resolver draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed picks one from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// LockedRand serializes access to a Rand shared between sessions.
type LockedRand struct {
	mu sync.Mutex
	r  Rand
}

func NewLockedRand(r Rand) *LockedRand {
	return &LockedRand{r: r}
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *LockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
