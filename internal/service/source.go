package service

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/fortuna/standout/internal/ingest/nbastats"
)

// StatsSource is the upstream data the services read. *nbastats.Client
// satisfies it.
type StatsSource interface {
	GameLog(ctx context.Context, season string) ([]nbastats.GameLogEntry, error)
	BoxScore(ctx context.Context, gameID string) (*nbastats.BoxScore, error)
	PlayerDirectory(ctx context.Context, season string) (map[int]nbastats.DirectoryEntry, error)
}

// Picker chooses an index in [0, n). n is always > 0.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int {
	return rand.IntN(n)
}

// NewRandomPicker returns a picker backed by the runtime-seeded global source.
func NewRandomPicker() Picker {
	return globalPicker{}
}

type seededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededPicker returns a reproducible picker, safe for concurrent use.
func NewSeededPicker(seed uint64) Picker {
	return &seededPicker{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (p *seededPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}
