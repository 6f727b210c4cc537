package services

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/grovetools/onair/config"
)

// minViewers is the audience floor of a successful connect.
const minViewers = 100

// SimulatedProbe succeeds with probability SuccessRate and reports a random
// audience.
type SimulatedProbe struct {
	SuccessRate float64
	MaxViewers  int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedProbe builds a probe from the streams section. A nil rng seeds
// from the runtime.
func NewSimulatedProbe(cfg config.StreamsConfig, rng *rand.Rand) *SimulatedProbe {
	rate := config.DefaultConnectSuccessRate
	if cfg.ConnectSuccessRate != nil {
		rate = *cfg.ConnectSuccessRate
	}
	max := cfg.MaxViewers
	if max <= 0 {
		max = config.DefaultMaxViewers
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &SimulatedProbe{SuccessRate: rate, MaxViewers: max, rng: rng}
}

func (p *SimulatedProbe) Connect(ctx context.Context, _ string) ProbeResult {
	if ctx.Err() != nil {
		return ProbeResult{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rng.Float64() >= p.SuccessRate {
		return ProbeResult{}
	}
	return ProbeResult{OK: true, Viewers: p.rng.IntN(p.MaxViewers) + minViewers}
}
