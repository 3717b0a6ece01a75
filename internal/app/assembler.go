package app

import (
	"math/rand"
	"time"

	"concierge/internal/domain"
)

type AssemblerConfig struct {
	PoolCap     int // combined activity pool is truncated to this size
	ItemsPerDay int
}

func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{PoolCap: 60, ItemsPerDay: 3}
}

// Assembler packs an activity pool into day plans. It holds no mutable state;
// randomness comes from the *rand.Rand passed per call.
type Assembler struct{ cfg AssemblerConfig }

func NewAssembler(cfg AssemblerConfig) *Assembler {
	if cfg.PoolCap <= 0 {
		cfg.PoolCap = 60
	}
	if cfg.ItemsPerDay <= 0 {
		cfg.ItemsPerDay = 3
	}
	return &Assembler{cfg: cfg}
}

// MergePool concatenates the activity-like pools and applies the pool cap.
func (a *Assembler) MergePool(pools ...[]domain.Candidate) []domain.Candidate {
	var out []domain.Candidate
	for _, p := range pools {
		out = append(out, p...)
	}
	if len(out) > a.cfg.PoolCap {
		out = out[:a.cfg.PoolCap]
	}
	return out
}

// Assemble fills ItemsPerDay slots for every day, drawing whole shuffled passes
// of pool so that no item repeats before every item has been used once.
func (a *Assembler) Assemble(rng *rand.Rand, days []time.Time, pool []domain.Candidate) []domain.DayPlan {
	plans := make([]domain.DayPlan, 0, len(days))
	if len(pool) == 0 {
		for _, d := range days {
			plans = append(plans, domain.DayPlan{Date: d})
		}
		return plans
	}

	it := NewPassIterator(rng, pool)
	per := a.cfg.ItemsPerDay
	seq := it.Take(len(days) * per)
	for i, d := range days {
		plans = append(plans, domain.DayPlan{Date: d, Blocks: allocateBlocks(seq[i*per : (i+1)*per])})
	}
	return plans
}

// allocateBlocks assigns items cyclically: 0 morning, 1 afternoon, 2 evening.
func allocateBlocks(items []domain.Candidate) domain.Blocks {
	var b domain.Blocks
	for i, it := range items {
		switch i % 3 {
		case 0:
			b.Morning = append(b.Morning, it)
		case 1:
			b.Afternoon = append(b.Afternoon, it)
		default:
			b.Evening = append(b.Evening, it)
		}
	}
	return b
}

// PassIterator yields items from successive random permutations ("passes") of a
// base pool. The base pool is shuffled once up front; a new pass is drawn only
// when the current one is exhausted.
type PassIterator struct {
	rng  *rand.Rand
	base []domain.Candidate
	pass []domain.Candidate
	pos  int
}

func NewPassIterator(rng *rand.Rand, pool []domain.Candidate) *PassIterator {
	base := append([]domain.Candidate(nil), pool...)
	rng.Shuffle(len(base), func(i, j int) { base[i], base[j] = base[j], base[i] })
	return &PassIterator{rng: rng, base: base}
}

// Next returns the next item, starting a new pass when needed.
// It returns false only for an empty pool.
func (it *PassIterator) Next() (domain.Candidate, bool) {
	if len(it.base) == 0 {
		return domain.Candidate{}, false
	}
	if it.pos >= len(it.pass) {
		it.pass = it.pass[:0]
		for _, i := range it.rng.Perm(len(it.base)) {
			it.pass = append(it.pass, it.base[i])
		}
		it.pos = 0
	}
	c := it.pass[it.pos]
	it.pos++
	return c, true
}

func (it *PassIterator) Take(n int) []domain.Candidate {
	out := make([]domain.Candidate, 0, n)
	for len(out) < n {
		c, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}
