// Package bench drives the big-merge workload: 2^levels integer elements are
// merged in doubling blocks while random probes check that connectivity
// matches block membership after every level. It reports the amortized cost
// per Find/Union operation.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/papapumpkin/reunion"
)

// ErrInvariant indicates the engine reported a grouping that contradicts the
// block structure of the workload.
var ErrInvariant = errors.New("union-find invariant violated")

// MaxLevels is the largest supported level count.
const MaxLevels = 30

// Options configures a run.
type Options struct {
	Levels int    // element count is 1 << Levels
	Trials int    // random probes per level
	Seed   uint64 // seeds the probe generator

	// Observer, if set, is called after each level completes.
	Observer func(LevelStats)
}

// LevelStats summarizes one merge level.
type LevelStats struct {
	Level   int           `json:"level"`
	Unions  int           `json:"unions"`
	Finds   int           `json:"finds"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Result holds operation counts and timing for a completed run.
type Result struct {
	Elements int           `json:"elements"`
	Finds    int           `json:"finds"`
	Unions   int           `json:"unions"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Ops returns the total number of Find and Union calls.
func (r Result) Ops() int {
	return r.Finds + r.Unions
}

// PerOp returns the mean wall time per operation.
func (r Result) PerOp() time.Duration {
	if r.Ops() == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Ops())
}

// Run executes the big-merge workload. The context is checked between levels.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Levels < 1 || opts.Levels > MaxLevels {
		return Result{}, fmt.Errorf("bench: levels must be in [1, %d], got %d", MaxLevels, opts.Levels)
	}
	if opts.Trials < 0 {
		return Result{}, fmt.Errorf("bench: trials must be non-negative, got %d", opts.Trials)
	}

	n := 1 << opts.Levels
	uf := reunion.WithCapacity[uint32](n)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	res := Result{Elements: n}
	start := time.Now()

	for level := 0; level < opts.Levels; level++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		levelStart := time.Now()
		stats := LevelStats{Level: level}

		step := 1 << level
		increment := step << 1
		for idx := 0; idx < n; idx += increment {
			a, b := uf.Find(uint32(idx)), uf.Find(uint32(idx+step))
			if a == b {
				return res, fmt.Errorf("%w: level %d: %d and %d merged early", ErrInvariant, level, idx, idx+step)
			}
			uf.Union(a, b)

			a, b = uf.Find(uint32(idx)), uf.Find(uint32(idx+step))
			if a != b {
				return res, fmt.Errorf("%w: level %d: %d and %d not merged", ErrInvariant, level, idx, idx+step)
			}
			stats.Finds += 4
			stats.Unions++
		}

		mask := ^(increment - 1)
		for range opts.Trials {
			a := rng.IntN(n)
			b := rng.IntN(n)
			want := a&mask == b&mask
			if got := uf.Find(uint32(a)) == uf.Find(uint32(b)); got != want {
				return res, fmt.Errorf("%w: level %d: connected(%d, %d) = %t, want %t", ErrInvariant, level, a, b, got, want)
			}
		}
		stats.Finds += 2 * opts.Trials

		stats.Elapsed = time.Since(levelStart)
		res.Finds += stats.Finds
		res.Unions += stats.Unions
		if opts.Observer != nil {
			opts.Observer(stats)
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}
