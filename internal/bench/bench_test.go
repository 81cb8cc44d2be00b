package bench

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRun_Counts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		levels, trials int
		wantUnions     int
		wantFinds      int
	}{
		// Each level merges n/2^(l+1) pairs with 4 finds each, plus 2 finds per trial.
		{levels: 1, trials: 0, wantUnions: 1, wantFinds: 4},
		{levels: 3, trials: 5, wantUnions: 4 + 2 + 1, wantFinds: 4*7 + 3*2*5},
		{levels: 10, trials: 100, wantUnions: 1023, wantFinds: 4*1023 + 10*2*100},
	}
	for _, tt := range tests {
		res, err := Run(context.Background(), Options{Levels: tt.levels, Trials: tt.trials, Seed: 7})
		if err != nil {
			t.Fatalf("Run(levels=%d): %v", tt.levels, err)
		}
		if res.Elements != 1<<tt.levels {
			t.Errorf("levels=%d: Elements = %d, want %d", tt.levels, res.Elements, 1<<tt.levels)
		}
		if res.Unions != tt.wantUnions {
			t.Errorf("levels=%d: Unions = %d, want %d", tt.levels, res.Unions, tt.wantUnions)
		}
		if res.Finds != tt.wantFinds {
			t.Errorf("levels=%d: Finds = %d, want %d", tt.levels, res.Finds, tt.wantFinds)
		}
		if res.Ops() != res.Finds+res.Unions {
			t.Errorf("Ops() = %d, want %d", res.Ops(), res.Finds+res.Unions)
		}
	}
}

func TestRun_Observer(t *testing.T) {
	t.Parallel()
	var levels []int
	_, err := Run(context.Background(), Options{
		Levels:   4,
		Trials:   10,
		Observer: func(s LevelStats) { levels = append(levels, s.Level) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(levels) != 4 {
		t.Fatalf("observer called %d times, want 4", len(levels))
	}
	for i, l := range levels {
		if l != i {
			t.Errorf("observer call %d reported level %d", i, l)
		}
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		opts Options
	}{
		{"zero levels", Options{Levels: 0}},
		{"too many levels", Options{Levels: MaxLevels + 1}},
		{"negative trials", Options{Levels: 2, Trials: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Run(context.Background(), tt.opts)
			if err == nil || !strings.HasPrefix(err.Error(), "bench:") {
				t.Errorf("Run(%+v) error = %v, want bench: error", tt.opts, err)
			}
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Levels: 4, Trials: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestResult_PerOp(t *testing.T) {
	t.Parallel()
	if got := (Result{}).PerOp(); got != 0 {
		t.Errorf("PerOp() on empty result = %v, want 0", got)
	}
	r := Result{Finds: 6, Unions: 4, Elapsed: 100}
	if got := r.PerOp(); got != 10 {
		t.Errorf("PerOp() = %v, want 10ns", got)
	}
}

func benchmarkBigMerge(b *testing.B, levels, trials int) {
	if levels >= 20 && testing.Short() {
		b.Skip("skipping large merge in short mode")
	}
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), Options{Levels: levels, Trials: trials, Seed: uint64(i)}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBigMerge_10_10000(b *testing.B) { benchmarkBigMerge(b, 10, 10000) }
func BenchmarkBigMerge_20_10000(b *testing.B) { benchmarkBigMerge(b, 20, 10000) }
func BenchmarkBigMerge_20_20000(b *testing.B) { benchmarkBigMerge(b, 20, 20000) }
