package config

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Bench.Levels", cfg.Bench.Levels, 10},
		{"Bench.Trials", cfg.Bench.Trials, 10000},
		{"Bench.Seed", cfg.Bench.Seed, uint64(1)},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "telemetry_path",
			envKey: "REUNION_TELEMETRY_PATH",
			envVal: "/tmp/events.jsonl",
			field:  func(c Config) any { return c.TelemetryPath },
			want:   "/tmp/events.jsonl",
		},
		{
			name:   "verbose",
			envKey: "REUNION_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
		{
			name:   "bench_levels",
			envKey: "REUNION_BENCH_LEVELS",
			envVal: "20",
			field:  func(c Config) any { return c.Bench.Levels },
			want:   20,
		},
		{
			name:   "bench_seed",
			envKey: "REUNION_BENCH_SEED",
			envVal: "7",
			field:  func(c Config) any { return c.Bench.Seed },
			want:   uint64(7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so REUNION_* env vars map to config keys.
			viper.SetEnvPrefix("REUNION")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_ExplicitOverrides(t *testing.T) {
	resetViper()
	viper.Set("bench.levels", 20)
	viper.Set("bench.trials", 20000)
	viper.Set("bench.seed", 42)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Bench.Levels != 20 || cfg.Bench.Trials != 20000 || cfg.Bench.Seed != 42 {
		t.Errorf("Bench = %+v, want {Levels:20 Trials:20000 Seed:42}", cfg.Bench)
	}
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"zero levels", "bench.levels", 0},
		{"too many levels", "bench.levels", MaxLevels + 1},
		{"negative trials", "bench.trials", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)

			_, err := Load()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestBenchConfig_JSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(BenchConfig{Levels: 10, Trials: 100, Seed: 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"levels":10,"trials":100,"seed":3}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
