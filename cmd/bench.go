package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/reunion/internal/bench"
	"github.com/papapumpkin/reunion/internal/config"
	"github.com/papapumpkin/reunion/internal/telemetry"
	"github.com/papapumpkin/reunion/internal/ui"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the big-merge workload and report time per operation",
	Long: `Merges 2^levels integer elements in blocks of doubling size. After each
level, random probes verify that two elements share a representative exactly
when they share a block.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().Int("levels", 10, "merge levels (element count is 2^levels)")
	benchCmd.Flags().Int("trials", 10000, "random connectivity probes per level")
	benchCmd.Flags().Uint64("seed", 1, "probe generator seed")

	_ = viper.BindPFlag("bench.levels", benchCmd.Flags().Lookup("levels"))
	_ = viper.BindPFlag("bench.trials", benchCmd.Flags().Lookup("trials"))
	_ = viper.BindPFlag("bench.seed", benchCmd.Flags().Lookup("seed"))

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	printer := ui.New()

	cfg, err := config.Load()
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.SetVerbose(cfg.Verbose)

	em, err := openEmitter(cfg.TelemetryPath)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	defer em.Close()

	ctx, cancel := setupSignalContext(printer)
	defer cancel()

	runID := telemetry.NewRunID()
	printer.Debug("run " + runID)
	_ = em.Emit(telemetry.Event{Kind: telemetry.KindRunStart, RunID: runID, Data: cfg.Bench})

	printer.BenchStart(cfg.Bench.Levels, cfg.Bench.Trials)
	res, err := bench.Run(ctx, bench.Options{
		Levels: cfg.Bench.Levels,
		Trials: cfg.Bench.Trials,
		Seed:   cfg.Bench.Seed,
		Observer: func(s bench.LevelStats) {
			printer.BenchLevel(s)
			_ = em.Emit(telemetry.Event{Kind: telemetry.KindLevelDone, RunID: runID, Data: s})
		},
	})
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	_ = em.Emit(telemetry.Event{Kind: telemetry.KindRunDone, RunID: runID, Data: res})
	printer.BenchSummary(res)
	return nil
}
