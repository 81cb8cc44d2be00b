package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/reunion/internal/config"
	"github.com/papapumpkin/reunion/internal/script"
	"github.com/papapumpkin/reunion/internal/telemetry"
	"github.com/papapumpkin/reunion/internal/ui"
	"github.com/papapumpkin/reunion/internal/watch"
)

var applyCmd = &cobra.Command{
	Use:   "apply <script.toml>",
	Short: "Apply a workload script and check its expected partition",
	Long: `Runs the unions and finds listed in a TOML workload script against a
fresh engine, prints the non-trivial subsets, and fails if they differ from
the script's [[expect]] groups. With --watch, the script is re-applied every
time it changes until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolP("watch", "w", false, "re-apply the script whenever it changes")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	printer := ui.New()
	path := args[0]

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

	runID := telemetry.NewRunID()
	err = applyOnce(printer, em, runID, path)

	if follow, _ := cmd.Flags().GetBool("watch"); !follow {
		return err
	}
	return watchScript(printer, em, runID, path)
}

// applyOnce loads and applies the script at path, reporting the result.
func applyOnce(printer *ui.Printer, em *telemetry.Emitter, runID, path string) error {
	s, err := script.Load(path)
	if err != nil {
		printer.Error(err.Error())
		_ = em.Emit(telemetry.Event{Kind: telemetry.KindScriptFailed, RunID: runID, Data: map[string]string{"path": path, "error": err.Error()}})
		return err
	}

	out := script.Apply(s)
	printer.ScriptResult(s.Name, s, out)

	if err := out.Err(); err != nil {
		_ = em.Emit(telemetry.Event{Kind: telemetry.KindScriptFailed, RunID: runID, Data: map[string]any{
			"path":       path,
			"missing":    out.Missing,
			"unexpected": out.Unexpected,
		}})
		return fmt.Errorf("%s: %w", path, err)
	}
	_ = em.Emit(telemetry.Event{Kind: telemetry.KindScriptApplied, RunID: runID, Data: map[string]any{
		"path":    path,
		"size":    out.Engine.Size(),
		"subsets": out.Subsets,
	}})
	return nil
}

// watchScript re-applies the script on every change until interrupted.
// Failures are reported and watching continues.
func watchScript(printer *ui.Printer, em *telemetry.Emitter, runID, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	w, err := watch.New(filepath.Dir(abs))
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	defer w.Stop()

	ctx, cancel := setupSignalContext(printer)
	defer cancel()

	printer.Watching(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if filepath.Base(change.File) != filepath.Base(abs) {
				continue
			}
			printer.Debug(fmt.Sprintf("%s %s", change.File, change.Kind))
			if change.Kind == watch.ChangeRemoved {
				printer.Info(path + " removed; waiting for it to reappear")
				continue
			}
			_ = applyOnce(printer, em, runID, path)
		}
	}
}
