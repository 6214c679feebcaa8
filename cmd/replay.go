// cmd/replay.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/lattice/internal/observability"
	"github.com/xkilldash9x/lattice/internal/replay"
)

// ErrScenariosFailed is returned when at least one scenario did not pass.
var ErrScenariosFailed = errors.New("scenarios failed")

func newReplayCmd() *cobra.Command {
	var (
		format      string
		concurrency int
		baseURL     string
		scale       float64
		noColor     bool
	)

	replayCmd := &cobra.Command{
		Use:   "replay <scenario-file>...",
		Short: "Replay interaction scenarios and report the resulting document state",
		Long: `Replay loads each scenario (markup, layout boxes and an input script),
feeds the events through the document, and reports focus, control state,
navigations and framework events. Scenarios run concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.SetReplayOutputFormat(format)
			}
			if flags.Changed("concurrency") {
				cfg.SetReplayConcurrency(concurrency)
			}
			if flags.Changed("base-url") {
				cfg.SetDocumentBaseURL(baseURL)
			}
			if flags.Changed("scale") {
				cfg.SetDocumentScale(scale)
			}
			replayCfg := cfg.Replay()
			if err := replayCfg.Validate(); err != nil {
				return err
			}
			documentCfg := cfg.Document()
			if err := documentCfg.Validate(); err != nil {
				return err
			}

			logger := observability.GetLogger()
			scenarios := make([]*replay.Scenario, 0, len(args))
			for _, path := range args {
				sc, err := replay.LoadScenario(path)
				if err != nil {
					return err
				}
				scenarios = append(scenarios, sc)
			}

			runner := replay.NewRunner(documentCfg, logger)
			reports, err := runner.RunAll(cmd.Context(), scenarios, replayCfg.Concurrency)
			if err != nil {
				return err
			}

			colorize := !noColor && !color.NoColor
			if err := replay.Write(cmd.OutOrStdout(), replayCfg.OutputFormat, reports, colorize); err != nil {
				return err
			}

			failed := 0
			for _, r := range reports {
				if !r.Passed() {
					failed++
				}
			}
			logger.Info("Replay finished.", zap.Int("scenarios", len(reports)), zap.Int("failed", failed))
			if failed > 0 {
				return fmt.Errorf("%d of %d %w", failed, len(reports), ErrScenariosFailed)
			}
			return nil
		},
	}

	replayCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")
	replayCmd.Flags().IntVarP(&concurrency, "concurrency", "j", 4, "Scenarios replayed at once")
	replayCmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL for resolving links and form actions")
	replayCmd.Flags().Float64Var(&scale, "scale", 1, "Device pixel ratio")
	replayCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return replayCmd
}
