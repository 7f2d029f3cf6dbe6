package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/facematch"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <photo-file>",
	Short: "Match a photo against the registered profiles",
	Long: `Match a photo against the registered profiles and print the result.
Nothing is recorded and the cooldown does not apply.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().Float64("threshold", 0, "Override the configured match threshold, in [-1, 1)")
	recognizeCmd.Flags().Bool("json", false, "Output as JSON")
}

// RecognizeOutput is the `recognize --json` result.
type RecognizeOutput struct {
	Outcome   string  `json:"outcome"`
	Identity  string  `json:"identity,omitempty"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Compared  int     `json:"compared"`
	Skipped   int     `json:"skipped"`
}

// applyThresholdFlag overrides the configured threshold only when --threshold
// was given, so an explicit 0 is honored.
func applyThresholdFlag(cmd *cobra.Command, cfg *config.Config) error {
	if !cmd.Flags().Changed("threshold") {
		return nil
	}
	cfg.Matching.Threshold = mustGetFloat64(cmd, "threshold")
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid --threshold: %w", err)
	}
	return nil
}

func runRecognize(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyThresholdFlag(cmd, cfg); err != nil {
		return err
	}

	photo, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading photo: %w", err)
	}

	a, err := newApp(context.Background(), cfg, false)
	if err != nil {
		return err
	}
	defer a.close()

	// Without the cooldown check the outcome is matched, unknown or undecodable.
	engine := facematch.NewEngine(a.store,
		facematch.WithThreshold(cfg.Matching.Threshold),
		facematch.WithNormalizeOptions(normalizeOptions(cfg)),
		facematch.WithLogger(a.logger.Named("facematch")),
	)
	result, err := engine.Recognize(context.Background(), photo)
	if err != nil {
		return err
	}

	out := RecognizeOutput{
		Outcome:   string(result.Outcome),
		Identity:  result.Identity,
		Score:     result.Score,
		Threshold: engine.Threshold(),
		Compared:  result.Compared,
		Skipped:   result.Skipped,
	}
	if jsonOutput {
		return outputJSON(out)
	}

	switch result.Outcome {
	case facematch.OutcomeMatched:
		fmt.Printf("Matched %s (score %.4f, threshold %.2f)\n", out.Identity, out.Score, out.Threshold)
	case facematch.OutcomeUndecodable:
		fmt.Printf("Photo could not be decoded: %v\n", result.Err)
	default:
		fmt.Printf("Unknown (best score %.4f, threshold %.2f)\n", out.Score, out.Threshold)
	}
	fmt.Printf("  Compared: %d\n", out.Compared)
	if out.Skipped > 0 {
		fmt.Printf("  Skipped:  %d unusable reference photos\n", out.Skipped)
	}
	return nil
}
