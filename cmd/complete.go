package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/traitkb/kb/internal/constraintlang"
	"github.com/traitkb/kb/internal/log"
	"github.com/traitkb/kb/rewrite"
)

var CompleteCmd = &cobra.Command{
	Use:          "complete [file]",
	Short:        "Load constraints and run Knuth-Bendix completion",
	RunE:         runComplete,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	maxRules *int
	maxSteps *int
	logLevel *int
)

func init() {
	maxRules = CompleteCmd.Flags().Int("max-rules", 0, "maximum rules inserted before BudgetExceeded (0 = unbounded)")
	maxSteps = CompleteCmd.Flags().Int("max-steps", 0, "maximum worklist pops before BudgetExceeded (0 = unbounded)")
	logLevel = CompleteCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
}

func runComplete(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	sys := rewrite.NewSystem(doc.Properties)
	if _, err := rewrite.Translate(sys, doc.Constraints); err != nil {
		return fmt.Errorf("could not translate constraints: %w", err)
	}

	budget := &rewrite.Budget{MaxRules: *maxRules, MaxSteps: *maxSteps}
	if err := rewrite.Complete(sys, budget); err != nil {
		fmt.Fprint(cmd.OutOrStdout(), rewrite.Dump(sys))
		return fmt.Errorf("completion did not converge: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), rewrite.Dump(sys))
	return nil
}

func loadDocument(path string) (*constraintlang.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := constraintlang.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return doc, nil
}
