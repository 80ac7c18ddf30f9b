package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/traitkb/kb/internal/constraintlang"
	"github.com/traitkb/kb/rewrite"
)

var ReduceCmd = &cobra.Command{
	Use:          "reduce [file] [term]",
	Short:        "Complete the constraints in file, then reduce term to normal form",
	RunE:         runReduce,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

func runReduce(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	sys := rewrite.NewSystem(doc.Properties)
	if _, err := rewrite.Translate(sys, doc.Constraints); err != nil {
		return fmt.Errorf("could not translate constraints: %w", err)
	}
	if err := rewrite.Complete(sys, &rewrite.Budget{}); err != nil {
		return fmt.Errorf("completion did not converge: %w", err)
	}

	term, err := constraintlang.ParseTypeExpr(args[1])
	if err != nil {
		return fmt.Errorf("could not parse term %q: %w", args[1], err)
	}

	result := sys.Reduce(term.Term())
	fmt.Fprintln(cmd.OutOrStdout(), result.String())
	return nil
}
