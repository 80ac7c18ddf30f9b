package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/traitkb/kb/rewrite"
)

var DumpCmd = &cobra.Command{
	Use:          "dump [file]",
	Short:        "Load constraints and print the initial rule set, without completing it",
	RunE:         runDump,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func runDump(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	sys := rewrite.NewSystem(doc.Properties)
	if _, err := rewrite.Translate(sys, doc.Constraints); err != nil {
		return fmt.Errorf("could not translate constraints: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), rewrite.Dump(sys))
	return nil
}
