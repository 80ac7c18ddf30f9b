package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/traitkb/kb/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "kb",
	Short: "Knuth-Bendix completion engine for generic-signature constraints",
}

func init() {
	rootCmd.AddCommand(cmd.CompleteCmd, cmd.ReduceCmd, cmd.DumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
