// Package cmd wires the investspec command line: documentation generation
// for model input specifications.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	specDir string
	prefix  string
)

var rootCmd = &cobra.Command{
	Use:   "investspec",
	Short: "Generate user documentation from model input specifications",
	Long: "investspec formats model input specification trees into Markdown\n" +
		"documentation: types, units, required states, option lists, and\n" +
		"nested fields, the way the users guide presents them.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&specDir, "spec-dir", "s", "specs", "Directory containing model spec files")
	rootCmd.PersistentFlags().StringVarP(
		&prefix, "prefix", "p", "", "Namespace prefix applied to every module reference")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
