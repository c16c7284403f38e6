package cmd

import (
	"fmt"
	"strings"

	"github.com/adrianvogl/investspec/internal/ingest"
	"github.com/adrianvogl/investspec/internal/role"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <module-ref> [dotted.key.path]",
	Short: "Render one model, or one node of it, as Markdown",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := ingest.LoadDir(specDir)
		if err != nil {
			return err
		}
		r := &role.Role{Prefix: prefix, Lookup: registry.Lookup}
		text, err := r.Render(strings.Join(args, " "), 0)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
