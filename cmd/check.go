package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrianvogl/investspec/internal/ingest"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every spec file in the spec directory loads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := os.ReadDir(specDir)
		if err != nil {
			return fmt.Errorf("read spec dir: %w", err)
		}

		failures := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch filepath.Ext(entry.Name()) {
			case ".hcl", ".json", ".yaml", ".yml":
			default:
				continue
			}
			path := filepath.Join(specDir, entry.Name())
			if _, err := ingest.LoadFile(path); err != nil {
				failures++
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		}
		if failures > 0 {
			return fmt.Errorf("%d spec file(s) failed to load", failures)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
