package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianvogl/investspec/api"
	"github.com/adrianvogl/investspec/internal/ingest"
	"github.com/adrianvogl/investspec/internal/render"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <out-dir>",
	Short: "Build one Markdown page per model from the spec directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := args[0]

		registry, err := ingest.LoadDir(specDir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		for _, id := range registry.IDs() {
			spec, _ := registry.Get(id)
			page, err := buildPage(spec)
			if err != nil {
				return fmt.Errorf("model %q: %w", id, err)
			}
			path := filepath.Join(outDir, id+".md")
			if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Printf("wrote %s", path)
		}
		return nil
	},
}

// buildPage lays out one model's reference page: a title-cased heading
// and the full bulleted arg list.
func buildPage(spec *api.ModelSpec) (string, error) {
	heading := spec.Title
	if heading == "" {
		heading = spec.ID
	}
	lines, err := render.Args(spec.Args)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("# " + render.Title(heading) + "\n\n")
	sb.WriteString("## Data Needs\n\n")
	sb.WriteString(strings.Join(lines, "\n\n"))
	sb.WriteString("\n")
	return sb.String(), nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
