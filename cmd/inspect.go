package main

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadflow-cli/internal/discovery"
	"github.com/sells-group/leadflow-cli/internal/fetcher"
	"github.com/sells-group/leadflow-cli/internal/pipeline"
)

var inspectFilePath string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the inferred kind and column roles of one source file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := fetcher.LoadTable(inspectFilePath)
		if err != nil {
			return eris.Wrap(err, "inspect: load file")
		}

		name := filepath.Base(inspectFilePath)
		fmt.Printf("file: %s\n", name)
		fmt.Printf("kind: %s\n", discovery.CategorizeFile(name))
		fmt.Printf("rows: %d\n\n", len(t.Rows))
		for _, col := range t.Columns {
			fmt.Printf("  %-30s %s\n", col, pipeline.ClassifyColumn(col))
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFilePath, "file", "", "path to a CSV/XLSX export (required)")
	_ = inspectCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(inspectCmd)
}
