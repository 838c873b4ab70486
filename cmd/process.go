package main

import (
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow-cli/internal/model"
	"github.com/sells-group/leadflow-cli/internal/pipeline"
	"github.com/sells-group/leadflow-cli/internal/store"
)

var (
	processInputDir  string
	processOutputDir string
	processDBPath    string
	processXLSX      bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reconcile a folder of exports and write the report tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		runTime := time.Now()

		result, err := pipeline.Run(ctx, pipeline.Options{
			InputDir:        processInputDir,
			MinPhoneDigits:  cfg.Process.MinPhoneDigits,
			TimeLayouts:     cfg.Process.TimeLayouts,
			LoadConcurrency: cfg.Process.LoadConcurrency,
			RunTime:         runTime,
		})
		if err != nil {
			return eris.Wrap(err, "process: run pipeline")
		}
		if empty(result) {
			zap.L().Warn("process: nothing to report",
				zap.String("input", processInputDir),
			)
			return nil
		}

		// One exclusive timestamped subdirectory per run; writes never race
		// with a previous run's output.
		outDir := filepath.Join(processOutputDir, "lead_analysis_"+runTime.Format("2006-01-02_15-04-05"))
		if err := pipeline.WriteReports(outDir, result); err != nil {
			return eris.Wrap(err, "process: write reports")
		}
		if processXLSX {
			if err := pipeline.WriteWorkbook(outDir, result); err != nil {
				return eris.Wrap(err, "process: write workbook")
			}
		}

		dbPath := processDBPath
		if dbPath == "" {
			dbPath = cfg.Store.DatabasePath
		}
		if dbPath != "" {
			runID, err := archiveRun(cmd, dbPath, result, outDir)
			if err != nil {
				return eris.Wrap(err, "process: archive run")
			}
			zap.L().Info("process: archived run", zap.String("run_id", runID), zap.String("db", dbPath))
		}

		zap.L().Info("process: complete",
			zap.String("output", outDir),
			zap.Int("leads", len(result.Leads)),
			zap.Int("updates", len(result.Updates)),
			zap.Int("call_logs", len(result.CallLogs)),
			zap.Int("analyzed_phones", len(result.Analyses)),
		)
		return nil
	},
}

func archiveRun(cmd *cobra.Command, dbPath string, result *model.Result, outDir string) (string, error) {
	st, err := store.NewSQLite(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	if err := st.Migrate(cmd.Context()); err != nil {
		return "", err
	}
	return st.ArchiveRun(cmd.Context(), result, processInputDir, outDir)
}

func empty(r *model.Result) bool {
	return len(r.Leads) == 0 && len(r.Updates) == 0 && len(r.CallLogs) == 0
}

func init() {
	processCmd.Flags().StringVar(&processInputDir, "input", "", "folder containing source exports (required)")
	processCmd.Flags().StringVar(&processOutputDir, "output", "", "folder to write the report subdirectory into (required)")
	processCmd.Flags().StringVar(&processDBPath, "db", "", "optional SQLite path to archive the run into")
	processCmd.Flags().BoolVar(&processXLSX, "xlsx", false, "also write an Excel workbook of the report tables")
	_ = processCmd.MarkFlagRequired("input")
	_ = processCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(processCmd)
}
