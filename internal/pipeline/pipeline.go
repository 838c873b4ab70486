package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadflow-cli/internal/discovery"
	"github.com/sells-group/leadflow-cli/internal/fetcher"
	"github.com/sells-group/leadflow-cli/internal/model"
)

// Options configures one reconciliation run.
type Options struct {
	InputDir        string
	MinPhoneDigits  int
	TimeLayouts     []string
	LoadConcurrency int       // default 4
	RunTime         time.Time // stamped onto update records and the result
}

// Run executes the full batch: discover source files, load them, reconcile
// leads and updates, clean and aggregate call logs. A file that fails to load
// is logged and skipped; the run continues with the rest. An input folder
// with no usable files yields an empty result, not an error — the caller
// decides whether that is fatal.
func Run(ctx context.Context, opts Options) (*model.Result, error) {
	if opts.RunTime.IsZero() {
		opts.RunTime = time.Now()
	}

	files, err := discovery.Discover(opts.InputDir)
	if err != nil {
		return nil, err
	}

	result := &model.Result{RunTime: opts.RunTime}
	if len(files) == 0 {
		zap.L().Warn("pipeline: no source files found", zap.String("input", opts.InputDir))
		return result, nil
	}

	tables := loadTables(ctx, files, opts.LoadConcurrency)

	byKind := make(map[model.FileKind][]*model.RawTable)
	for _, t := range tables {
		byKind[t.Source.Kind] = append(byKind[t.Source.Kind], t)
	}

	result.Leads = ReconcileLeads(byKind[model.KindLeads], opts.MinPhoneDigits)
	result.Updates = ReconcileUpdates(byKind[model.KindUpdates], opts.MinPhoneDigits, opts.RunTime)
	result.CallLogs, result.CallColumns = CleanCallLogs(byKind[model.KindCallLogs], CallLogOptions{
		MinPhoneDigits: opts.MinPhoneDigits,
		TimeLayouts:    opts.TimeLayouts,
	})
	result.Analyses = AggregateCalls(result.CallLogs)

	zap.L().Info("pipeline: run complete",
		zap.Int("files", len(files)),
		zap.Int("leads", len(result.Leads)),
		zap.Int("updates", len(result.Updates)),
		zap.Int("call_logs", len(result.CallLogs)),
		zap.Int("analyzed_phones", len(result.Analyses)),
	)
	return result, nil
}

// loadTables reads source files with bounded concurrency. The returned slice
// preserves discovery order regardless of completion order, so downstream
// keep-first semantics stay deterministic. Load failures leave a nil slot
// that is dropped here, after logging.
func loadTables(ctx context.Context, files []model.SourceFile, concurrency int) []*model.RawTable {
	if concurrency <= 0 {
		concurrency = 4
	}

	slots := make([]*model.RawTable, len(files))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			t, err := fetcher.LoadTable(f.Path)
			if err != nil {
				zap.L().Warn("pipeline: failed to load source file, skipping",
					zap.String("file", f.Path),
					zap.Error(err),
				)
				return nil
			}
			t.Source = f
			slots[i] = t
			zap.L().Debug("pipeline: loaded source file",
				zap.String("file", f.Name),
				zap.String("kind", string(f.Kind)),
				zap.Int("rows", len(t.Rows)),
			)
			return nil
		})
	}
	_ = g.Wait()

	tables := make([]*model.RawTable, 0, len(slots))
	for _, t := range slots {
		if t != nil {
			tables = append(tables, t)
		}
	}
	return tables
}
