// Package driver runs the locale rules over a set of C# files or a
// host-provided snapshot and collects the diagnostics.
package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"globalint/internal/catalog"
	"globalint/internal/config"
	"globalint/internal/csharp"
	"globalint/internal/diag"
	"globalint/internal/observ"
	"globalint/internal/rules"
	"globalint/internal/snapshot"
	"globalint/internal/source"
	"globalint/internal/symbols"
	"globalint/internal/trace"
)

// Options содержит опции анализа.
type Options struct {
	Config *config.Config
	// Jobs bounds parallel parsing and evaluation; 0 uses the config, then GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the result after sorting; 0 uses the config, negative is unlimited.
	MaxDiagnostics int
	// Lang selects the message language; "" uses the config.
	Lang string
	// Rules restricts evaluation to these rules; empty means all.
	Rules            []rules.ID
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool

	Progress ProgressSink
	Logger   *zap.Logger
	Catalog  *catalog.Catalog

	// ExportPath, when set, writes the symbol model of a check run as a snapshot.
	ExportPath    string
	ExportContent bool
}

// Result is the outcome of one run.
type Result struct {
	FileSet *source.FileSet
	Files   []source.FileID
	Bag     *diag.Bag
	// Records are the raw rule records, in file order.
	Records []rules.Record
	// Calls counts analysed call sites; Resolved those the model resolved.
	Calls    int
	Resolved int
	Timer    *observ.Timer
}

func (o *Options) normalize() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Jobs <= 0 {
		o.Jobs = o.Config.Analysis.Jobs
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.MaxDiagnostics == 0 {
		o.MaxDiagnostics = o.Config.Analysis.MaxDiagnostics
	}
	if o.Lang == "" {
		o.Lang = o.Config.Analysis.Lang
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Check loads paths, builds the C# model and evaluates every call site.
// Unreadable files become IO diagnostics; only cancellation and internal
// failures are returned as errors.
func Check(ctx context.Context, paths []string, opts Options) (*Result, error) {
	opts.normalize()
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "check", trace.ParentID(ctx))
	root.WithExtra("files", fmt.Sprint(len(paths)))
	defer root.End("")
	ctx = trace.WithSpan(ctx, root)

	res := &Result{FileSet: source.NewFileSet()}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}
	bag := newWorkBag()

	for _, p := range paths {
		emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}

	done := res.Timer.Track("load")
	for _, p := range paths {
		id, err := res.FileSet.Load(p)
		if err != nil {
			opts.Logger.Debug("load failed", zap.String("path", p), zap.Error(err))
			// an empty placeholder keeps the diagnostic attached to its path
			ph := res.FileSet.AddVirtual(p, nil)
			bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: ph}, fmt.Sprintf("cannot read %s: %v", p, err)))
			emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		res.Files = append(res.Files, id)
	}
	done(fmt.Sprintf("files=%d", len(res.Files)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(res.Files) > 0 {
		parse := trace.Begin(tracer, trace.ScopePass, "parse", root.ID())
		done = res.Timer.Track("parse")
		emit(opts.Progress, Event{Stage: StageParse, Status: StatusWorking})
		prog, err := csharp.Load(ctx, res.FileSet, res.Files, csharp.Options{Jobs: opts.Jobs, Catalog: opts.Catalog})
		done("")
		parse.End("")
		if err != nil {
			return nil, fmt.Errorf("build C# model: %w", err)
		}
		defer prog.Close()

		for _, id := range res.Files {
			if sp, ok := prog.SyntaxError(id); ok {
				path := res.FileSet.Get(id).Path
				opts.Logger.Debug("syntax errors", zap.String("path", path))
				bag.Add(diag.New(diag.SevWarning, diag.ModSyntaxError, sp,
					fmt.Sprintf("%s has syntax errors; analysis may be incomplete", path)))
			}
		}

		if opts.ExportPath != "" {
			snap := snapshot.Export(res.FileSet, res.Files, prog, opts.ExportContent)
			if err := snapshot.Write(opts.ExportPath, snap); err != nil {
				return nil, err
			}
			opts.Logger.Debug("snapshot exported", zap.String("path", opts.ExportPath), zap.Int("calls", len(snap.Calls)))
		}

		if err := evaluate(ctx, prog, res, bag, &opts); err != nil {
			return nil, err
		}
	}

	res.Bag = finish(bag, &opts)
	if res.Timer != nil {
		opts.Logger.Debug("timings", res.Timer.Fields()...)
	}
	return res, nil
}

// CheckModel evaluates a snapshot written by a host that owns the semantic
// model. File contents come from the snapshot or, when omitted, from disk
// relative to the working directory.
func CheckModel(ctx context.Context, path string, opts Options) (*Result, error) {
	opts.normalize()
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "check_model", trace.ParentID(ctx))
	root.WithExtra("snapshot", path)
	defer root.End("")
	ctx = trace.WithSpan(ctx, root)

	res := &Result{FileSet: source.NewFileSet()}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}
	bag := newWorkBag()

	done := res.Timer.Track("read_snapshot")
	snap, err := snapshot.Read(path)
	done("")
	if err != nil {
		if errors.Is(err, snapshot.ErrInvalid) {
			return nil, fmt.Errorf("%s: %s: %w", diag.ModSnapshotInvalid.ID(), path, err)
		}
		return nil, err
	}

	ids := make([]source.FileID, len(snap.Files))
	for i, f := range snap.Files {
		if f.Content != nil {
			ids[i] = res.FileSet.AddVirtual(f.Path, []byte(*f.Content))
			res.Files = append(res.Files, ids[i])
			continue
		}
		id, err := res.FileSet.Load(f.Path)
		if err != nil {
			// the model still needs a slot so that file indexes stay aligned
			ids[i] = res.FileSet.AddVirtual(f.Path, nil)
			bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: ids[i]}, fmt.Sprintf("cannot read %s: %v", f.Path, err)))
			continue
		}
		ids[i] = id
		res.Files = append(res.Files, id)
	}

	model := snapshot.NewModel(snap, ids)
	if err := evaluate(ctx, model, res, bag, &opts); err != nil {
		return nil, err
	}
	res.Bag = finish(bag, &opts)
	return res, nil
}

// fileUnit is a model whose calls can be split per file.
type fileUnit interface {
	symbols.Unit
	CallsIn(id source.FileID) []symbols.CallExpr
}

var (
	_ fileUnit = (*csharp.Program)(nil)
	_ fileUnit = (*snapshot.Model)(nil)
)

// newWorkBag collects everything; the cap is applied after sorting.
func newWorkBag() *diag.Bag {
	return diag.NewBag(1 << 30)
}

func finish(bag *diag.Bag, opts *Options) *diag.Bag {
	if opts.IgnoreWarnings {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError })
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	bag.Dedup()
	bag.Sort()
	if opts.MaxDiagnostics > 0 {
		bag.Truncate(opts.MaxDiagnostics)
	}
	return bag
}
