package driver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"globalint/internal/config"
	"globalint/internal/diag"
	"globalint/internal/messages"
	"globalint/internal/rules"
	"globalint/internal/source"
	"globalint/internal/symbols"
	"globalint/internal/trace"
)

// finding is a record together with the call that produced it.
type finding struct {
	rec  rules.Record
	site symbols.CallSite
}

type fileOutcome struct {
	findings []finding
	calls    int
	resolved int
}

// evaluate runs the engine over every file of unit in parallel. Each worker
// owns its outcome slot, results are merged in file order.
func evaluate(ctx context.Context, unit fileUnit, res *Result, bag *diag.Bag, opts *Options) error {
	tracer := trace.FromContext(ctx)
	pass := trace.Begin(tracer, trace.ScopePass, "evaluate", trace.ParentID(ctx))
	done := res.Timer.Track("evaluate")

	engine := rules.New(unit)
	enabled := ruleFilter(opts.Rules)
	outcomes := make([]fileOutcome, len(res.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, id := range res.Files {
		g.Go(func() error {
			path := res.FileSet.Get(id).Path
			span := trace.Begin(tracer, trace.ScopeFile, "evaluate_file", pass.ID())
			span.WithExtra("path", path)
			start := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageEvaluate, Status: StatusWorking})

			out, err := evaluateFile(gctx, engine, unit, id, enabled, opts.Logger)
			if err != nil {
				span.End("cancelled")
				emit(opts.Progress, Event{File: path, Stage: StageEvaluate, Status: StatusError, Err: err})
				return err
			}
			outcomes[i] = out
			span.WithExtra("calls", fmt.Sprint(out.calls))
			span.End(fmt.Sprintf("findings=%d", len(out.findings)))
			opts.Logger.Debug("file evaluated",
				zap.String("path", path),
				zap.Int("calls", out.calls),
				zap.Int("resolved", out.resolved),
				zap.Int("findings", len(out.findings)))
			emit(opts.Progress, Event{File: path, Stage: StageEvaluate, Status: StatusDone, Elapsed: time.Since(start), Findings: len(out.findings)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		done("cancelled")
		pass.End("cancelled")
		return err
	}

	conv := newConverter(opts.Config, opts.Lang)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	total := 0
	for _, out := range outcomes {
		res.Calls += out.calls
		res.Resolved += out.resolved
		for _, f := range out.findings {
			res.Records = append(res.Records, f.rec)
			if conv.report(reporter, f) {
				total++
			}
		}
	}
	total -= reporter.Suppressed()
	if n := reporter.Suppressed(); n > 0 {
		opts.Logger.Debug("repeated findings collapsed", zap.Int("count", n))
	}
	note := fmt.Sprintf("calls=%d resolved=%d findings=%d", res.Calls, res.Resolved, total)
	done(note)
	pass.End(note)
	return nil
}

func evaluateFile(ctx context.Context, engine *rules.Engine, unit fileUnit, id source.FileID, enabled func(rules.ID) bool, log *zap.Logger) (fileOutcome, error) {
	var out fileOutcome
	for _, call := range unit.CallsIn(id) {
		if err := ctx.Err(); err != nil {
			return fileOutcome{}, err
		}
		out.calls++
		site, ok := unit.Resolve(call)
		if !ok {
			if ce := log.Check(zap.DebugLevel, "call skipped: unresolved"); ce != nil {
				ce.Write(zap.Stringer("span", call.Span()))
			}
			continue
		}
		out.resolved++
		rec, ok := engine.Evaluate(site)
		if !ok || !enabled(rec.Rule) {
			continue
		}
		out.findings = append(out.findings, finding{rec: rec, site: site})
	}
	return out, nil
}

func ruleFilter(ids []rules.ID) func(rules.ID) bool {
	if len(ids) == 0 {
		return func(rules.ID) bool { return true }
	}
	set := make(map[rules.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id rules.ID) bool { return set[id] }
}

// converter renders records into diagnostics with configured severities.
type converter struct {
	cfg      *config.Config
	renderer *messages.Renderer
}

func newConverter(cfg *config.Config, lang string) *converter {
	return &converter{cfg: cfg, renderer: messages.NewRenderer(lang)}
}

// report sends the finding to r unless its rule is switched off.
func (c *converter) report(r diag.Reporter, f finding) bool {
	sev, on := c.cfg.RuleSeverity(f.rec.Rule)
	if !on {
		return false
	}
	code, ok := diag.CodeForRule(string(f.rec.Rule))
	if !ok {
		return false
	}
	b := diag.NewReportBuilder(r, sev, code, f.rec.Span, c.renderer.Record(f.rec))
	switch {
	case f.rec.IsDefaultArgument():
		b.WithNote(f.site.Span, c.renderer.CalledFrom(f.site.Caller))
	case suggests(f.rec.Rule) && len(f.rec.Args) > 2:
		b.WithNote(f.site.Span, c.renderer.Suggested(f.rec.Args[2]))
	}
	b.Emit()
	return true
}

// suggests: rules whose third argument names the overload to call instead.
func suggests(id rules.ID) bool {
	return id == rules.RuleSpecifyFormatProvider || id == rules.RuleSpecifyStringComparison
}
