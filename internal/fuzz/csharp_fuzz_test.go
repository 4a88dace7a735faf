package fuzztests

import (
	"context"
	"testing"
	"time"

	"globalint/internal/csharp"
	"globalint/internal/rules"
	"globalint/internal/source"
	"globalint/internal/testkit"
)

const loadTimeout = 2 * time.Second

func FuzzCSharpLoad(f *testing.F) {
	addCorpusSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > maxFuzzInput {
			t.Skip()
		}
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.cs", data)

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		prog, err := csharp.Load(ctx, fs, []source.FileID{id}, csharp.Options{Jobs: 1})
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("load timed out after %s", loadTimeout)
			}
			return
		}
		defer prog.Close()

		engine := rules.New(prog)
		var recs []rules.Record
		for _, call := range prog.Calls() {
			site, ok := prog.Resolve(call)
			if !ok {
				continue
			}
			if rec, ok := engine.Evaluate(site); ok {
				recs = append(recs, rec)
			}
		}
		if err := testkit.CheckRecordInvariants(fs, recs); err != nil {
			t.Fatalf("record invariants: %v", err)
		}
	})
}
