package fuzztests

import (
	"testing"

	"globalint/internal/rules"
	"globalint/internal/snapshot"
	"globalint/internal/source"
)

func FuzzSnapshotDecode(f *testing.F) {
	for _, seed := range snapshotSeeds {
		f.Add([]byte(seed), uint8(0))
		f.Add([]byte(seed), uint8(1))
	}

	formats := []snapshot.Format{snapshot.FormatJSON, snapshot.FormatYAML, snapshot.FormatMsgpack}
	f.Fuzz(func(t *testing.T, data []byte, which uint8) {
		if len(data) > maxFuzzInput {
			t.Skip()
		}
		snap, err := snapshot.Decode(data, formats[int(which)%len(formats)])
		if err != nil {
			return
		}

		// декодированный снимок обязан быть пригоден для движка правил
		fs := source.NewFileSet()
		ids := make([]source.FileID, len(snap.Files))
		for i, file := range snap.Files {
			var content []byte
			if file.Content != nil {
				content = []byte(*file.Content)
			}
			ids[i] = fs.AddVirtual(file.Path, content)
		}
		model := snapshot.NewModel(snap, ids)
		engine := rules.New(model)
		for _, call := range model.Calls() {
			site, ok := model.Resolve(call)
			if !ok {
				continue
			}
			rec, ok := engine.Evaluate(site)
			if !ok {
				continue
			}
			// смещения в снимке не сверяются с содержимым, проверяем только файл
			if !fs.Has(rec.Span.File) {
				t.Fatalf("record %s points to unknown file %d", rec.Rule, rec.Span.File)
			}
			if _, known := rules.Lookup(rec.Rule); !known {
				t.Fatalf("unknown rule %q", rec.Rule)
			}
		}
	})
}
