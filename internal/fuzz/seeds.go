package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 16 << 10
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".cs") {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil || len(src) > maxSeedBytes {
			return nil
		}
		f.Add(bytes.Clone(src))
		return nil
	})
}

var languageSeeds = []string{
	``,
	`class C { void M() { string.Format("{0}", 1); } }`,
	`using System; class C { void M() { var s = "a"; s.ToUpper(); int.Parse("1"); } }`,
	`using System; static class U { static bool Same(string a, string b, StringComparison c = StringComparison.InvariantCulture) => string.Equals(a, b, c); static void M() { Same("a", "b"); } }`,
	`using System.Collections.Generic; class C { static readonly StringComparer K = StringComparer.InvariantCulture; void M() { new Dictionary<string, int>(K); } }`,
	`partial class P { void A() => B(1, 2, 3); } partial class P { void B(params int[] xs) {} }`,
	`var x = string.Compare("a", "b");`,
	`class C { void M( { }`,
	`namespace N; class C<T> where T : new() { T M() => new T(); }`,
	`class C { void M(string s) { s = s.ToLower(); s.ToLower(); s.EndsWith("x"); } }`,
}

var snapshotSeeds = []string{
	`{"version":1,"files":[],"signatures":[],"calls":[]}`,
	`{"version":1,"files":[{"path":"A.cs","content":"x"}],"signatures":[{"containing_type":"string","name":"ToUpper","return_type":"string","params":[]}],"calls":[{"method":0,"caller":"C.M()","span":{"file":0,"start":0,"end":1},"args":[]}]}`,
	`{"version":1,"calls":[{"method":3}]}`,
	`{"version":99}`,
}
