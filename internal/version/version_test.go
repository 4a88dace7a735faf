package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestDefaultVersionIsSemantic(t *testing.T) {
	core, _, _ := strings.Cut(Version, "-")
	if parts := strings.Split(core, "."); len(parts) != 3 {
		t.Fatalf("Version %q is not major.minor.patch", Version)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want []string
	}{
		{"bare", Info{Version: "1.2.3", GoVersion: "go1.25"}, []string{"globalint 1.2.3", "go1.25"}},
		{"commit truncated", Info{Version: "1.2.3", GitCommit: "abcdef0123456789", GoVersion: "go1.25"}, []string{"(abcdef012345)"}},
		{"date", Info{Version: "1.2.3", BuildDate: "2026-01-15", GoVersion: "go1.25"}, []string{"built 2026-01-15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("%q does not contain %q", got, w)
				}
			}
		})
	}
}

func TestColoredWithoutColor(t *testing.T) {
	prevNoColor, prevVersion := color.NoColor, Version
	t.Cleanup(func() { color.NoColor, Version = prevNoColor, prevVersion })
	color.NoColor = true

	for _, v := range []string{"0.1.0-dev", "2.3.4", "weird"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestCurrentReflectsOverrides(t *testing.T) {
	prev := GitCommit
	t.Cleanup(func() { GitCommit = prev })
	GitCommit = "abc123"
	if Current().GitCommit != "abc123" {
		t.Fatal("Current() must read the package variables")
	}
}
