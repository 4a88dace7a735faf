package trace

import (
	"fmt"
	"strings"
)

// enum maps the small integer enums of this package to their flag names.
type enum[T ~uint8] struct {
	what  string
	names []string // index is the value; "" marks an unused slot
}

func (e enum[T]) name(v T) string {
	if int(v) < len(e.names) && e.names[v] != "" {
		return e.names[v]
	}
	return "unknown"
}

func (e enum[T]) parse(s string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range e.names {
		if n != "" && n == s {
			return T(i), nil // #nosec G115 -- names has fewer than 256 entries
		}
	}
	valid := make([]string, 0, len(e.names))
	for _, n := range e.names {
		if n != "" {
			valid = append(valid, n)
		}
	}
	return 0, fmt.Errorf("invalid %s: %q (expected: %s)", e.what, s, strings.Join(valid, "|"))
}

var (
	levelNames = enum[Level]{"trace level", []string{"off", "error", "phase", "detail", "debug"}}
	modeNames  = enum[StorageMode]{"storage mode", []string{"", "stream", "ring", "both"}}
	kindNames  = enum[Kind]{"event kind", []string{"", "begin", "end", "point", "heartbeat"}}
	scopeNames = enum[Scope]{"scope", []string{"", "driver", "pass", "file", "call"}}
)
