package trace

import "strings"

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring buffer only, dumped on crash
	LevelPhase        // driver and passes
	LevelDetail       // plus files
	LevelDebug        // plus call sites
)

func (l Level) String() string { return levelNames.name(l) }

// ParseLevel accepts off|error|phase|detail|debug in any case; empty is off.
func ParseLevel(s string) (Level, error) {
	if strings.TrimSpace(s) == "" {
		return LevelOff, nil
	}
	return levelNames.parse(s)
}

// reach is the finest scope each level lets through; the error level keeps
// phases for the crash dump of the ring.
var reach = [...]Scope{
	LevelOff:    0,
	LevelError:  ScopePass,
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeCall,
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(reach) && scope <= reach[l]
}
