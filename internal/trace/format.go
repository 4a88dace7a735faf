package trace

import (
	"io"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto   Format = iota
	FormatText          // zap console encoding
	FormatNDJSON        // zap JSON encoding, one event per line
)

// ParseFormat accepts auto|text|ndjson.
func ParseFormat(s string) Format {
	switch s {
	case "text":
		return FormatText
	case "ndjson", "json":
		return FormatNDJSON
	default:
		return FormatAuto
	}
}

// newEventLogger builds a zap logger that writes every entry to w.
func newEventLogger(w io.Writer, format Format) *zap.Logger {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		MessageKey:     "name",
		LevelKey:       "",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
	}
	var enc zapcore.Encoder
	if format == FormatNDJSON {
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg.ConsoleSeparator = " "
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
	return zap.New(core)
}

// writeEvent logs ev as one structured entry.
func writeEvent(log *zap.Logger, ev *Event) {
	fields := make([]zap.Field, 0, 8+len(ev.Extra))
	fields = append(fields,
		zap.Uint64("seq", ev.Seq),
		zap.String("kind", ev.Kind.String()),
		zap.String("scope", ev.Scope.String()),
		zap.Uint64("span", ev.SpanID),
	)
	if ev.ParentID != 0 {
		fields = append(fields, zap.Uint64("parent", ev.ParentID))
	}
	if ev.GID != 0 {
		fields = append(fields, zap.Uint64("gid", ev.GID))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	keys := make([]string, 0, len(ev.Extra))
	for k := range ev.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, ev.Extra[k]))
	}
	if ce := log.Check(zapcore.InfoLevel, ev.Name); ce != nil {
		ce.Time = ev.Time
		ce.Write(fields...)
	}
}
