// Package snapshot reads and writes exported symbol models so hosts with
// their own compiler can run the rules without the C# adapter.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is written by Encode; Decode accepts any version up to it.
const CurrentVersion = 1

// ErrInvalid marks a snapshot that decodes but breaks referential integrity.
var ErrInvalid = errors.New("invalid snapshot")

// Format is a snapshot encoding.
type Format string

const (
	FormatMsgpack Format = "msgpack"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown snapshot extension %q (want .msgpack, .mp, .json, .yaml)", filepath.Ext(path))
	}
}

// Snapshot is the interchange document.
type Snapshot struct {
	Version    int         `json:"version" yaml:"version" msgpack:"version" validate:"gte=1"`
	Files      []File      `json:"files" yaml:"files" msgpack:"files" validate:"dive"`
	Signatures []Signature `json:"signatures" yaml:"signatures" msgpack:"signatures" validate:"dive"`
	Calls      []Call      `json:"calls" yaml:"calls" msgpack:"calls" validate:"dive"`
}

// File is a source file; Content is optional and read from Path when absent.
type File struct {
	Path    string  `json:"path" yaml:"path" msgpack:"path" validate:"required"`
	Content *string `json:"content,omitempty" yaml:"content,omitempty" msgpack:"content,omitempty"`
}

// Span is a byte range in Files[File].
type Span struct {
	File  int    `json:"file" yaml:"file" msgpack:"file" validate:"gte=0"`
	Start uint32 `json:"start" yaml:"start" msgpack:"start"`
	End   uint32 `json:"end" yaml:"end" msgpack:"end" validate:"gtefield=Start"`
}

// Member is a folded well-known member.
type Member struct {
	Type    string  `json:"type" yaml:"type" msgpack:"type"`
	Name    string  `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Static  bool    `json:"static,omitempty" yaml:"static,omitempty" msgpack:"static,omitempty"`
	Literal *string `json:"literal,omitempty" yaml:"literal,omitempty" msgpack:"literal,omitempty"`
	Arg     *Member `json:"arg,omitempty" yaml:"arg,omitempty" msgpack:"arg,omitempty"`
}

// Expr is an argument or default value with its folded constant, if any.
type Expr struct {
	Text  string  `json:"text" yaml:"text" msgpack:"text"`
	Span  Span    `json:"span" yaml:"span" msgpack:"span"`
	Value *Member `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
}

// Param is a declared parameter.
type Param struct {
	Name     string `json:"name" yaml:"name" msgpack:"name"`
	Type     string `json:"type" yaml:"type" msgpack:"type" validate:"required"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty" msgpack:"optional,omitempty"`
	Default  *Expr  `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
	Params   bool   `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
}

// Signature is a method or constructor; calls refer to it by index.
type Signature struct {
	ContainingType string  `json:"containing_type" yaml:"containing_type" msgpack:"containing_type" validate:"required"`
	Family         string  `json:"family,omitempty" yaml:"family,omitempty" msgpack:"family,omitempty"`
	Name           string  `json:"name" yaml:"name" msgpack:"name" validate:"required"`
	ReturnType     string  `json:"return_type,omitempty" yaml:"return_type,omitempty" msgpack:"return_type,omitempty"`
	Static         bool    `json:"static,omitempty" yaml:"static,omitempty" msgpack:"static,omitempty"`
	Constructor    bool    `json:"constructor,omitempty" yaml:"constructor,omitempty" msgpack:"constructor,omitempty"`
	Decl           *Span   `json:"decl,omitempty" yaml:"decl,omitempty" msgpack:"decl,omitempty"`
	Params         []Param `json:"params" yaml:"params" msgpack:"params" validate:"dive"`
}

// Call is a resolved call site; a nil argument was omitted by the caller.
type Call struct {
	Method int     `json:"method" yaml:"method" msgpack:"method" validate:"gte=0"`
	Caller string  `json:"caller" yaml:"caller" msgpack:"caller"`
	Span   Span    `json:"span" yaml:"span" msgpack:"span"`
	Args   []*Expr `json:"args" yaml:"args" msgpack:"args"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross references.
func (s *Snapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.Version > CurrentVersion {
		return fmt.Errorf("%w: version %d is newer than %d", ErrInvalid, s.Version, CurrentVersion)
	}
	checkSpan := func(where string, sp Span) error {
		if sp.File >= len(s.Files) {
			return fmt.Errorf("%w: %s refers to file %d of %d", ErrInvalid, where, sp.File, len(s.Files))
		}
		return nil
	}
	for i, sig := range s.Signatures {
		if sig.Decl != nil {
			if err := checkSpan(fmt.Sprintf("signature %d", i), *sig.Decl); err != nil {
				return err
			}
		}
		for j, p := range sig.Params {
			if p.Optional && p.Default == nil {
				return fmt.Errorf("%w: signature %d parameter %d is optional without default", ErrInvalid, i, j)
			}
			if p.Default != nil {
				if err := checkSpan(fmt.Sprintf("signature %d parameter %d", i, j), p.Default.Span); err != nil {
					return err
				}
			}
		}
	}
	for i, c := range s.Calls {
		if c.Method >= len(s.Signatures) {
			return fmt.Errorf("%w: call %d refers to signature %d of %d", ErrInvalid, i, c.Method, len(s.Signatures))
		}
		if want := len(s.Signatures[c.Method].Params); len(c.Args) != want {
			return fmt.Errorf("%w: call %d has %d arguments for %d parameters", ErrInvalid, i, len(c.Args), want)
		}
		if err := checkSpan(fmt.Sprintf("call %d", i), c.Span); err != nil {
			return err
		}
		for j, a := range c.Args {
			if a == nil {
				continue
			}
			if err := checkSpan(fmt.Sprintf("call %d argument %d", i, j), a.Span); err != nil {
				return err
			}
		}
	}
	return nil
}

// Decode parses data in the given format and validates the result.
func Decode(data []byte, format Format) (*Snapshot, error) {
	var s Snapshot
	var err error
	switch format {
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &s)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&s)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", format, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Read loads a snapshot file, choosing the decoder by extension.
func Read(path string) (*Snapshot, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data, format)
}

// Encode writes s in the given format.
func Encode(w io.Writer, s *Snapshot, format Format) error {
	if s.Version == 0 {
		s.Version = CurrentVersion
	}
	switch format {
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetOmitEmpty(true)
		return enc.Encode(s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown snapshot format %q", format)
	}
}

// Write encodes s to path, choosing the format by extension.
func Write(path string, s *Snapshot) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, s, format); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
