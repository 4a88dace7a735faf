// Package catalog exposes the embedded description of well-known framework
// types: aliases, properties, enum members and method overloads.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"globalint/internal/symbols"
)

//go:embed bcl.yaml
var bclYAML []byte

// Kind of a catalog type.
type Kind string

const (
	KindClass     Kind = "class"
	KindStruct    Kind = "struct"
	KindEnum      Kind = "enum"
	KindInterface Kind = "interface"
)

type fileDoc struct {
	Types []typeDoc `yaml:"types"`
}

type typeDoc struct {
	Name             string            `yaml:"name"`
	Kind             Kind              `yaml:"kind"`
	Aliases          []string          `yaml:"aliases"`
	Implements       []string          `yaml:"implements"`
	StaticProperties map[string]string `yaml:"static_properties"`
	Properties       map[string]string `yaml:"properties"`
	Members          []string          `yaml:"members"`
	Methods          []string          `yaml:"methods"`
}

// Type is one framework type.
type Type struct {
	Name             string // canonical, generic parameters included
	Kind             Kind
	Implements       []string
	StaticProperties map[string]string // name -> canonical type
	Properties       map[string]string
	members          map[string]bool
	methods          map[string][]*symbols.MethodSignature
	ctors            []*symbols.MethodSignature
	typeParams       []string

	mu          sync.Mutex
	constructed map[string][]*symbols.MethodSignature // constructed name -> ctors
}

// Catalog indexes framework types by canonical name and by alias.
type Catalog struct {
	types   map[string]*Type
	aliases map[string]string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded description.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(bclYAML)
	})
	if defaultErr != nil {
		panic(fmt.Errorf("embedded catalog: %w", defaultErr))
	}
	return defaultCatalog
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{
		types:   make(map[string]*Type, len(doc.Types)),
		aliases: make(map[string]string),
	}
	for _, td := range doc.Types {
		if td.Name == "" {
			return nil, fmt.Errorf("catalog type without name")
		}
		if _, dup := c.types[td.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog type %s", td.Name)
		}
		t, err := buildType(td)
		if err != nil {
			return nil, err
		}
		c.types[t.Name] = t
		c.aliases[baseName(t.Name)] = t.Name
		c.aliases[symbols.SimpleName(t.Name)] = t.Name
		for _, alias := range td.Aliases {
			c.aliases[alias] = t.Name
		}
	}
	return c, nil
}

func buildType(td typeDoc) (*Type, error) {
	t := &Type{
		Name:             td.Name,
		Kind:             td.Kind,
		Implements:       td.Implements,
		StaticProperties: selfMap(td.StaticProperties, td.Name),
		Properties:       selfMap(td.Properties, td.Name),
		members:          make(map[string]bool, len(td.Members)),
		methods:          make(map[string][]*symbols.MethodSignature),
		typeParams:       typeArgs(td.Name),
	}
	if t.Kind == "" {
		t.Kind = KindClass
	}
	for _, m := range td.Members {
		t.members[m] = true
	}
	for _, line := range td.Methods {
		sig, err := ParseSignature(line, td.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", td.Name, err)
		}
		if sig.IsConstructor {
			t.ctors = append(t.ctors, sig)
			continue
		}
		t.methods[sig.Name] = append(t.methods[sig.Name], sig)
	}
	return t, nil
}

func selfMap(in map[string]string, self string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = CanonicalType(v, self)
	}
	return out
}

// baseName strips generic parameters: Dictionary<TKey, TValue> -> Dictionary.
func baseName(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return name[:i]
	}
	return name
}

// Lookup finds a type by canonical name, namespace-qualified base name or alias.
// Generic arguments in name are ignored.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	if t, ok := c.types[name]; ok {
		return t, true
	}
	if canon, ok := c.aliases[baseName(name)]; ok {
		return c.types[canon], true
	}
	return nil, false
}

// Methods returns the overloads of name declared by typ.
func (t *Type) Methods(name string) []*symbols.MethodSignature {
	return t.methods[name]
}

// Constructors returns the declared constructors.
func (t *Type) Constructors() []*symbols.MethodSignature {
	return t.ctors
}

// IsEnumMember reports whether name is a member of an enum type.
func (t *Type) IsEnumMember(name string) bool {
	return t.members[name]
}

// AssignableTo reports whether a value of canonical type from can be passed
// where to is expected, using declared interfaces and comparer categories.
func (c *Catalog) AssignableTo(from, to string) bool {
	if from == to || to == symbols.TypeObject {
		return true
	}
	if symbols.CategoryOf(to) == symbols.CategoryComparer && symbols.CategoryOf(from) == symbols.CategoryComparer {
		return true
	}
	t, ok := c.Lookup(from)
	if !ok {
		return false
	}
	for _, iface := range t.Implements {
		if iface == to {
			return true
		}
	}
	return false
}
