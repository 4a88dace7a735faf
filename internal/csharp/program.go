package csharp

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"golang.org/x/sync/errgroup"

	"globalint/internal/catalog"
	"globalint/internal/source"
	"globalint/internal/symbols"
)

// Program is the symbol model of a set of C# files. It is read-only after
// Load and safe for concurrent queries.
type Program struct {
	fs       *source.FileSet
	cat      *catalog.Catalog
	files    []*fileUnit
	types    map[string]*userType // canonical name -> type
	simple   map[string][]string  // simple name -> canonical names
	families map[string]symbols.SiblingSet
	decls    map[nodeKey]*symbols.MethodSignature
	typeDecl map[nodeKey]*userType
}

// nodeKey identifies a declaration node across walks.
type nodeKey struct {
	file  source.FileID
	start uint32
}

func keyOf(f *fileUnit, n *sitter.Node) nodeKey {
	return nodeKey{file: f.id, start: n.StartByte()}
}

type fileUnit struct {
	id        source.FileID
	src       []byte
	tree      *sitter.Tree
	usings    []string
	calls     []*Call
	hasErrors bool
}

// Options tune Load.
type Options struct {
	// Jobs bounds parallel parsing; <= 0 means one parser per file.
	Jobs    int
	Catalog *catalog.Catalog
}

// NewParser returns a tree-sitter parser configured for C#.
// Parsers are not safe for concurrent use.
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())
	return p
}

// Load parses the given files and builds the model over all of them.
func Load(ctx context.Context, fs *source.FileSet, ids []source.FileID, opts Options) (*Program, error) {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	p := &Program{
		fs:       fs,
		cat:      cat,
		files:    make([]*fileUnit, len(ids)),
		types:    make(map[string]*userType),
		simple:   make(map[string][]string),
		families: make(map[string]symbols.SiblingSet),
		decls:    make(map[nodeKey]*symbols.MethodSignature),
		typeDecl: make(map[nodeKey]*userType),
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, id := range ids {
		g.Go(func() error {
			file := fs.Get(id)
			tree, err := NewParser().ParseCtx(gctx, nil, file.Content)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file.Path, err)
			}
			p.files[i] = &fileUnit{
				id:        id,
				src:       file.Content,
				tree:      tree,
				hasErrors: tree.RootNode().HasError(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.Close()
		return nil, err
	}

	// declarations of every file first, bodies may reference any of them
	var pending []pendingMember
	for _, f := range p.files {
		pending = append(pending, p.collectDecls(f)...)
	}
	for _, m := range pending {
		p.declareMember(m.owner, m.file, m.node)
	}
	p.indexFamilies()
	for _, f := range p.files {
		p.collectCalls(f)
	}
	return p, nil
}

// Close releases the syntax trees.
func (p *Program) Close() {
	for _, f := range p.files {
		if f != nil && f.tree != nil {
			f.tree.Close()
			f.tree = nil
		}
	}
}

// Files lists the file ids in load order.
func (p *Program) Files() []source.FileID {
	out := make([]source.FileID, 0, len(p.files))
	for _, f := range p.files {
		out = append(out, f.id)
	}
	return out
}

// HasSyntaxErrors reports whether tree-sitter recovered from errors in file.
func (p *Program) HasSyntaxErrors(id source.FileID) bool {
	for _, f := range p.files {
		if f.id == id {
			return f.hasErrors
		}
	}
	return false
}

// SyntaxError returns the span of the first error or missing node of file.
func (p *Program) SyntaxError(id source.FileID) (source.Span, bool) {
	for _, f := range p.files {
		if f.id != id || !f.hasErrors || f.tree == nil {
			continue
		}
		if n := firstError(f.tree.RootNode()); n != nil {
			return spanOf(f, n), true
		}
		return source.Span{File: id}, true
	}
	return source.Span{}, false
}

func firstError(n *sitter.Node) *sitter.Node {
	if n == nil || !n.HasError() && !n.IsMissing() {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if e := firstError(n.Child(i)); e != nil {
			return e
		}
	}
	return n
}

// Calls returns every call and object creation of all files.
func (p *Program) Calls() []symbols.CallExpr {
	var out []symbols.CallExpr
	for _, f := range p.files {
		for _, c := range f.calls {
			out = append(out, c)
		}
	}
	return out
}

// CallsIn returns the calls of one file.
func (p *Program) CallsIn(id source.FileID) []symbols.CallExpr {
	for _, f := range p.files {
		if f.id != id {
			continue
		}
		out := make([]symbols.CallExpr, 0, len(f.calls))
		for _, c := range f.calls {
			out = append(out, c)
		}
		return out
	}
	return nil
}

var _ symbols.Unit = (*Program)(nil)
