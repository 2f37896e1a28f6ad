// Package python parses Python source with tree-sitter and lowers
// import statements into the flat records the lint rules consume.
package python

import "strings"

// ImportKind distinguishes `import x` from `from x import y`.
type ImportKind int

const (
	// KindBare is a direct module import, e.g. `import os`.
	KindBare ImportKind = iota
	// KindFrom imports names from a module, e.g. `from os import path`.
	KindFrom
)

func (k ImportKind) String() string {
	if k == KindFrom {
		return "from"
	}
	return "import"
}

// ImportedName is one imported module or symbol with its optional alias.
type ImportedName struct {
	Name  string
	Alias string
}

// ImportStatement is a single parsed import. For bare imports Names
// holds the imported modules (more than one when the statement imports
// several modules jointly) and Module mirrors the first of them. For
// from-imports Module is the source module and Names the imported
// symbols. Level counts the leading dots of a relative import.
type ImportStatement struct {
	Kind   ImportKind
	Module string
	Names  []ImportedName
	Level  int

	// Nested is set when the import does not sit at module level.
	Nested bool

	Line, Column       int // 1-based start of the statement
	EndLine, EndColumn int
}

// ModulePieces returns the dotted module path split into segments.
func (s *ImportStatement) ModulePieces() []string {
	if s.Module == "" {
		return nil
	}
	return strings.Split(s.Module, ".")
}

// TopLevelModule returns the first segment of the module path, the
// piece group classification is decided on.
func (s *ImportStatement) TopLevelModule() string {
	pieces := s.ModulePieces()
	if len(pieces) == 0 {
		return ""
	}
	return pieces[0]
}

// SortKey is the ordering key for the alphabetical import checks.
// Bare imports sort by their module path; from-imports additionally
// sort by the first imported name, mirroring the PEP 8 convention of
// ordering `from x import a` after `import x`.
func (s *ImportStatement) SortKey() []string {
	key := s.ModulePieces()
	if s.Kind == KindFrom && len(s.Names) > 0 {
		key = append(append([]string{}, key...), s.Names[0].Name)
	}
	return key
}

// String renders the statement back to canonical source form.
func (s *ImportStatement) String() string {
	var b strings.Builder
	if s.Kind == KindBare {
		b.WriteString("import ")
		b.WriteString(joinNames(s.Names))
		return b.String()
	}
	b.WriteString("from ")
	b.WriteString(strings.Repeat(".", s.Level))
	b.WriteString(s.Module)
	b.WriteString(" import ")
	b.WriteString(joinNames(s.Names))
	return b.String()
}

func joinNames(names []ImportedName) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n.Alias != "" {
			parts = append(parts, n.Name+" as "+n.Alias)
		} else {
			parts = append(parts, n.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// File is the parsed view of one Python source file that the lint
// rules operate on.
type File struct {
	Filename string

	// Imports lists every import in source order, nested ones included.
	Imports []*ImportStatement

	// FirstCodeLine is the 1-based line of the first module-level
	// statement that is neither an import, a docstring nor a comment.
	// Zero when no such statement exists.
	FirstCodeLine int
}

// TopLevelImports returns the module-level imports in source order.
// The ordering checks look only at these; nested imports are the
// top-of-file check's business.
func (f *File) TopLevelImports() []*ImportStatement {
	out := make([]*ImportStatement, 0, len(f.Imports))
	for _, imp := range f.Imports {
		if !imp.Nested {
			out = append(out, imp)
		}
	}
	return out
}
