package python

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseFile reads and parses a Python source file. When source is
// non-nil it is used instead of reading filename from disk.
func ParseFile(filename string, source []byte) (*File, error) {
	if source == nil {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", filename, err)
		}
		source = content
	}
	return ParseSource(filename, source)
}

// ParseSource parses Python source bytes into a File.
func ParseSource(filename string, source []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	defer tree.Close()

	file := &File{Filename: filename}
	root := tree.RootNode()

	collectImports(root, source, false, file)
	file.FirstCodeLine = firstCodeLine(root, source)

	return file, nil
}

func isImportNode(nodeType string) bool {
	switch nodeType {
	case "import_statement", "import_from_statement", "future_import_statement":
		return true
	}
	return false
}

// collectImports walks the tree depth-first so imports come out in
// source order. nested is true once the walk has left module level.
func collectImports(node *sitter.Node, source []byte, nested bool, file *File) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if isImportNode(child.Type()) {
			if imp := lowerImport(child, source); imp != nil {
				imp.Nested = nested
				file.Imports = append(file.Imports, imp)
			}
			continue
		}
		collectImports(child, source, true, file)
	}
}

// firstCodeLine finds the first module-level statement that is neither
// an import, a docstring nor a comment.
func firstCodeLine(root *sitter.Node, source []byte) int {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch {
		case isImportNode(child.Type()):
			continue
		case child.Type() == "comment":
			continue
		case isDocstring(child):
			continue
		default:
			return int(child.StartPoint().Row) + 1
		}
	}
	return 0
}

// isDocstring treats any bare string expression statement as
// documentation; module docstrings and block-separator strings never
// count as code for the top-of-file check.
func isDocstring(node *sitter.Node) bool {
	if node.Type() != "expression_statement" || node.NamedChildCount() != 1 {
		return false
	}
	return node.NamedChild(0).Type() == "string"
}

// lowerImport converts an import node into an ImportStatement. A node
// shape the walker cannot interpret yields nil; the rules silently
// skip such statements rather than failing the file.
func lowerImport(node *sitter.Node, source []byte) *ImportStatement {
	imp := &ImportStatement{
		Line:      int(node.StartPoint().Row) + 1,
		Column:    int(node.StartPoint().Column) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		EndColumn: int(node.EndPoint().Column) + 1,
	}

	switch node.Type() {
	case "import_statement":
		imp.Kind = KindBare
		imp.Names = importedNames(node, source)
		if len(imp.Names) == 0 {
			return nil
		}
		imp.Module = imp.Names[0].Name

	case "import_from_statement":
		imp.Kind = KindFrom
		moduleNode := node.ChildByFieldName("module_name")
		if moduleNode == nil {
			return nil
		}
		imp.Module, imp.Level = moduleName(moduleNode, source)
		imp.Names = importedNames(node, source)
		if len(imp.Names) == 0 {
			return nil
		}

	case "future_import_statement":
		// `from __future__ import x`; the grammar keeps __future__ as a
		// bare keyword, not a module_name field.
		imp.Kind = KindFrom
		imp.Module = "__future__"
		imp.Names = importedNames(node, source)
		if len(imp.Names) == 0 {
			return nil
		}

	default:
		return nil
	}

	return imp
}

// moduleName extracts the dotted path and relative level from a
// dotted_name or relative_import node.
func moduleName(node *sitter.Node, source []byte) (string, int) {
	if node.Type() != "relative_import" {
		return node.Content(source), 0
	}

	level := 0
	module := ""
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import_prefix":
			level = strings.Count(child.Content(source), ".")
		case "dotted_name":
			module = child.Content(source)
		}
	}
	return module, level
}

// importedNames gathers the names on the right-hand side of the import
// keyword: plain dotted names, aliased imports and the wildcard.
func importedNames(node *sitter.Node, source []byte) []ImportedName {
	var names []ImportedName
	pastKeyword := node.Type() == "import_statement"

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !pastKeyword {
			if child.Type() == "import" {
				pastKeyword = true
			}
			continue
		}

		switch child.Type() {
		case "dotted_name", "identifier":
			names = append(names, ImportedName{Name: child.Content(source)})
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil {
				continue
			}
			imported := ImportedName{Name: name.Content(source)}
			if alias != nil {
				imported.Alias = alias.Content(source)
			}
			names = append(names, imported)
		case "wildcard_import":
			names = append(names, ImportedName{Name: "*"})
		}
	}

	return names
}

// HasPythonExtension reports whether path names a Python source file.
func HasPythonExtension(path string) bool {
	return strings.HasSuffix(path, ".py") || strings.HasSuffix(path, ".pyi")
}
