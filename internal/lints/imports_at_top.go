package lints

import (
	"github.com/peplint/peplint/internal/python"
	tt "github.com/peplint/peplint/internal/types"
)

// DetectMisplacedImports flags imports that do not sit at the top of
// the file: imports nested in a function, class or conditional block,
// and module-level imports preceded by a statement that is neither an
// import, a docstring nor a comment.
func DetectMisplacedImports(filename string, file *python.File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, imp := range file.Imports {
		if imp.Nested || (file.FirstCodeLine > 0 && imp.Line > file.FirstCodeLine) {
			issues = append(issues, newIssue(CodeImportsAtTop, imp, filename, msgImportsAtTop, severity))
		}
	}
	return issues, nil
}
