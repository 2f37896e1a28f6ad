package lints

import (
	"github.com/peplint/peplint/internal/python"
	tt "github.com/peplint/peplint/internal/types"
)

// DetectRelativeImports flags every import expressed relative to the
// current package via leading dots. Absolute paths are more portable
// and usually more readable, per PEP 8.
func DetectRelativeImports(filename string, file *python.File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, imp := range file.Imports {
		if imp.Level > 0 {
			issues = append(issues, newIssue(CodeRelativeImport, imp, filename, msgRelativeImport, severity))
		}
	}
	return issues, nil
}
