package lints

import (
	"github.com/peplint/peplint/internal/python"
	tt "github.com/peplint/peplint/internal/types"
)

// Message codes, following the original PEP 8 import checker catalog.
const (
	CodeSeparateImports   = "C7001"
	CodeImportsAtTop      = "C7002"
	CodeGroupOrder        = "C7003"
	CodeAlphabeticalOrder = "C7004"
	CodeRelativeImport    = "C7005"
	CodeBareBeforeFrom    = "C7006"
	categoryImports       = "imports"
	msgSeparateImports    = "imports should be on separate lines"
	msgImportsAtTop       = "imports should be at the top of the file"
	msgRelativeImport     = "relative imports are highly discouraged"
)

func newIssue(code string, imp *python.ImportStatement, filename, message string, severity tt.Severity) tt.Issue {
	return tt.Issue{
		Rule:     code,
		Category: categoryImports,
		Filename: filename,
		Message:  message,
		Start:    tt.Position{Filename: filename, Line: imp.Line, Column: imp.Column},
		End:      tt.Position{Filename: filename, Line: imp.EndLine, Column: imp.EndColumn},
		Severity: severity,
	}
}

// DetectJointImports flags bare import statements that import several
// modules jointly, e.g. `import sys, os`. One issue per statement;
// `from subprocess import Popen, PIPE` is fine.
func DetectJointImports(filename string, file *python.File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, imp := range file.Imports {
		if imp.Kind == python.KindBare && len(imp.Names) > 1 {
			issues = append(issues, newIssue(CodeSeparateImports, imp, filename, msgSeparateImports, severity))
		}
	}
	return issues, nil
}
