package internal

import (
	"github.com/peplint/peplint/internal/lints"
	"github.com/peplint/peplint/internal/python"
	tt "github.com/peplint/peplint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the parsed file and returns a slice of Issues.
	Check(filename string, file *python.File) ([]tt.Issue, error)

	// Code returns the message code of the lint rule, e.g. "C7001".
	Code() string

	// Name returns the name of the lint rule.
	Name() string

	// Description returns a short explanation of what the rule checks.
	Description() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type SeparateImportsRule struct {
	severity tt.Severity
}

func NewSeparateImportsRule(_ *lints.GroupClassifier) LintRule {
	return &SeparateImportsRule{severity: tt.SeverityWarning}
}

func (r *SeparateImportsRule) Check(filename string, file *python.File) ([]tt.Issue, error) {
	return lints.DetectJointImports(filename, file, r.severity)
}

func (r *SeparateImportsRule) Code() string { return lints.CodeSeparateImports }
func (r *SeparateImportsRule) Name() string { return "separate-imports" }
func (r *SeparateImportsRule) Description() string {
	return `imports should be on separate lines; "import sys, os" imports two modules jointly`
}
func (r *SeparateImportsRule) Severity() tt.Severity     { return r.severity }
func (r *SeparateImportsRule) SetSeverity(s tt.Severity) { r.severity = s }

type ImportsAtTopRule struct {
	severity tt.Severity
}

func NewImportsAtTopRule(_ *lints.GroupClassifier) LintRule {
	return &ImportsAtTopRule{severity: tt.SeverityWarning}
}

func (r *ImportsAtTopRule) Check(filename string, file *python.File) ([]tt.Issue, error) {
	return lints.DetectMisplacedImports(filename, file, r.severity)
}

func (r *ImportsAtTopRule) Code() string { return lints.CodeImportsAtTop }
func (r *ImportsAtTopRule) Name() string { return "imports-at-top" }
func (r *ImportsAtTopRule) Description() string {
	return "imports belong at the top of the file, after the module docstring and comments"
}
func (r *ImportsAtTopRule) Severity() tt.Severity     { return r.severity }
func (r *ImportsAtTopRule) SetSeverity(s tt.Severity) { r.severity = s }

type GroupOrderRule struct {
	severity   tt.Severity
	classifier *lints.GroupClassifier
}

func NewGroupOrderRule(classifier *lints.GroupClassifier) LintRule {
	return &GroupOrderRule{severity: tt.SeverityWarning, classifier: classifier}
}

func (r *GroupOrderRule) Check(filename string, file *python.File) ([]tt.Issue, error) {
	return lints.DetectGroupOrder(filename, file, r.classifier, r.severity)
}

func (r *GroupOrderRule) Code() string { return lints.CodeGroupOrder }
func (r *GroupOrderRule) Name() string { return "import-group-order" }
func (r *GroupOrderRule) Description() string {
	return "imports should be grouped: standard library, then third party, then local"
}
func (r *GroupOrderRule) Severity() tt.Severity     { return r.severity }
func (r *GroupOrderRule) SetSeverity(s tt.Severity) { r.severity = s }

type AlphabeticalOrderRule struct {
	severity   tt.Severity
	classifier *lints.GroupClassifier
}

func NewAlphabeticalOrderRule(classifier *lints.GroupClassifier) LintRule {
	return &AlphabeticalOrderRule{severity: tt.SeverityWarning, classifier: classifier}
}

func (r *AlphabeticalOrderRule) Check(filename string, file *python.File) ([]tt.Issue, error) {
	return lints.DetectAlphabeticalOrder(filename, file, r.classifier, r.severity)
}

func (r *AlphabeticalOrderRule) Code() string { return lints.CodeAlphabeticalOrder }
func (r *AlphabeticalOrderRule) Name() string { return "import-alphabetical-order" }
func (r *AlphabeticalOrderRule) Description() string {
	return "stricter version of " + lints.CodeGroupOrder + ": imports within each group should also be sorted alphabetically"
}
func (r *AlphabeticalOrderRule) Severity() tt.Severity     { return r.severity }
func (r *AlphabeticalOrderRule) SetSeverity(s tt.Severity) { r.severity = s }

type RelativeImportRule struct {
	severity tt.Severity
}

func NewRelativeImportRule(_ *lints.GroupClassifier) LintRule {
	return &RelativeImportRule{severity: tt.SeverityWarning}
}

func (r *RelativeImportRule) Check(filename string, file *python.File) ([]tt.Issue, error) {
	return lints.DetectRelativeImports(filename, file, r.severity)
}

func (r *RelativeImportRule) Code() string { return lints.CodeRelativeImport }
func (r *RelativeImportRule) Name() string { return "relative-import" }
func (r *RelativeImportRule) Description() string {
	return "relative imports for intra-package imports are discouraged; use the absolute package path"
}
func (r *RelativeImportRule) Severity() tt.Severity     { return r.severity }
func (r *RelativeImportRule) SetSeverity(s tt.Severity) { r.severity = s }

type BareBeforeFromRule struct {
	severity   tt.Severity
	classifier *lints.GroupClassifier
}

func NewBareBeforeFromRule(classifier *lints.GroupClassifier) LintRule {
	return &BareBeforeFromRule{severity: tt.SeverityWarning, classifier: classifier}
}

func (r *BareBeforeFromRule) Check(filename string, file *python.File) ([]tt.Issue, error) {
	return lints.DetectBareAfterFrom(filename, file, r.classifier, r.severity)
}

func (r *BareBeforeFromRule) Code() string { return lints.CodeBareBeforeFrom }
func (r *BareBeforeFromRule) Name() string { return "bare-before-from" }
func (r *BareBeforeFromRule) Description() string {
	return `bare imports ("import x") should precede from-imports within their group`
}
func (r *BareBeforeFromRule) Severity() tt.Severity     { return r.severity }
func (r *BareBeforeFromRule) SetSeverity(s tt.Severity) { r.severity = s }
