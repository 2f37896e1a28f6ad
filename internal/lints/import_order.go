package lints

import (
	"fmt"
	"sort"
	"strings"

	"github.com/peplint/peplint/internal/python"
	tt "github.com/peplint/peplint/internal/types"
)

// DetectGroupOrder flags module-level imports whose group rank is lower
// than a preceding import's rank: standard library imports come first,
// then third party, then local/application imports.
func DetectGroupOrder(filename string, file *python.File, classifier *GroupClassifier, severity tt.Severity) ([]tt.Issue, error) {
	imports := file.TopLevelImports()

	var issues []tt.Issue
	maxRank := GroupStdlib
	var maxImport *python.ImportStatement

	for _, imp := range imports {
		group := classifier.Classify(imp)
		if maxImport != nil && group < maxRank {
			message := fmt.Sprintf(
				"imports are out of order: %s import follows %s import on line %d",
				group, maxRank, maxImport.Line,
			)
			issues = append(issues, newIssue(CodeGroupOrder, imp, filename, message, severity))
			continue
		}
		if maxImport == nil || group > maxRank {
			maxRank = group
			maxImport = imp
		}
	}

	if len(issues) > 0 {
		attachExpectedOrder(&issues[0], imports, classifier, false)
	}
	return issues, nil
}

// DetectAlphabeticalOrder is the stricter variant of DetectGroupOrder:
// on top of the group ordering it requires imports within each
// contiguous group to be sorted by module path.
func DetectAlphabeticalOrder(filename string, file *python.File, classifier *GroupClassifier, severity tt.Severity) ([]tt.Issue, error) {
	imports := file.TopLevelImports()

	groupIssues, _ := DetectGroupOrder(filename, file, classifier, severity)
	var issues []tt.Issue
	for _, issue := range groupIssues {
		issue.Rule = CodeAlphabeticalOrder
		issue.Suggestion = ""
		issue.Note = ""
		issues = append(issues, issue)
	}

	for _, run := range contiguousRuns(imports, classifier) {
		// suffixMin[i] is the smallest sort key among run[i:].
		suffixMin := make([][]string, len(run))
		for i := len(run) - 1; i >= 0; i-- {
			suffixMin[i] = run[i].SortKey()
			if i+1 < len(run) && compareKeys(suffixMin[i+1], suffixMin[i]) < 0 {
				suffixMin[i] = suffixMin[i+1]
			}
		}

		for i, imp := range run {
			if i+1 >= len(run) {
				break
			}
			if compareKeys(imp.SortKey(), suffixMin[i+1]) > 0 {
				message := fmt.Sprintf(
					"imports are out of order: %q should come after %q",
					imp.String(), strings.Join(suffixMin[i+1], "."),
				)
				issues = append(issues, newIssue(CodeAlphabeticalOrder, imp, filename, message, severity))
			}
		}
	}

	if len(issues) > 0 {
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].Start.Line < issues[j].Start.Line
		})
		attachExpectedOrder(&issues[0], imports, classifier, true)
	}
	return issues, nil
}

// DetectBareAfterFrom flags bare imports appearing after a from-import
// in the same contiguous group: bare imports must precede from-imports.
func DetectBareAfterFrom(filename string, file *python.File, classifier *GroupClassifier, severity tt.Severity) ([]tt.Issue, error) {
	imports := file.TopLevelImports()

	var issues []tt.Issue
	for _, run := range contiguousRuns(imports, classifier) {
		var firstFrom *python.ImportStatement
		for _, imp := range run {
			switch {
			case imp.Kind == python.KindFrom && firstFrom == nil:
				firstFrom = imp
			case imp.Kind == python.KindBare && firstFrom != nil:
				message := fmt.Sprintf(
					"imports are out of order: bare import follows from-import on line %d",
					firstFrom.Line,
				)
				issues = append(issues, newIssue(CodeBareBeforeFrom, imp, filename, message, severity))
			}
		}
	}
	return issues, nil
}

// contiguousRuns partitions the module-level imports, in file order,
// into maximal runs that share one group.
func contiguousRuns(imports []*python.ImportStatement, classifier *GroupClassifier) [][]*python.ImportStatement {
	var runs [][]*python.ImportStatement
	var current []*python.ImportStatement
	var currentGroup ImportGroup

	for _, imp := range imports {
		group := classifier.Classify(imp)
		if len(current) > 0 && group != currentGroup {
			runs = append(runs, current)
			current = nil
		}
		current = append(current, imp)
		currentGroup = group
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}

// compareKeys compares two sort keys piecewise; a key that is a prefix
// of the other sorts first, so `import os` precedes `from os import x`.
func compareKeys(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// attachExpectedOrder renders the expected import block on the first
// issue so the formatter can show it and the fixer can apply it.
func attachExpectedOrder(issue *tt.Issue, imports []*python.ImportStatement, classifier *GroupClassifier, alphabetical bool) {
	expected := ExpectedOrder(imports, classifier, alphabetical)
	if len(expected) == 0 {
		return
	}
	issue.Suggestion = strings.Join(expected, "\n")
	issue.Note = "reorder the imports as suggested, or run `peplint fix`"
	issue.Confidence = 0.0 // reordering may move statements across comments; fix handles it separately
}

// ExpectedOrder returns the canonical rendering of the given imports:
// stable-sorted by group, and within each group by sort key when
// alphabetical is set. A blank line separates consecutive groups.
func ExpectedOrder(imports []*python.ImportStatement, classifier *GroupClassifier, alphabetical bool) []string {
	type entry struct {
		group ImportGroup
		key   []string
		imp   *python.ImportStatement
	}

	entries := make([]entry, 0, len(imports))
	for _, imp := range imports {
		entries = append(entries, entry{
			group: classifier.Classify(imp),
			key:   imp.SortKey(),
			imp:   imp,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].group != entries[j].group {
			return entries[i].group < entries[j].group
		}
		if !alphabetical {
			return false
		}
		return compareKeys(entries[i].key, entries[j].key) < 0
	})

	var lines []string
	for i, e := range entries {
		if i > 0 && entries[i-1].group != e.group {
			lines = append(lines, "")
		}
		lines = append(lines, e.imp.String())
	}
	return lines
}
