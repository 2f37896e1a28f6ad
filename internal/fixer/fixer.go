// Package fixer rewrites a file's leading import block into the
// canonical PEP 8 order: grouped, alphabetically sorted, one module per
// bare import.
package fixer

import (
	"fmt"
	"os"
	"strings"

	"github.com/peplint/peplint/internal/lints"
	"github.com/peplint/peplint/internal/python"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type Fixer struct {
	DryRun     bool
	classifier *lints.GroupClassifier
}

func New(dryRun bool, classifier *lints.GroupClassifier) *Fixer {
	return &Fixer{
		DryRun:     dryRun,
		classifier: classifier,
	}
}

// Fix rewrites the file in place, or prints the pending diff in dry-run
// mode.
func (f *Fixer) Fix(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fixed, changed, err := f.Rewrite(filename, content)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if f.DryRun {
		fmt.Printf("Would fix imports in %s:\n", filename)
		fmt.Print(unifiedDiff(string(content), string(fixed)))
		return nil
	}

	if err := os.WriteFile(filename, fixed, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Printf("Fixed imports in %s\n", filename)
	return nil
}

// Rewrite returns src with its leading import block replaced by the
// canonical rendering. The second return value reports whether anything
// changed. Blocks carrying comments, standalone or trailing, or stray
// code are left alone: reordering across them could change meaning and
// rewriting would drop the comments.
func (f *Fixer) Rewrite(filename string, src []byte) ([]byte, bool, error) {
	file, err := python.ParseSource(filename, src)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse file: %w", err)
	}

	block := leadingImportBlock(file)
	if len(block) == 0 {
		return src, false, nil
	}

	lines := strings.Split(string(src), "\n")
	startLine := block[0].Line
	endLine := block[len(block)-1].EndLine
	if endLine > len(lines) {
		return src, false, nil
	}
	if !blockIsRewritable(block, lines, startLine, endLine) {
		return src, false, nil
	}

	canonical := lints.ExpectedOrder(splitJointImports(block), f.classifier, true)

	rebuilt := make([]string, 0, len(lines)-(endLine-startLine+1)+len(canonical))
	rebuilt = append(rebuilt, lines[:startLine-1]...)
	rebuilt = append(rebuilt, canonical...)
	rebuilt = append(rebuilt, lines[endLine:]...)

	out := strings.Join(rebuilt, "\n")
	return []byte(out), out != string(src), nil
}

// leadingImportBlock returns the module-level imports that sit above
// the first code line. Imports below it are misplaced; moving them up
// could change behavior, so the fixer does not touch them.
func leadingImportBlock(file *python.File) []*python.ImportStatement {
	var block []*python.ImportStatement
	for _, imp := range file.TopLevelImports() {
		if file.FirstCodeLine > 0 && imp.Line > file.FirstCodeLine {
			break
		}
		block = append(block, imp)
	}
	return block
}

// blockIsRewritable reports whether every line in the block range is
// blank or belongs to one of the import statements, with nothing after
// a statement on its final line. A trailing comment would be lost by
// the rewrite, so its line disqualifies the whole block.
func blockIsRewritable(block []*python.ImportStatement, lines []string, startLine, endLine int) bool {
	covered := make(map[int]bool)
	for _, imp := range block {
		for i := imp.Line; i <= imp.EndLine; i++ {
			covered[i] = true
		}
		last := lines[imp.EndLine-1]
		if imp.EndColumn-1 < len(last) && strings.TrimSpace(last[imp.EndColumn-1:]) != "" {
			return false
		}
	}
	for i := startLine; i <= endLine; i++ {
		if covered[i] {
			continue
		}
		if strings.TrimSpace(lines[i-1]) != "" {
			return false
		}
	}
	return true
}

// splitJointImports expands `import sys, os` into one statement per
// module so each can be placed independently.
func splitJointImports(imports []*python.ImportStatement) []*python.ImportStatement {
	var out []*python.ImportStatement
	for _, imp := range imports {
		if imp.Kind != python.KindBare || len(imp.Names) <= 1 {
			out = append(out, imp)
			continue
		}
		for _, name := range imp.Names {
			clone := *imp
			clone.Module = name.Name
			clone.Names = []python.ImportedName{name}
			out = append(out, &clone)
		}
	}
	return out
}

func unifiedDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	runes1, runes2, lineArray := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffMainRunes(runes1, runes2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var b strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
