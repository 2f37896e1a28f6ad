package internal

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/peplint/peplint/internal/lints"
	"github.com/peplint/peplint/internal/python"
	"github.com/peplint/peplint/internal/suppress"
	tt "github.com/peplint/peplint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	rootDir      string
	classifier   *lints.GroupClassifier
	rules        map[string]LintRule
	ignoredRules map[string]bool
	ignoredPaths []string
	cache        *Cache

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching atomic.Bool
}

// NewEngine creates a new lint engine rooted at rootDir. The rules map
// carries per-rule configuration keyed by message code; localModules
// and knownThirdParty adjust the import group classification.
func NewEngine(rootDir string, rules map[string]tt.ConfigRule, localModules, knownThirdParty []string) (*Engine, error) {
	engine := &Engine{
		rootDir:    rootDir,
		classifier: lints.NewGroupClassifier(rootDir, localModules, knownThirdParty),
	}
	engine.applyRules(rules)

	return engine, nil
}

// ruleConstructor builds a rule bound to the engine's classifier.
type ruleConstructor func(classifier *lints.GroupClassifier) LintRule

type ruleMap map[string]ruleConstructor

// allRuleConstructors maps message codes to their rule constructors.
var allRuleConstructors = ruleMap{
	lints.CodeSeparateImports:   NewSeparateImportsRule,
	lints.CodeImportsAtTop:      NewImportsAtTopRule,
	lints.CodeGroupOrder:        NewGroupOrderRule,
	lints.CodeAlphabeticalOrder: NewAlphabeticalOrderRule,
	lints.CodeRelativeImport:    NewRelativeImportRule,
	lints.CodeBareBeforeFrom:    NewBareBeforeFromRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			// unknown rule, continue to the next one
			continue
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		r.SetSeverity(rule.Severity)
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRule := range allRuleConstructors {
		e.rules[key] = newRule(e.classifier)
	}
}

func (e *Engine) findRule(code string) LintRule {
	if rule, ok := e.rules[strings.ToUpper(code)]; ok {
		return rule
	}
	return nil
}

// Rules returns the registered rules sorted by code.
func (e *Engine) Rules() []LintRule {
	codes := make([]string, 0, len(e.rules))
	for code := range e.rules {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]LintRule, 0, len(codes))
	for _, code := range codes {
		out = append(out, e.rules[code])
	}
	return out
}

// Classifier exposes the engine's import group classifier so the fixer
// can share its module resolution.
func (e *Engine) Classifier() *lints.GroupClassifier {
	return e.classifier
}

// Run applies all lint rules to the given file and returns its issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if !python.HasPythonExtension(filename) {
		return nil, fmt.Errorf("%s is not a Python source file", filename)
	}

	if e.IsPathIgnored(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return issues, nil
		}
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	issues, err := e.run(filename, source)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, issues); err != nil {
			return nil, fmt.Errorf("error caching results: %w", err)
		}
	}
	return issues, nil
}

// RunSource applies all lint rules to the given source bytes.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.run("", source)
}

func (e *Engine) run(filename string, source []byte) ([]tt.Issue, error) {
	file, err := python.ParseSource(filename, source)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	suppressions := suppress.ParseLines(strings.Split(string(source), "\n"))

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Code()] {
				return
			}
			issues, err := r.Check(filename, file)
			if err != nil {
				return
			}

			kept := suppressions.Filter(issues)

			mu.Lock()
			allIssues = append(allIssues, kept...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	sortIssues(allIssues)
	return allIssues, nil
}

// sortIssues orders issues by position, then code, so repeated runs on
// the same input produce an identical sequence.
func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Start.Line != issues[j].Start.Line {
			return issues[i].Start.Line < issues[j].Start.Line
		}
		if issues[i].Start.Column != issues[j].Start.Column {
			return issues[i].Start.Column < issues[j].Start.Column
		}
		return issues[i].Rule < issues[j].Rule
	})
}

// IgnoreRule disables a rule by its message code.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[strings.ToUpper(rule)] = true
}

// IgnorePath registers a path prefix to skip when walking directories.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, path)
}

// IsPathIgnored reports whether the path matches an ignored prefix.
func (e *Engine) IsPathIgnored(path string) bool {
	for _, ignored := range e.ignoredPaths {
		if path == ignored || strings.HasPrefix(path, strings.TrimSuffix(ignored, "/")+"/") {
			return true
		}
	}
	return false
}

// SetCache enables the on-disk result cache rooted at cacheDir.
func (e *Engine) SetCache(cacheDir string) error {
	cache, err := NewCache(cacheDir)
	if err != nil {
		return err
	}
	e.cache = cache
	return nil
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
