// Package suppress filters issues silenced by in-source comments.
//
// Two conventions are honored, matching what Python codebases already
// use: `# pylint: disable=C7001,C7003` and `# noqa` (optionally
// `# noqa: C7001`). A trailing comment silences its own line. A
// standalone `# pylint: disable` line silences everything from that
// line to the end of the file, mirroring pylint's block scoping; noqa
// is always line-scoped, so a standalone `# noqa` silences nothing but
// its own line.
package suppress

import (
	"regexp"
	"strings"

	tt "github.com/peplint/peplint/internal/types"
)

var (
	disableRe = regexp.MustCompile(`#\s*pylint:\s*disable=([A-Za-z0-9_,\s-]+)`)
	noqaRe    = regexp.MustCompile(`#\s*noqa(?::\s*([A-Za-z0-9_,\s-]+))?`)
)

// scope is one suppression range with the rule codes it silences.
// An empty rules set silences every rule.
type scope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// Manager holds the suppression scopes parsed from one file.
type Manager struct {
	scopes []scope
}

// ParseLines scans source lines for suppression comments.
func ParseLines(lines []string) *Manager {
	m := &Manager{}
	for i, line := range lines {
		lineNum := i + 1
		standalone := strings.HasPrefix(strings.TrimSpace(line), "#")

		rules, isDisable, ok := parseComment(line)
		if !ok {
			continue
		}

		s := scope{rules: rules, startLine: lineNum, endLine: lineNum}
		if standalone && isDisable {
			// until end of file; len(lines) is a safe upper bound
			s.endLine = len(lines)
		}
		m.scopes = append(m.scopes, s)
	}
	return m
}

// parseComment extracts the silenced rule codes from one line. The
// isDisable return distinguishes the pylint disable form, which is the
// only one that scopes past its own line. The last return is false when
// the line carries no suppression comment.
func parseComment(line string) (rules map[string]struct{}, isDisable, ok bool) {
	if match := disableRe.FindStringSubmatch(line); match != nil {
		return splitRules(match[1]), true, true
	}
	if match := noqaRe.FindStringSubmatch(line); match != nil {
		if match[1] == "" {
			return nil, false, true // bare noqa silences everything
		}
		return splitRules(match[1]), false, true
	}
	return nil, false, false
}

func splitRules(list string) map[string]struct{} {
	rules := make(map[string]struct{})
	for _, rule := range strings.Split(list, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rules[strings.ToUpper(rule)] = struct{}{}
		}
	}
	return rules
}

// IsSuppressed reports whether the rule is silenced at the given line.
func (m *Manager) IsSuppressed(line int, rule string) bool {
	for _, s := range m.scopes {
		if line < s.startLine || line > s.endLine {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[strings.ToUpper(rule)]; ok {
			return true
		}
	}
	return false
}

// Filter drops the issues silenced by the parsed comments.
func (m *Manager) Filter(issues []tt.Issue) []tt.Issue {
	if m == nil || len(m.scopes) == 0 {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !m.IsSuppressed(issue.Start.Line, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
