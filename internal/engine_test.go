package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peplint/peplint/internal/lints"
	tt "github.com/peplint/peplint/internal/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine("", nil, nil, nil)
	require.NoError(t, err)
	return engine
}

func ruleCodes(issues []tt.Issue) []string {
	var codes []string
	for _, issue := range issues {
		codes = append(codes, issue.Rule)
	}
	return codes
}

func TestEngineRunSource(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected []string
	}{
		{
			name:     "clean file",
			code:     "import json\nimport os\nimport sys\n\n\ndef main():\n    pass\n",
			expected: nil,
		},
		{
			name:     "joint import",
			code:     "import sys, os\n",
			expected: []string{lints.CodeSeparateImports},
		},
		{
			name:     "relative import",
			code:     "from . import sibling\n",
			expected: []string{lints.CodeRelativeImport},
		},
		{
			name: "bare after from",
			code: "import sys\nfrom os import path\nimport os\n",
			expected: []string{
				lints.CodeAlphabeticalOrder, // `import sys` sorts after os
				lints.CodeAlphabeticalOrder, // `from os import path` sorts after `import os`
				lints.CodeBareBeforeFrom,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine(t)
			issues, err := engine.RunSource([]byte(tc.code))
			require.NoError(t, err)

			assert.Equal(t, tc.expected, ruleCodes(issues))
		})
	}
}

func TestEngineRunSourceDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	code := []byte("import myapp\nimport sys, os\nfrom . import x\n")

	first, err := engine.RunSource(code)
	require.NoError(t, err)
	second, err := engine.RunSource(code)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngineIgnoreRule(t *testing.T) {
	engine := newTestEngine(t)
	engine.IgnoreRule("C7001")

	issues, err := engine.RunSource([]byte("import os, sys\n"))
	require.NoError(t, err)

	assert.NotContains(t, ruleCodes(issues), lints.CodeSeparateImports)
}

func TestEngineConfigSeverity(t *testing.T) {
	rules := map[string]tt.ConfigRule{
		"C7001": {Severity: tt.SeverityError},
		"C7004": {Severity: tt.SeverityOff},
	}
	engine, err := NewEngine("", rules, nil, nil)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("import sys, os\n"))
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, lints.CodeSeparateImports, issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestEngineSuppressionComments(t *testing.T) {
	engine := newTestEngine(t)

	issues, err := engine.RunSource([]byte("import sys, os  # pylint: disable=C7001,C7004\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = engine.RunSource([]byte("from . import x  # noqa\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineRunFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sample.py")
	err := os.WriteFile(path, []byte("import sys, os\n"), 0o644)
	require.NoError(t, err)

	engine := newTestEngine(t)
	issues, err := engine.Run(path)
	require.NoError(t, err)

	require.NotEmpty(t, issues)
	assert.Equal(t, path, issues[0].Filename)
}

func TestEngineRunRejectsNonPythonFile(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Run("main.go")
	assert.Error(t, err)
}

func TestEngineLocalModulesConfig(t *testing.T) {
	engine, err := NewEngine("", nil, []string{"myapp"}, nil)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("import myapp\nimport os\n"))
	require.NoError(t, err)

	codes := ruleCodes(issues)
	assert.Contains(t, codes, lints.CodeGroupOrder)
}

func TestEngineProjectLocalModuleDetection(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "myapp"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "myapp", "__init__.py"), nil, 0o644))

	engine, err := NewEngine(tmpDir, nil, nil, nil)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("import myapp\nimport os\n"))
	require.NoError(t, err)

	assert.Contains(t, ruleCodes(issues), lints.CodeGroupOrder)
}

func TestEngineRules(t *testing.T) {
	engine := newTestEngine(t)
	rules := engine.Rules()

	require.Len(t, rules, 6)
	assert.Equal(t, "C7001", rules[0].Code())
	assert.Equal(t, "C7006", rules[5].Code())
	for _, rule := range rules {
		assert.NotEmpty(t, rule.Name())
		assert.NotEmpty(t, rule.Description())
	}
}

func TestEngineIsPathIgnored(t *testing.T) {
	engine := newTestEngine(t)
	engine.IgnorePath("vendor")

	assert.True(t, engine.IsPathIgnored("vendor"))
	assert.True(t, engine.IsPathIgnored("vendor/pkg/mod.py"))
	assert.False(t, engine.IsPathIgnored("src/mod.py"))
}
