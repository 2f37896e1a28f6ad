package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peplint/peplint/internal/types"
	"github.com/peplint/peplint/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) Run(filePath string) ([]types.Issue, error) {
	args := m.Called(filePath)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) RunSource(source []byte) ([]types.Issue, error) {
	args := m.Called(source)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func (m *mockLintEngine) IgnorePath(path string) {
	m.Called(path)
}

func setupMockEngine(expectedIssues []types.Issue, filePath string) *mockLintEngine {
	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", filePath).Return(expectedIssues, nil)
	return mockEngine
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".peplint.yaml")

	err := initConfigurationFile(configPath)
	require.NoError(t, err)

	engine, err := lint.New(tempDir, configPath)
	require.NoError(t, err)
	assert.Len(t, engine.Rules(), 6)
}

func TestCollectPythonFiles(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	pyFile := filepath.Join(tempDir, "a.py")
	require.NoError(t, os.WriteFile(pyFile, []byte("import os\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "b.txt"), []byte("text"), 0o644))

	files, err := collectPythonFiles(tempDir)
	require.NoError(t, err)
	assert.Equal(t, []string{pyFile}, files)

	files, err = collectPythonFiles(pyFile)
	require.NoError(t, err)
	assert.Equal(t, []string{pyFile}, files)
}

func TestRunAutoFix(t *testing.T) {
	logger, _ := zap.NewProduction()

	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "app.py")
	err := os.WriteFile(testFile, []byte("import sys\nimport os\n"), 0o644)
	require.NoError(t, err)

	engine, err := lint.New(tempDir, filepath.Join(tempDir, "missing.yaml"))
	require.NoError(t, err)

	output := captureOutput(t, func() {
		runAutoFix(logger, engine, []string{testFile}, false)
	})

	content, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "import os\nimport sys\n", string(content))
	assert.Contains(t, output, "Fixed imports in")

	// dry run test
	err = os.WriteFile(testFile, []byte("import sys\nimport os\n"), 0o644)
	require.NoError(t, err)

	output = captureOutput(t, func() {
		runAutoFix(logger, engine, []string{testFile}, true)
	})

	content, err = os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "import sys\nimport os\n", string(content))
	assert.Contains(t, output, "Would fix imports in")
}

func TestPrintIssuesJSON(t *testing.T) {
	t.Parallel()
	logger, _ := zap.NewProduction()

	issues := []types.Issue{
		{
			Rule:     "C7001",
			Filename: "app.py",
			Start:    types.Position{Filename: "app.py", Line: 1, Column: 1},
			End:      types.Position{Filename: "app.py", Line: 1, Column: 14},
			Message:  "imports should be on separate lines",
		},
	}

	output := captureOutput(t, func() {
		printIssues(logger, issues, true, "")
	})

	var decoded map[string][]types.Issue
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &decoded))
	require.Len(t, decoded["app.py"], 1)
	assert.Equal(t, "C7001", decoded["app.py"][0].Rule)
}

func TestRunJsonOutput(t *testing.T) {
	if os.Getenv("BE_CRASHER") != "1" {
		cmd := exec.Command(os.Args[0], "-test.run=TestRunJsonOutput")
		cmd.Env = append(os.Environ(), "BE_CRASHER=1")
		output, err := cmd.CombinedOutput() // stdout and stderr capture
		if e, ok := err.(*exec.ExitError); ok && !e.Success() {
			lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
			tempDir := lines[0]
			defer os.RemoveAll(tempDir)

			// check if issues are written
			jsonOutput := filepath.Join(tempDir, "output.json")
			content, err := os.ReadFile(jsonOutput)
			assert.NoError(t, err)

			var actualContent map[string][]types.Issue
			err = json.Unmarshal(content, &actualContent)
			assert.NoError(t, err)

			assert.Len(t, actualContent, 1)
			for filename, issues := range actualContent {
				assert.True(t, strings.HasSuffix(filename, "app.py"))
				assert.Len(t, issues, 1)
				issue := issues[0]
				assert.Equal(t, "C7001", issue.Rule)
				assert.Equal(t, "imports should be on separate lines", issue.Message)
				assert.Equal(t, 1, issue.Start.Line)
			}

			return
		}
		t.Fatalf("process failed with error %v, expected exit status 1", err)
	}

	logger, _ := zap.NewProduction()

	tempDir, err := os.MkdirTemp("", "json-test")
	assert.NoError(t, err)
	fmt.Println(tempDir)

	testFile := filepath.Join(tempDir, "app.py")
	err = os.WriteFile(testFile, []byte("import sys, os\n"), 0o644)
	assert.NoError(t, err)

	expectedIssues := []types.Issue{
		{
			Rule:     "C7001",
			Filename: testFile,
			Message:  "imports should be on separate lines",
			Start:    types.Position{Filename: testFile, Line: 1, Column: 1},
			End:      types.Position{Filename: testFile, Line: 1, Column: 14},
		},
	}

	mockEngine := setupMockEngine(expectedIssues, testFile)

	jsonOutput := filepath.Join(tempDir, "output.json")
	runNormalLintProcess(context.Background(), logger, mockEngine, []string{testFile}, true, jsonOutput)
}

func captureOutput(_ *testing.T, f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}
