package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/peplint/peplint/internal/types"
)

func writeTempPython(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCacheSetGet(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	target := writeTempPython(t, tmpDir, "mod.py", "import os\n")
	issues := []tt.Issue{{Rule: "C7001", Filename: target}}

	require.NoError(t, cache.Set(target, issues))

	got, ok := cache.Get(target)
	require.True(t, ok)
	assert.Equal(t, issues, got)
}

func TestCacheInvalidatedByContentChange(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	target := writeTempPython(t, tmpDir, "mod.py", "import os\n")
	require.NoError(t, cache.Set(target, nil))

	require.NoError(t, os.WriteFile(target, []byte("import sys\n"), 0o644))

	_, ok := cache.Get(target)
	assert.False(t, ok)
}

func TestCacheInvalidatedByMaxAge(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	target := writeTempPython(t, tmpDir, "mod.py", "import os\n")
	require.NoError(t, cache.Set(target, nil))

	cache.SetMaxAge(-time.Second)

	_, ok := cache.Get(target)
	assert.False(t, ok)
}

func TestCacheInvalidatedByDependencyChange(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	config := writeTempPython(t, tmpDir, ".peplint.yaml", "name: peplint\n")
	require.NoError(t, cache.AddDependency(config))

	target := writeTempPython(t, tmpDir, "mod.py", "import os\n")
	require.NoError(t, cache.Set(target, nil))

	require.NoError(t, os.WriteFile(config, []byte("name: changed\n"), 0o644))

	_, ok := cache.Get(target)
	assert.False(t, ok)
}

func TestCachePersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "cache")

	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	target := writeTempPython(t, tmpDir, "mod.py", "import os\n")
	issues := []tt.Issue{{Rule: "C7005", Filename: target}}
	require.NoError(t, cache.Set(target, issues))

	reloaded, err := NewCache(cacheDir)
	require.NoError(t, err)

	got, ok := reloaded.Get(target)
	require.True(t, ok)
	assert.Equal(t, issues, got)
}

func TestCacheInvalidateAll(t *testing.T) {
	tmpDir := t.TempDir()
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	target := writeTempPython(t, tmpDir, "mod.py", "import os\n")
	require.NoError(t, cache.Set(target, nil))

	cache.InvalidateAll()

	_, ok := cache.Get(target)
	assert.False(t, ok)
}

func TestEngineUsesCache(t *testing.T) {
	tmpDir := t.TempDir()
	engine := newTestEngine(t)
	require.NoError(t, engine.SetCache(filepath.Join(tmpDir, "cache")))

	target := writeTempPython(t, tmpDir, "mod.py", "import sys, os\n")

	first, err := engine.Run(target)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := engine.Run(target)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
