package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchStartStop(t *testing.T) {
	tmpDir := t.TempDir()

	engine, err := NewEngine(tmpDir, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, engine.EnableWatch([]string{tmpDir}))
	require.NoError(t, engine.StartWatching())

	// the loop reads the flag concurrently; a second start must fail
	assert.Error(t, engine.StartWatching())

	require.NoError(t, engine.StopWatching())
	assert.False(t, engine.isWatching.Load())
}

func TestWatchWithoutEnable(t *testing.T) {
	tmpDir := t.TempDir()

	engine, err := NewEngine(tmpDir, nil, nil, nil)
	require.NoError(t, err)

	assert.Error(t, engine.StartWatching())
}
