package modpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetContains(t *testing.T) {
	s := NewSetOf("os", "os.path", "collections.abc")

	assert.True(t, s.Contains("os"))
	assert.True(t, s.Contains("os.path"))
	assert.True(t, s.Contains("collections.abc"))
	assert.False(t, s.Contains("collections"), "intermediate segment is not a member")
	assert.False(t, s.Contains("sys"))
	assert.False(t, s.Contains(""))
}

func TestSetContainsModule(t *testing.T) {
	tests := []struct {
		name     string
		modules  []string
		query    string
		expected bool
	}{
		{
			name:     "submodule of inserted module",
			modules:  []string{"os"},
			query:    "os.path",
			expected: true,
		},
		{
			name:     "exact match",
			modules:  []string{"myapp"},
			query:    "myapp",
			expected: true,
		},
		{
			name:     "deep submodule",
			modules:  []string{"myapp"},
			query:    "myapp.models.user",
			expected: true,
		},
		{
			name:     "unrelated module",
			modules:  []string{"myapp"},
			query:    "requests",
			expected: false,
		},
		{
			name:     "parent of inserted path is not a match",
			modules:  []string{"myapp.models"},
			query:    "myapp",
			expected: false,
		},
		{
			name:     "shared prefix only",
			modules:  []string{"myapp"},
			query:    "myapplication",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSetOf(tt.modules...)
			assert.Equal(t, tt.expected, s.ContainsModule(tt.query))
		})
	}
}

func TestArenaReuse(t *testing.T) {
	a := NewArena()
	a.Insert([]string{"a", "b"})
	a.Insert([]string{"a", "c"})

	assert.True(t, a.Contains([]string{"a", "b"}))
	assert.True(t, a.Contains([]string{"a", "c"}))
	assert.False(t, a.Contains([]string{"a"}))
	assert.True(t, a.MatchesPrefix([]string{"a", "b", "d"}))
}
