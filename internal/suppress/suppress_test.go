package suppress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	tt "github.com/peplint/peplint/internal/types"
)

func TestIsSuppressed(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		line     int
		rule     string
		expected bool
	}{
		{
			name:     "trailing pylint disable",
			source:   "import sys, os  # pylint: disable=C7001\n",
			line:     1,
			rule:     "C7001",
			expected: true,
		},
		{
			name:     "trailing disable only covers listed rules",
			source:   "import sys, os  # pylint: disable=C7003\n",
			line:     1,
			rule:     "C7001",
			expected: false,
		},
		{
			name:     "trailing disable only covers its line",
			source:   "import sys, os  # pylint: disable=C7001\nimport json, re\n",
			line:     2,
			rule:     "C7001",
			expected: false,
		},
		{
			name:     "bare noqa silences everything",
			source:   "from . import sibling  # noqa\n",
			line:     1,
			rule:     "C7005",
			expected: true,
		},
		{
			name:     "noqa with code",
			source:   "from . import sibling  # noqa: C7005\n",
			line:     1,
			rule:     "C7005",
			expected: true,
		},
		{
			name:     "noqa with other code",
			source:   "from . import sibling  # noqa: C7001\n",
			line:     1,
			rule:     "C7005",
			expected: false,
		},
		{
			name:     "standalone disable covers rest of file",
			source:   "# pylint: disable=C7004\nimport sys\nimport os\n",
			line:     3,
			rule:     "C7004",
			expected: true,
		},
		{
			name:     "standalone disable does not cover earlier lines",
			source:   "import sys\n# pylint: disable=C7004\nimport os\n",
			line:     1,
			rule:     "C7004",
			expected: false,
		},
		{
			name:     "standalone noqa covers only its own line",
			source:   "# noqa\nimport sys, os\n",
			line:     2,
			rule:     "C7001",
			expected: false,
		},
		{
			name:     "standalone noqa with code covers only its own line",
			source:   "# noqa: C7004\nimport sys\nimport os\n",
			line:     3,
			rule:     "C7004",
			expected: false,
		},
		{
			name:     "case insensitive codes",
			source:   "import sys, os  # pylint: disable=c7001\n",
			line:     1,
			rule:     "C7001",
			expected: true,
		},
		{
			name:     "multiple codes",
			source:   "import sys, os  # pylint: disable=C7001, C7004\n",
			line:     1,
			rule:     "C7004",
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := ParseLines(strings.Split(tc.source, "\n"))
			assert.Equal(t, tc.expected, m.IsSuppressed(tc.line, tc.rule))
		})
	}
}

func TestFilter(t *testing.T) {
	source := "import sys, os  # pylint: disable=C7001\nimport json, re\n"
	m := ParseLines(strings.Split(source, "\n"))

	issues := []tt.Issue{
		{Rule: "C7001", Start: tt.Position{Line: 1}},
		{Rule: "C7001", Start: tt.Position{Line: 2}},
	}

	filtered := m.Filter(issues)
	assert.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].Start.Line)
}

func TestFilterWithoutScopesIsIdentity(t *testing.T) {
	m := ParseLines([]string{"import os"})
	issues := []tt.Issue{{Rule: "C7002", Start: tt.Position{Line: 1}}}
	assert.Equal(t, issues, m.Filter(issues))
}
