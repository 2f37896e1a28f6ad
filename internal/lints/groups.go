package lints

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/peplint/peplint/internal/modpath"
	"github.com/peplint/peplint/internal/python"
)

// ImportGroup is the PEP 8 partition an import belongs to. The order
// of the constants is the required file order.
type ImportGroup int

const (
	GroupStdlib ImportGroup = iota
	GroupThirdParty
	GroupLocal
)

func (g ImportGroup) String() string {
	switch g {
	case GroupStdlib:
		return "standard library"
	case GroupThirdParty:
		return "third party"
	case GroupLocal:
		return "local"
	default:
		return "unknown"
	}
}

// GroupClassifier assigns imports to their PEP 8 group. A module is
// local when it lives in the project root (the original checker's
// "exists in the current directory" convention) or is configured as
// local; it is standard when the bundled stdlib table knows it;
// everything else is third party. Configured third-party entries win
// over all probes.
type GroupClassifier struct {
	rootDir    string
	local      *modpath.Set
	thirdParty *modpath.Set

	mu    sync.Mutex
	cache map[string]ImportGroup
}

// NewGroupClassifier builds a classifier rooted at rootDir with the
// configured module overrides.
func NewGroupClassifier(rootDir string, localModules, knownThirdParty []string) *GroupClassifier {
	return &GroupClassifier{
		rootDir:    rootDir,
		local:      modpath.NewSetOf(localModules...),
		thirdParty: modpath.NewSetOf(knownThirdParty...),
		cache:      make(map[string]ImportGroup),
	}
}

// Classify returns the group of one import statement. Relative imports
// are by nature intra-package, hence local.
func (c *GroupClassifier) Classify(imp *python.ImportStatement) ImportGroup {
	if imp.Level > 0 {
		return GroupLocal
	}
	return c.classifyModule(imp.TopLevelModule())
}

func (c *GroupClassifier) classifyModule(top string) ImportGroup {
	if top == "" {
		return GroupLocal
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if group, ok := c.cache[top]; ok {
		return group
	}

	group := c.resolve(top)
	c.cache[top] = group
	return group
}

func (c *GroupClassifier) resolve(top string) ImportGroup {
	switch {
	case c.thirdParty.ContainsModule(top):
		return GroupThirdParty
	case c.local.ContainsModule(top):
		return GroupLocal
	case c.existsInProject(top):
		// a project module shadows the stdlib, as with sys.path
		return GroupLocal
	case python.IsStdlibModule(top):
		return GroupStdlib
	default:
		return GroupThirdParty
	}
}

// existsInProject checks whether the module resolves inside the
// project root, as a single file or as a package directory.
func (c *GroupClassifier) existsInProject(top string) bool {
	if c.rootDir == "" {
		return false
	}
	candidates := []string{
		filepath.Join(c.rootDir, top+".py"),
		filepath.Join(c.rootDir, top, "__init__.py"),
		filepath.Join(c.rootDir, top),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}
