// Package internal provides the core functionality of peplint, a PEP 8
// import linter for Python source files.
//
// The package implements a small linting engine that parses a Python
// file once and applies the import checks to the parsed view. It is
// designed so that each check stays a pure function of one file's
// ordered import statements.
//
// Key components:
//
// Engine: coordinates the linting of one file. It manages the enabled
// rules, applies per-rule severities from the configuration, consults
// the optional result cache and filters issues silenced by suppression
// comments.
//
// LintRule: the contract every check implements. A rule examines the
// parsed file and returns the issues it found.
//
// Cache: an on-disk result cache keyed by file content, so unchanged
// files are not re-parsed on repeated runs.
//
// This package is intended for internal use within peplint; the public
// entry points live in the lint package.
package internal
