package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// packageImports returns the imports of every non-test Go file in dir,
// keyed by file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			imports[entry.Name()] = append(imports[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// isStdlib reports whether an import path belongs to the standard library.
// Standard library paths have no dot in their first element.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

// TestCoreImportsOnlyStdlib keeps pkg/core at the bottom of the import graph.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range packageImports(t, ".") {
		for _, imp := range imports {
			if !isStdlib(imp) {
				t.Errorf("%s imports %s (core must only import the standard library)", file, imp)
			}
		}
	}
}

// TestHeaImportBoundaries verifies pkg/hea talks to databases only through
// the core executor contract.
func TestHeaImportBoundaries(t *testing.T) {
	allowed := map[string]bool{
		"github.com/leapstack-labs/healake/pkg/core": true,
		"golang.org/x/text/cases":                    true,
		"golang.org/x/text/language":                 true,
	}

	for file, imports := range packageImports(t, filepath.Join("..", "hea")) {
		for _, imp := range imports {
			if isStdlib(imp) || allowed[imp] {
				continue
			}
			if strings.Contains(imp, "/internal/") {
				t.Errorf("hea/%s imports internal package: %s", file, imp)
				continue
			}
			t.Errorf("hea/%s imports %s (hea may only use core, x/text and the standard library)", file, imp)
		}
	}
}
