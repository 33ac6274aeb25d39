// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/healake/internal/cli/output"
	"github.com/leapstack-labs/healake/pkg/adapter"
	"github.com/leapstack-labs/healake/pkg/adapters/duckdb"
)

// LakeFixture is a small six-element lake: two compositions, one of which
// has no descriptor table, and concentration rows for con_index 1 and 2.
var LakeFixture = []string{
	`CREATE TABLE hea_elements_6 (id BIGINT, elem1 VARCHAR, elem2 VARCHAR, elem3 VARCHAR, elem4 VARCHAR, elem5 VARCHAR, elem6 VARCHAR)`,
	`INSERT INTO hea_elements_6 VALUES
		(1, 'Al', 'Co', 'Cr', 'Cu', 'Fe', 'Hf'),
		(2, 'Al', 'Co', 'Cr', 'Cu', 'Fe', 'Mn')`,
	`CREATE TABLE hea_con_6 (id BIGINT, con1 DOUBLE, con2 DOUBLE, con3 DOUBLE, con4 DOUBLE, con5 DOUBLE, con6 DOUBLE)`,
	`INSERT INTO hea_con_6 VALUES
		(1, 0.5, 0.1, 0.1, 0.1, 0.1, 0.1),
		(2, 0.2, 0.2, 0.2, 0.2, 0.1, 0.1)`,
	`CREATE TABLE hea_6_c_1 (con_index BIGINT, ave_fe1 DOUBLE, ave_fe2 DOUBLE, ave_fp1 DOUBLE, hmix_data DOUBLE)`,
	`INSERT INTO hea_6_c_1 VALUES
		(1, 1.25, 0.4, 7.1, -4.5),
		(2, 1.75, 0.5, 7.3, -3.2),
		(3, 2.5, 0.6, 7.4, -2.8)`,
	`CREATE TABLE descriptor_names (name VARCHAR, description VARCHAR)`,
	`INSERT INTO descriptor_names VALUES
		('ave_fe1', 'average formation energy, first shell'),
		('hmix_data', 'mixing enthalpy')`,
}

// SetupTestLake writes LakeFixture to a DuckDB file and a healake.yaml
// pointing at it. It returns the config file path.
func SetupTestLake(t *testing.T, extra ...string) string {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "lake.duckdb")
	ctx := context.Background()

	db := duckdb.New(nil)
	if err := db.Connect(ctx, adapter.Config{Path: dbPath}); err != nil {
		t.Fatalf("failed to create fixture database: %v", err)
	}
	for _, stmt := range append(append([]string{}, LakeFixture...), extra...) {
		if err := db.Exec(ctx, stmt); err != nil {
			_ = db.Close()
			t.Fatalf("failed to load fixture: %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close fixture database: %v", err)
	}

	cfgPath := filepath.Join(dir, "healake.yaml")
	content := fmt.Sprintf("target:\n  type: duckdb\n  database: %s\n", filepath.Base(dbPath))
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return cfgPath
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}
