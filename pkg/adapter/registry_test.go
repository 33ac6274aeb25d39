package adapter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "fake_db",
		Available: []string{"duckdb", "postgres"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "fake_db")
	assert.Contains(t, msg, "[duckdb postgres]")
	assert.Contains(t, msg, "healake.yaml", "error should point at the config file")
}

func TestRegister_Aliases(t *testing.T) {
	Register("Lake_Test", func(_ *slog.Logger) Adapter { return nil }, "lt", "LAKE-T")

	tests := []struct {
		name      string
		lookup    string
		canonical string
	}{
		{"registered name", "lake_test", "lake_test"},
		{"mixed case name", "LAKE_TEST", "lake_test"},
		{"alias", "lt", "lake_test"},
		{"alias case folded", "lake-t", "lake_test"},
		{"padded alias", "  lt ", "lake_test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsRegistered(tt.lookup))
			assert.Equal(t, tt.canonical, Canonical(tt.lookup))

			factory, ok := Get(tt.lookup)
			require.True(t, ok)
			assert.NotNil(t, factory)
		})
	}

	assert.Contains(t, ListAdapters(), "lake_test")
	assert.NotContains(t, ListAdapters(), "lt", "aliases are not listed")
}

func TestCanonical_Unknown(t *testing.T) {
	assert.Equal(t, "nosuchdb", Canonical("NoSuchDB"))
	assert.False(t, IsRegistered("NoSuchDB"))
}

func TestNewAdapter_EmptyType(t *testing.T) {
	for _, typ := range []string{"", "   "} {
		_, err := NewAdapter(Config{Type: typ}, nil)
		require.Error(t, err)
		assert.Equal(t, "adapter type not specified", err.Error())
	}
}
