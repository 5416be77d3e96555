package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore runs the behavior every Store must have.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "snowball_transactions")
	require.NoError(t, err)
	assert.False(t, ok, "absent key must be reported as not found")

	require.NoError(t, s.Set(ctx, "snowball_transactions", []byte(`[{"type":"deposit"}]`)))
	data, ok, err := s.Get(ctx, "snowball_transactions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"type":"deposit"}]`, string(data))

	// overwrite
	require.NoError(t, s.Set(ctx, "snowball_transactions", []byte(`[]`)))
	data, ok, err = s.Get(ctx, "snowball_transactions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))

	// keys are independent
	require.NoError(t, s.Set(ctx, "snowball_positions", []byte(`[1]`)))
	data, _, err = s.Get(ctx, "snowball_transactions")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	testStore(t, m)
	assert.Equal(t, []string{"snowball_positions", "snowball_transactions"}, m.Keys())

	// stored values are copies.
	value := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", value))
	value[0] = 'x'
	got, _, _ := m.Get(context.Background(), "k")
	assert.Equal(t, "abc", string(got))
	assert.NoError(t, m.Close())
}

func TestDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "state")
	d := NewDir(root, zerolog.Nop())
	testStore(t, d)

	content, err := os.ReadFile(filepath.Join(root, "snowball_positions.json"))
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(content))

	// no temporary file is left behind.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, _, err = d.Get(context.Background(), "../escape")
	assert.Error(t, err)
	assert.Error(t, d.Set(context.Background(), "", nil))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		url  string
		want any
	}{
		{filepath.Join(dir, "plain"), &Dir{}},
		{"dir://" + filepath.Join(dir, "dir"), &Dir{}},
		{"mem://", &Memory{}},
		{"sqlite://" + filepath.Join(dir, "state.db"), &SQL{}},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			s, err := Open(ctx, tt.url, zerolog.Nop())
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
			testStore(t, s)
		})
	}

	_, err := Open(ctx, "ftp://example.com/state", zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "redis://:xxxxx@localhost:6379/0", Redact("redis://:secret@localhost:6379/0"))
	assert.Equal(t, "postgres://bob:xxxxx@db/snowball", Redact("postgres://bob:pw@db/snowball"))
	assert.Equal(t, ".snowball", Redact(".snowball"))
}
