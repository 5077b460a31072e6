package parseable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNextBack(t *testing.T) {
	m := NewMemory([]byte("ab"), "test")

	b, ok := m.Next()
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)

	m.Back()
	b, ok = m.Next()
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)

	b, ok = m.Next()
	require.True(t, ok)
	assert.Equal(t, byte('b'), b)

	_, ok = m.Next()
	assert.False(t, ok)
}

func TestMemoryName(t *testing.T) {
	m := NewMemory(nil, "<word>")
	assert.Equal(t, "<word>", m.Name())
	assert.Equal(t, "<word>", Loc(m))
}

func TestFileTracksLines(t *testing.T) {
	f := NewFile(strings.NewReader("a\nb\nc"), "src")
	assert.Equal(t, 1, f.Loc())

	for _, want := range []byte{'a', '\n', 'b', '\n', 'c'} {
		b, ok := f.Next()
		require.True(t, ok)
		assert.Equal(t, want, b)
	}
	assert.Equal(t, 3, f.Loc())
	assert.Equal(t, "src:3", Loc(f))
}

func TestFileBackOneLevel(t *testing.T) {
	f := NewFile(strings.NewReader("xy"), "src")
	b, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, byte('x'), b)

	f.Back()
	b, ok = f.Next()
	require.True(t, ok)
	assert.Equal(t, byte('x'), b)

	b, ok = f.Next()
	require.True(t, ok)
	assert.Equal(t, byte('y'), b)

	_, ok = f.Next()
	assert.False(t, ok)
}
