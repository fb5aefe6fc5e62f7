package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewFileStore(path)

	_, ok := s.ActorID()
	require.False(t, ok, "no file means no actor")

	require.NoError(t, s.SignIn(" v9 "))
	id, ok := s.ActorID()
	require.True(t, ok)
	require.Equal(t, "v9", id)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.SignOut())
	_, ok = s.ActorID()
	require.False(t, ok)
	require.NoError(t, s.SignOut())
}

func TestFileStoreReadsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	a := NewFileStore(path)
	b := NewFileStore(path)

	require.NoError(t, a.SignIn("v1"))
	id, _ := b.ActorID()
	require.Equal(t, "v1", id)

	require.NoError(t, a.SignIn("v2"))
	id, _ = b.ActorID()
	require.Equal(t, "v2", id)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, ok := NewFileStore(path).ActorID()
	require.False(t, ok)
}

func TestSignInRequiresID(t *testing.T) {
	require.Error(t, NewFileStore(filepath.Join(t.TempDir(), "s.json")).SignIn("  "))
	require.Error(t, NewMemory("").SignIn(""))
}

func TestMemory(t *testing.T) {
	m := NewMemory("")
	_, ok := m.ActorID()
	require.False(t, ok)
	require.NoError(t, m.SignIn("v9"))
	id, ok := m.ActorID()
	require.True(t, ok)
	require.Equal(t, "v9", id)
	require.NoError(t, m.SignOut())
	_, ok = m.ActorID()
	require.False(t, ok)
}
