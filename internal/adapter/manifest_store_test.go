package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/tangle/internal/model"
)

const storeFixture = `{
  "name": "fixture",
  "version": "2.1.0",
  "dependencies": {
    "react": "^17.0.2"
  },
  "peerDependencies": {
    "react": "^17.0.0"
  },
  "scripts": {
    "build": "webpack"
  }
}
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	path := writeFixture(t, storeFixture)

	store := NewLocalManifestStore()

	manifest, err := store.Load(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, "fixture", manifest.Name)
	assert.Equal(t, "2.1.0", manifest.Version)
	assert.Equal(t, map[string]string{"react": "^17.0.2"}, manifest.Dependencies)
	assert.Equal(t, map[string]string{"react": "^17.0.0"}, manifest.PeerDependencies)
	assert.Nil(t, manifest.DevDependencies)
}

func TestLoadErrors(t *testing.T) {
	store := NewLocalManifestStore()

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Load("does-not-exist/package.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, m.ErrLoad)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFixture(t, "{not json")

		_, err := store.Load(m.Path(path))
		require.Error(t, err)
		assert.ErrorIs(t, err, m.ErrLoad)
	})

	t.Run("wrong shape", func(t *testing.T) {
		path := writeFixture(t, `{"dependencies": ["not", "a", "map"]}`)

		_, err := store.Load(m.Path(path))
		require.Error(t, err)
		assert.ErrorIs(t, err, m.ErrLoad)
	})
}

func TestSave(t *testing.T) {
	path := writeFixture(t, storeFixture)

	store := NewLocalManifestStore()

	manifest, err := store.Load(m.Path(path))
	require.NoError(t, err)

	manifest.Dependencies["react"] = "^18.0.0"
	require.NoError(t, store.Save(m.Path(path), manifest))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasSuffix(content, "\n"), "saved manifest must end with a newline")
	assert.Contains(t, content, "  \"name\"", "saved manifest must use 2-space indent")
	assert.Contains(t, content, `"^18.0.0"`)

	// Unknown fields survive the round trip.
	assert.Contains(t, content, `"build": "webpack"`)

	reloaded, err := store.Load(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "^18.0.0", reloaded.Dependencies["react"])
}

func TestSaveError(t *testing.T) {
	store := NewLocalManifestStore()

	err := store.Save("does-not-exist/package.json", &m.Manifest{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrSave)
}

func TestBackup(t *testing.T) {
	path := writeFixture(t, storeFixture)

	stamp := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	store := &LocalManifestStore{now: func() time.Time { return stamp }}

	backup, err := store.Backup(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, m.Path(fmt.Sprintf("%s.backup.%d", path, stamp.UnixNano())), backup)

	data, err := os.ReadFile(string(backup))
	require.NoError(t, err)
	assert.Equal(t, storeFixture, string(data))
}

func TestBackupError(t *testing.T) {
	store := NewLocalManifestStore()

	_, err := store.Backup("does-not-exist/package.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrBackup)
}

func TestRestore(t *testing.T) {
	path := writeFixture(t, storeFixture)

	store := NewLocalManifestStore()

	backup, err := store.Backup(m.Path(path))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	require.NoError(t, store.Restore(backup, m.Path(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, storeFixture, string(data))
}

func TestRestoreDefaultTarget(t *testing.T) {
	path := writeFixture(t, storeFixture)

	store := NewLocalManifestStore()

	backup, err := store.Backup(m.Path(path))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	// No explicit target: the conventional manifest next to the backup.
	require.NoError(t, store.Restore(backup, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, storeFixture, string(data))
}

func TestRestoreError(t *testing.T) {
	store := NewLocalManifestStore()

	err := store.Restore("does-not-exist/package.json.backup.1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrRestore)
}

func TestErrorKindsAreDistinct(t *testing.T) {
	store := NewLocalManifestStore()

	_, loadErr := store.Load("missing")
	assert.ErrorIs(t, loadErr, m.ErrLoad)
	assert.NotErrorIs(t, loadErr, m.ErrSave)
	assert.NotErrorIs(t, loadErr, m.ErrBackup)
	assert.NotErrorIs(t, loadErr, m.ErrRestore)
}
