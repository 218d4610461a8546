// Package adapter contains filesystem and persistence adapters for the
// tangle CLI. It hides direct os access so the domain layer can be tested
// against temp directories and fakes.
package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	m "github.com/mouse-blink/tangle/internal/model"
)

// DefaultManifestName is the conventional manifest file name, used when no
// explicit target is given.
const DefaultManifestName = "package.json"

const manifestFileMode = 0o644

// ManifestStore loads, persists, backs up and restores dependency
// manifests. Every failure wraps the matching error kind from the model
// package, so callers can discriminate with errors.Is.
type ManifestStore interface {
	// Load parses the manifest document at path.
	Load(path m.Path) (*m.Manifest, error)

	// Save writes the manifest back as pretty-printed JSON (2-space
	// indent) with a trailing newline.
	Save(path m.Path, manifest *m.Manifest) error

	// Backup copies the current raw bytes at path verbatim to a derived
	// sibling path and returns it. The backup is never touched again by
	// this tool except through Restore.
	Backup(path m.Path) (m.Path, error)

	// Restore copies backup bytes verbatim onto target. An empty target
	// defaults to DefaultManifestName next to the backup.
	Restore(backup, target m.Path) error
}

// LocalManifestStore is the disk-backed ManifestStore.
type LocalManifestStore struct {
	// now stamps backup file names; swapped out in tests.
	now func() time.Time
}

// NewLocalManifestStore constructs a LocalManifestStore ready to be wired
// into the workflow.
func NewLocalManifestStore() *LocalManifestStore {
	return &LocalManifestStore{now: time.Now}
}

// Load reads and decodes the manifest at path.
func (a *LocalManifestStore) Load(path m.Path) (*m.Manifest, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", m.ErrLoad, path, err)
	}

	manifest := &m.Manifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("%w %s: %w", m.ErrLoad, path, err)
	}

	return manifest, nil
}

// Save writes the manifest to path as indented JSON.
func (a *LocalManifestStore) Save(path m.Path, manifest *m.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("%w %s: %w", m.ErrSave, path, err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(string(path), data, manifestFileMode); err != nil {
		return fmt.Errorf("%w %s: %w", m.ErrSave, path, err)
	}

	return nil
}

// Backup copies the manifest bytes to <path>.backup.<unix-nano>.
func (a *LocalManifestStore) Backup(path m.Path) (m.Path, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", m.ErrBackup, path, err)
	}

	backup := m.Path(fmt.Sprintf("%s.backup.%d", path, a.now().UnixNano()))

	if err := os.WriteFile(string(backup), data, manifestFileMode); err != nil {
		return "", fmt.Errorf("%w %s: %w", m.ErrBackup, path, err)
	}

	return backup, nil
}

// Restore copies the backup bytes onto the target manifest.
func (a *LocalManifestStore) Restore(backup, target m.Path) error {
	if target == "" {
		target = m.Path(filepath.Join(filepath.Dir(string(backup)), DefaultManifestName))
	}

	data, err := os.ReadFile(string(backup))
	if err != nil {
		return fmt.Errorf("%w from %s: %w", m.ErrRestore, backup, err)
	}

	if err := os.WriteFile(string(target), data, manifestFileMode); err != nil {
		return fmt.Errorf("%w to %s: %w", m.ErrRestore, target, err)
	}

	return nil
}
