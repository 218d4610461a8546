package model

import "errors"

// Error kinds for the manifest store. Each store operation wraps the
// matching sentinel together with the underlying cause, so callers can
// discriminate with errors.Is while still seeing the root failure.
var (
	// ErrLoad reports an unreadable or unparseable manifest.
	ErrLoad = errors.New("load manifest")
	// ErrSave reports a failed manifest write.
	ErrSave = errors.New("save manifest")
	// ErrBackup reports a failed backup copy.
	ErrBackup = errors.New("backup manifest")
	// ErrRestore reports a failed restore copy.
	ErrRestore = errors.New("restore manifest")
)
