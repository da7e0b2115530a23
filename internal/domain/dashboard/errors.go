package dashboard

import "errors"

var (
	ErrInvalidID          = errors.New("id is required")
	ErrDuplicateID        = errors.New("id already exists")
	ErrNotFound           = errors.New("entity not found")
	ErrSnapshotCorrupt    = errors.New("snapshot is corrupt")
	ErrUnsupportedVersion = errors.New("snapshot version is not supported")
)
