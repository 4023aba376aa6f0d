package backend

import "errors"

var (
	// ErrEmptyName is returned when registering a backend without a name.
	ErrEmptyName = errors.New("backend name is empty")
	// ErrNotFound is returned when no backend is registered under a name.
	ErrNotFound = errors.New("backend not found")
	// ErrExists is returned when a name is already registered.
	ErrExists = errors.New("backend already registered")
	// ErrKindMismatch is returned when a registered backend does not
	// implement the interface requested for it.
	ErrKindMismatch = errors.New("backend kind mismatch")
)
