package repository

import "errors"

// ErrStaleEntity is returned when a version-guarded update matched no row:
// another request mutated the entity between our read and write.
var ErrStaleEntity = errors.New("stale entity version")
