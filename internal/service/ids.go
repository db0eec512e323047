package service

import (
	"github.com/google/uuid"
)

// newID builds prefixed opaque ids, e.g. "album-6ba7b810-…".
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
