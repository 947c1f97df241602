package storage

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
)

// ObjectStore stores uploaded media and serves it back by public URL.
// Delete exists so a caller can remove an object whose database record
// failed to persist.
type ObjectStore interface {
	// Put uploads the object under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds a collision-free key for an uploaded file, keeping the
// original extension under the given prefix.
func ObjectKey(prefix, filename string) string {
	return prefix + "/" + uuid.New().String() + path.Ext(filename)
}
