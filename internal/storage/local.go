package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// localStore writes objects to a directory on disk. It is the fallback
// when S3 is disabled, for local development and tests.
type localStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates an object store rooted at dir. Objects are
// addressed back as "/media/<key>" URLs.
func NewLocalStore(dir string, logger zerolog.Logger) ObjectStore {
	return &localStore{
		dir:    dir,
		logger: logger.With().Str("storage", "local").Logger(),
	}
}

func (s *localStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	s.logger.Debug().Str("key", key).Msg("stored object locally")
	return "/media/" + key, nil
}

func (s *localStore) Delete(ctx context.Context, key string) error {
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}
	return nil
}
