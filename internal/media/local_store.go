package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LocalURLPrefix is the path the router serves local media from.
const LocalURLPrefix = "/media/"

// localStore implements Store on the local file system.
type localStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates a store that writes objects below dir.
func NewLocalStore(dir string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}

	logger = logger.With().Str("component", "local-media-store").Logger()
	logger.Info().Str("dir", dir).Msg("local media store initialised")

	return &localStore{dir: dir, logger: logger}, nil
}

func (s *localStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}

// Put writes body to a temporary file and renames it into place so readers
// never see a partial object.
func (s *localStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	target, err := s.path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to create media directory")
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to create temporary media file")
		return "", fmt.Errorf("failed to create temporary media file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write media file")
		return "", fmt.Errorf("failed to write media file %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to move media file into place")
		return "", fmt.Errorf("failed to store media file %s: %w", key, err)
	}

	s.logger.Info().
		Str("key", key).
		Str("content_type", contentType).
		Int64("bytes", written).
		Msg("media stored on local disk")

	return LocalURLPrefix + filepath.ToSlash(key), nil
}

// Delete removes the file for key.
func (s *localStore) Delete(ctx context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete media file")
		return fmt.Errorf("failed to delete media file %s: %w", key, err)
	}

	return nil
}
