// Package media stores gallery uploads, either on local disk or in S3.
package media

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"cafe-site/internal/model"

	"github.com/google/uuid"
)

// Store persists media objects and reports the URL they are served from.
type Store interface {
	// Put stores body under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)

	// Delete removes the object under key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// KindOf maps an upload content type to a gallery type. Only images and videos
// are accepted.
func KindOf(contentType string) (model.GalleryType, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", model.ErrUnsupportedMedia
	}

	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return model.GalleryPhoto, nil
	case strings.HasPrefix(mediaType, "video/"):
		return model.GalleryVideo, nil
	default:
		return "", model.ErrUnsupportedMedia
	}
}

// NewKey returns a fresh object key of the form gallery/<uuid><ext>. The
// extension always agrees with contentType: the uploaded filename's extension
// is kept only when it maps to the same media type, otherwise one is derived
// from the content type. The key has no extension when neither yields one.
func NewKey(filename, contentType string) string {
	key := "gallery/" + uuid.NewString()

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return key
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && extensionMatches(ext, mediaType) {
		return key + ext
	}
	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		return key + exts[0]
	}
	return key
}

func extensionMatches(ext, mediaType string) bool {
	byExt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	return err == nil && byExt == mediaType
}
