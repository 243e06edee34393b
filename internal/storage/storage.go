package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations. Clients
// upload and download directly against the storage provider; the API only
// hands out short-lived URLs and remembers object keys.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// ObjectKey builds a unique key under prefix/owner, using the subtype of
// contentType ("image/png" -> ".png") as the extension.
func ObjectKey(prefix, owner, contentType string) string {
	ext := ""
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
		ext = "." + parts[1]
	}
	return path.Join(prefix, owner, fmt.Sprintf("%s%s", uuid.NewString(), ext))
}

// HasPrefix reports whether key was issued under prefix/owner.
func HasPrefix(key, prefix, owner string) bool {
	return strings.HasPrefix(key, path.Join(prefix, owner)+"/")
}
