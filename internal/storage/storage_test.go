package storage

import (
	"context"
	"strings"
	"testing"

	"alcyxob/fitness-center/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("profile-images", "abc123", "image/png")

	assert.True(t, strings.HasPrefix(key, "profile-images/abc123/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.True(t, HasPrefix(key, "profile-images", "abc123"))
	assert.False(t, HasPrefix(key, "profile-images", "abc"))

	noExt := ObjectKey("payment-proofs", "p1", "binary")
	assert.False(t, strings.Contains(noExt[len("payment-proofs/p1/"):], "."))
}

func TestS3Storage_PresignedURLs(t *testing.T) {
	// Presigning is local signing work; no request reaches the endpoint.
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "fitness",
	})
	require.NoError(t, err)

	uploadURL, err := fs.GeneratePresignedUploadURL(context.Background(), "profile-images/a/b.png", "image/png", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uploadURL, "http://localhost:9000/fitness/profile-images/a/b.png"))
	assert.Contains(t, uploadURL, "X-Amz-Signature=")

	downloadURL, err := fs.GeneratePresignedDownloadURL(context.Background(), "profile-images/a/b.png", 0)
	require.NoError(t, err)
	assert.Contains(t, downloadURL, "X-Amz-Expires=900")
}
