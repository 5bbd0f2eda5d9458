package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteKey(t *testing.T) {
	assert.Equal(t, "sites/abc-123/index.html", SiteKey("abc-123"))
}

func TestValidateContentType(t *testing.T) {
	allowed := []string{"image/png", "image/webp"}

	assert.NoError(t, ValidateContentType("image/png", allowed))
	assert.Error(t, ValidateContentType("text/html", allowed))
}

func TestObjectURL(t *testing.T) {
	withBase := NewS3Storage("us-east-1", "bucket", "key", "secret", "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/sites/x/index.html", withBase.objectURL(SiteKey("x")))

	direct := NewS3Storage("sa-east-1", "bucket", "key", "secret", "")
	assert.Equal(t, "https://bucket.s3.sa-east-1.amazonaws.com/sites/x/index.html", direct.objectURL(SiteKey("x")))
}

func TestGeneratePresignedURL(t *testing.T) {
	s := NewS3Storage("us-east-1", "bucket", "AKIDEXAMPLE", "secret", "https://cdn.example.com")

	resp, err := s.GeneratePresignedURLWithFolder(context.Background(), "Foto.JPG", "image/jpeg", "products")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "products/"))
	assert.True(t, strings.HasSuffix(resp.Key, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.FileURL)
	assert.Contains(t, resp.UploadURL, "X-Amz-Signature")
}
