package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/inkwell/models"
)

func TestCategoryForMIME(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", models.CategoryImages},
		{"image/svg+xml", models.CategoryImages},
		{"video/mp4", models.CategoryVideos},
		{"audio/mpeg", models.CategoryAudios},
		{"application/pdf", models.CategoryDocs},
		{"text/plain", models.CategoryDocs},
		{"font/woff2", models.CategoryOthers},
		{"", models.CategoryOthers},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryForMIME(tt.contentType), "contentType=%q", tt.contentType)
	}
}

func TestBuildStorageKey(t *testing.T) {
	key := BuildStorageKey("user-1", "image/png", "photo.png")

	parts := strings.SplitN(key, "/", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "user-1", parts[0])
	assert.Equal(t, models.CategoryImages, parts[1])
	assert.True(t, strings.HasSuffix(parts[2], ".png"), "key %q should keep the original extension", key)

	// The basename is freshly generated, never the client's filename.
	assert.NotContains(t, parts[2], "photo")
}

func TestBuildStorageKey_NoExtension(t *testing.T) {
	key := BuildStorageKey("user-1", "application/octet-stream", "README")

	parts := strings.SplitN(key, "/", 3)
	require.Len(t, parts, 3)
	assert.NotContains(t, parts[2], ".")
}

func TestStorageKeyOwner(t *testing.T) {
	owner, err := StorageKeyOwner("user-1/images/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	for _, key := range []string{
		"",
		"user-1",
		"user-1/images",
		"/images/abc.png",
		"user-1//abc.png",
		"user-1/images/",
	} {
		_, err = StorageKeyOwner(key)
		assert.ErrorIs(t, err, ErrMalformedStorageKey, "key=%q", key)
	}
}
