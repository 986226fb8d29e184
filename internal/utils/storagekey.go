package utils

import (
	"errors"
	"path"
	"strings"

	"github.com/nvoronin/inkwell/models"
)

// ErrMalformedStorageKey is returned when an object key does not follow the
// {userId}/{category}/{file} layout.
var ErrMalformedStorageKey = errors.New("malformed storage key")

// CategoryForMIME maps a MIME type to the coarse storage folder the object
// is filed under.
func CategoryForMIME(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.CategoryImages
	case strings.HasPrefix(contentType, "video/"):
		return models.CategoryVideos
	case strings.HasPrefix(contentType, "audio/"):
		return models.CategoryAudios
	case strings.HasPrefix(contentType, "application/"), strings.HasPrefix(contentType, "text/"):
		return models.CategoryDocs
	default:
		return models.CategoryOthers
	}
}

// BuildStorageKey assembles an object key of the form
// {userId}/{category}/{uuid}.{ext}. The extension is taken from the original
// filename; files without one get no extension suffix.
func BuildStorageKey(userID, contentType, filename string) string {
	name := NewUUIDGenerator().Generate()
	if ext := path.Ext(filename); ext != "" {
		name += ext
	}
	return userID + "/" + CategoryForMIME(contentType) + "/" + name
}

// StorageKeyOwner extracts the user-id segment embedded in an object key.
// Ownership checks compare it against the acting user before any object
// store operation.
func StorageKeyOwner(key string) (string, error) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", ErrMalformedStorageKey
	}
	return parts[0], nil
}
