package models

// Storage key categories. Keys are laid out as
// {userId}/{category}/{uuid}.{ext}; the category folder is derived from the
// MIME type prefix at authorization time.
const (
	CategoryImages = "images"
	CategoryVideos = "videos"
	CategoryAudios = "audios"
	CategoryDocs   = "docs"
	CategoryOthers = "others"
)

// PresignedURLRequest asks to authorize an upload. Size is the client's
// declared byte count; it gates the quota pre-check but is never trusted for
// the actual debit.
type PresignedURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// PresignedURLResponse is the upload ticket: a short-lived presigned PUT URL
// plus the eventual public URL and the object key the client must confirm.
type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}

// ConfirmRequest finalizes an upload. The server re-reads the object's true
// size from the store before debiting quota.
type ConfirmRequest struct {
	Key string `json:"key"`
}

// ConfirmResponse reports the verified size that was debited.
type ConfirmResponse struct {
	Success bool  `json:"success"`
	Size    int64 `json:"size"`
}

// DeleteObjectRequest removes an uploaded object and refunds its bytes.
type DeleteObjectRequest struct {
	Key string `json:"key"`
}

// DeleteObjectResponse reports the refunded byte count (clamped so that the
// user's counter never goes below zero).
type DeleteObjectResponse struct {
	Success  bool  `json:"success"`
	Refunded int64 `json:"refunded"`
}

// StorageObject describes one uploaded asset as reported by the object
// store. There is no database row behind it; the store's listing and the
// aggregate used-storage counter are the only records of an upload.
type StorageObject struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}
