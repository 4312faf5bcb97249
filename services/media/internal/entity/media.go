package entity

import "time"

type MediaFile struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Bucket       string    `json:"bucket"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mime_type"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	Tags         []string  `json:"tags"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MediaFilter struct {
	Bucket   string
	MimeType string
	Tag      string
	Search   string
	Limit    int
	Offset   int
}

// UploadResult is the outcome of one file in a batch. Exactly one of File
// and Err is set.
type UploadResult struct {
	Name string
	File *MediaFile
	Err  error
}

func (r UploadResult) OK() bool {
	return r.Err == nil
}
