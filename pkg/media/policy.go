// Package media holds the upload rules shared by the media library and the
// product logo form: bucket policies, MIME resolution, and stored names.
package media

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"strings"

	"dalil/pkg/apperr"

	"github.com/gabriel-vasile/mimetype"
)

const (
	BucketProductLogos   = "product-logos"
	BucketNewsImages     = "news-images"
	BucketTutorialImages = "tutorial-images"
	BucketSiteAssets     = "site-assets"
)

// MaxFileSize caps every bucket.
const MaxFileSize int64 = 10 << 20

// MaxBatchFiles bounds one upload request.
const MaxBatchFiles = 20

var (
	ErrUnknownBucket  = apperr.New(apperr.KindValidation, "media.unknownBucket")
	ErrTypeNotAllowed = apperr.New(apperr.KindValidation, "media.typeNotAllowed")
	ErrFileTooLarge   = apperr.New(apperr.KindValidation, "media.fileTooLarge")
	ErrNoFiles        = apperr.New(apperr.KindValidation, "media.noFiles")
	ErrTooManyFiles   = apperr.New(apperr.KindValidation, "media.tooManyFiles")
	ErrUploadFailed   = apperr.New(apperr.KindInternal, "media.uploadFailed")
	ErrUnreadable     = apperr.New(apperr.KindValidation, "media.unreadable")
)

type Policy struct {
	MaxSize      int64
	AllowedTypes []string
}

func (p Policy) Allows(mimeType string) bool {
	for _, t := range p.AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

var (
	typePNG  = "image/png"
	typeJPEG = "image/jpeg"
	typeWEBP = "image/webp"
	typeGIF  = "image/gif"
	typeSVG  = "image/svg+xml"
	typeICO  = "image/x-icon"
)

var policies = map[string]Policy{
	BucketProductLogos: {
		MaxSize:      2 << 20,
		AllowedTypes: []string{typePNG, typeJPEG, typeWEBP, typeSVG},
	},
	BucketNewsImages: {
		MaxSize:      5 << 20,
		AllowedTypes: []string{typePNG, typeJPEG, typeWEBP, typeGIF},
	},
	BucketTutorialImages: {
		MaxSize:      5 << 20,
		AllowedTypes: []string{typePNG, typeJPEG, typeWEBP, typeGIF},
	},
	BucketSiteAssets: {
		MaxSize:      10 << 20,
		AllowedTypes: []string{typePNG, typeJPEG, typeWEBP, typeGIF, typeSVG, typeICO},
	},
}

// Buckets lists the bucket names in a stable order.
func Buckets() []string {
	return []string{BucketProductLogos, BucketNewsImages, BucketTutorialImages, BucketSiteAssets}
}

func PolicyFor(bucket string) (Policy, bool) {
	p, ok := policies[bucket]
	return p, ok
}

// Candidate is one file of an upload request, fully read into memory.
// ReadErr is set instead of Content when the part could not be read.
type Candidate struct {
	Name         string
	DeclaredType string
	Content      []byte
	ReadErr      error
}

func (c Candidate) Size() int64 {
	return int64(len(c.Content))
}

// Validate checks bucket, size and type and returns the resolved MIME type.
// Nothing is uploaded here.
func Validate(bucket string, c Candidate) (string, error) {
	policy, ok := PolicyFor(bucket)
	if !ok {
		return "", ErrUnknownBucket
	}
	if c.ReadErr != nil {
		return "", ErrUnreadable
	}

	limit := policy.MaxSize
	if limit > MaxFileSize {
		limit = MaxFileSize
	}
	if c.Size() > limit {
		return "", ErrFileTooLarge
	}

	mimeType := ResolveType(c.DeclaredType, c.Content)
	if !policy.Allows(mimeType) {
		return "", ErrTypeNotAllowed
	}
	return mimeType, nil
}

// ResolveType normalizes the declared part type and falls back to content
// sniffing when the client sent none or application/octet-stream.
func ResolveType(declared string, content []byte) string {
	mimeType := normalize(declared)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = normalize(mimetype.Detect(content).String())
	}
	return mimeType
}

func normalize(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(contentType)
	}
	switch mediaType {
	case "image/jpg", "image/pjpeg":
		return typeJPEG
	case "image/vnd.microsoft.icon":
		return typeICO
	}
	return mediaType
}

// Dimensions decodes the header of png, jpeg and gif images.
func Dimensions(mimeType string, content []byte) (width, height int, ok bool) {
	switch mimeType {
	case typePNG, typeJPEG, typeGIF:
	default:
		return 0, 0, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
