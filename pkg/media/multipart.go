package media

import (
	"fmt"
	"io"
	"mime/multipart"
)

// FromFileHeader reads one multipart part. At most MaxFileSize+1 bytes are
// kept so an oversized part still fails Validate without being buffered whole.
func FromFileHeader(fh *multipart.FileHeader) (Candidate, error) {
	f, err := fh.Open()
	if err != nil {
		return Candidate{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return Candidate{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return Candidate{
		Name:         fh.Filename,
		DeclaredType: fh.Header.Get("Content-Type"),
		Content:      content,
	}, nil
}
