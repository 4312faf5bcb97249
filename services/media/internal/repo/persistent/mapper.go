package persistent

import (
	"dalil/services/media/internal/entity"
	"dalil/services/media/internal/model"

	"github.com/lib/pq"
)

func ToMediaEntity(m *model.MediaFileModel) *entity.MediaFile {
	if m == nil {
		return nil
	}

	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	f := &entity.MediaFile{
		ID:           m.ID,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		Bucket:       m.Bucket,
		URL:          m.URL,
		Size:         m.Size,
		MimeType:     m.MimeType,
		Width:        m.Width,
		Height:       m.Height,
		Tags:         tags,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.UploadedBy != nil {
		f.UploadedBy = *m.UploadedBy
	}
	return f
}

func ToMediaModel(e *entity.MediaFile) *model.MediaFileModel {
	if e == nil {
		return nil
	}

	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}

	m := &model.MediaFileModel{
		ID:           e.ID,
		Filename:     e.Filename,
		OriginalName: e.OriginalName,
		Bucket:       e.Bucket,
		URL:          e.URL,
		Size:         e.Size,
		MimeType:     e.MimeType,
		Width:        e.Width,
		Height:       e.Height,
		Tags:         pq.StringArray(tags),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.UploadedBy != "" {
		uploadedBy := e.UploadedBy
		m.UploadedBy = &uploadedBy
	}
	return m
}
