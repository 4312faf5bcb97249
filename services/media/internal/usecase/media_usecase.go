package usecase

import (
	"bytes"
	"strings"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/metrics"
	"dalil/pkg/s3"
	"dalil/services/media/internal/entity"
	"dalil/services/media/internal/repo/persistent"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

const (
	resultStored   = "stored"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

type MediaUseCase interface {
	Upload(adminID, bucket string, tags []string, files []media.Candidate) ([]entity.UploadResult, error)
	ListMedia(adminID string, filter entity.MediaFilter) ([]*entity.MediaFile, int64, error)
	GetMedia(adminID, id string) (*entity.MediaFile, error)
	UpdateTags(adminID, id string, tags []string) (*entity.MediaFile, error)
	DeleteMedia(adminID, id string) error
}

type mediaUseCase struct {
	mediaRepo persistent.MediaRepository
	storage   s3.Storage
	gate      authz.Gate
	recorder  audit.Recorder
	logger    *logger.Logger
	now       func() time.Time
}

func NewMediaUseCase(
	mediaRepo persistent.MediaRepository,
	storage s3.Storage,
	gate authz.Gate,
	recorder audit.Recorder,
	logger *logger.Logger,
) MediaUseCase {
	return &mediaUseCase{
		mediaRepo: mediaRepo,
		storage:   storage,
		gate:      gate,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Upload stores files one at a time. Request-level problems (caller, empty or
// oversized batch, unknown bucket) fail the whole call; anything after that is
// reported on the file it concerns and the rest of the batch continues.
func (uc *mediaUseCase) Upload(adminID, bucket string, tags []string, files []media.Candidate) ([]entity.UploadResult, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, media.ErrNoFiles
	}
	if len(files) > media.MaxBatchFiles {
		return nil, media.ErrTooManyFiles
	}
	if _, ok := media.PolicyFor(bucket); !ok {
		return nil, media.ErrUnknownBucket
	}

	tags = NormalizeTags(tags)
	results := make([]entity.UploadResult, 0, len(files))
	for _, candidate := range files {
		file, err := uc.store(adminID, bucket, tags, candidate)
		results = append(results, entity.UploadResult{Name: candidate.Name, File: file, Err: err})
	}
	return results, nil
}

func (uc *mediaUseCase) store(adminID, bucket string, tags []string, candidate media.Candidate) (*entity.MediaFile, error) {
	mimeType, err := media.Validate(bucket, candidate)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(bucket, resultRejected).Inc()
		return nil, err
	}

	key := media.StoredName(candidate.Name, uc.now())
	url, err := uc.storage.UploadFile(bucket, key, bytes.NewReader(candidate.Content), mimeType)
	if err != nil {
		uc.logger.Error("Failed to upload %s to %s: %v", key, bucket, err)
		metrics.UploadsTotal.WithLabelValues(bucket, resultFailed).Inc()
		return nil, media.ErrUploadFailed
	}

	file := &entity.MediaFile{
		Filename:     key,
		OriginalName: candidate.Name,
		Bucket:       bucket,
		URL:          url,
		Size:         candidate.Size(),
		MimeType:     mimeType,
		Tags:         tags,
		UploadedBy:   adminID,
	}
	if width, height, ok := media.Dimensions(mimeType, candidate.Content); ok {
		file.Width, file.Height = &width, &height
	}

	if err := uc.mediaRepo.Create(file); err != nil {
		uc.logger.Error("Failed to save metadata for %s: %v", key, err)
		if derr := uc.storage.DeleteFile(bucket, key); derr != nil {
			uc.logger.Warn("Failed to remove orphaned object %s/%s: %v", bucket, key, derr)
		}
		metrics.UploadsTotal.WithLabelValues(bucket, resultFailed).Inc()
		return nil, apperr.Internal(err)
	}

	metrics.UploadsTotal.WithLabelValues(bucket, resultStored).Inc()
	metrics.UploadBytes.WithLabelValues(bucket).Add(float64(file.Size))
	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionUpload,
		ResourceType: audit.ResourceMedia,
		ResourceID:   file.ID,
		Details: map[string]interface{}{
			"bucket":   bucket,
			"filename": key,
			"size":     file.Size,
		},
	})
	return file, nil
}

func (uc *mediaUseCase) ListMedia(adminID string, filter entity.MediaFilter) ([]*entity.MediaFile, int64, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)

	files, total, err := uc.mediaRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list media: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return files, total, nil
}

func (uc *mediaUseCase) GetMedia(adminID, id string) (*entity.MediaFile, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	file, err := uc.mediaRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrMediaNotFound)
	}
	return file, nil
}

func (uc *mediaUseCase) UpdateTags(adminID, id string, tags []string) (*entity.MediaFile, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	tags = NormalizeTags(tags)
	if err := uc.mediaRepo.UpdateTags(id, tags); err != nil {
		err = storeErr(err, ErrMediaNotFound)
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to update tags of %s: %v", id, err)
		}
		return nil, err
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceMedia,
		ResourceID:   id,
		Details:      map[string]interface{}{"tags": tags},
	})

	file, err := uc.mediaRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrMediaNotFound)
	}
	return file, nil
}

// DeleteMedia removes the object first. If storage refuses, the row stays so
// the delete can be retried.
func (uc *mediaUseCase) DeleteMedia(adminID, id string) error {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return err
	}

	file, err := uc.mediaRepo.GetByID(id)
	if err != nil {
		return storeErr(err, ErrMediaNotFound)
	}
	if err := uc.storage.DeleteFile(file.Bucket, file.Filename); err != nil {
		uc.logger.Error("Failed to delete object %s/%s: %v", file.Bucket, file.Filename, err)
		return apperr.Internal(err)
	}
	if err := uc.mediaRepo.Delete(id); err != nil {
		err = storeErr(err, ErrMediaNotFound)
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to delete media row %s: %v", id, err)
		}
		return err
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceMedia,
		ResourceID:   id,
		Details:      map[string]interface{}{"bucket": file.Bucket, "filename": file.Filename},
	})
	return nil
}

// NormalizeTags trims, lowercases and de-duplicates tags, keeping order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
