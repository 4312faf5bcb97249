package persistent

import (
	"strings"

	"dalil/services/media/internal/entity"
	"dalil/services/media/internal/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type MediaRepository interface {
	Create(file *entity.MediaFile) error
	GetByID(id string) (*entity.MediaFile, error)
	List(filter entity.MediaFilter) ([]*entity.MediaFile, int64, error)
	UpdateTags(id string, tags []string) error
	Delete(id string) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(file *entity.MediaFile) error {
	fileModel := ToMediaModel(file)
	if fileModel.ID == "" {
		fileModel.ID = uuid.New().String()
	}
	if err := r.db.Create(fileModel).Error; err != nil {
		return err
	}
	*file = *ToMediaEntity(fileModel)
	return nil
}

func (r *mediaRepository) GetByID(id string) (*entity.MediaFile, error) {
	var fileModel model.MediaFileModel
	if err := r.db.Where("id = ?", id).First(&fileModel).Error; err != nil {
		return nil, err
	}
	return ToMediaEntity(&fileModel), nil
}

func (r *mediaRepository) List(filter entity.MediaFilter) ([]*entity.MediaFile, int64, error) {
	query := r.db.Model(&model.MediaFileModel{})

	if filter.Bucket != "" {
		query = query.Where("bucket = ?", filter.Bucket)
	}
	if filter.MimeType != "" {
		query = query.Where("mime_type = ?", filter.MimeType)
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(tags)", filter.Tag)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("original_name ILIKE ? OR filename ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var fileModels []model.MediaFileModel
	if err := query.Find(&fileModels).Error; err != nil {
		return nil, 0, err
	}

	files := make([]*entity.MediaFile, len(fileModels))
	for i := range fileModels {
		files[i] = ToMediaEntity(&fileModels[i])
	}
	return files, total, nil
}

func (r *mediaRepository) UpdateTags(id string, tags []string) error {
	result := r.db.Model(&model.MediaFileModel{}).Where("id = ?", id).Update("tags", pq.StringArray(tags))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mediaRepository) Delete(id string) error {
	result := r.db.Delete(&model.MediaFileModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
