package persistent

import (
	"strings"

	"dalil/pkg/database"
	"dalil/services/content/internal/entity"
	"dalil/services/content/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsRepository interface {
	Create(news *entity.News) error
	GetByID(id string) (*entity.News, error)
	List(filter entity.NewsFilter) ([]*entity.News, int64, error)
	Update(news *entity.News, fields ...string) error
	Delete(id string) error
	IncrementViews(id string) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(news *entity.News) error {
	newsModel := ToNewsModel(news)
	if newsModel.ID == "" {
		newsModel.ID = uuid.New().String()
	}
	if err := r.db.Create(newsModel).Error; err != nil {
		return err
	}
	*news = *ToNewsEntity(newsModel)
	return nil
}

func (r *newsRepository) GetByID(id string) (*entity.News, error) {
	var newsModel model.NewsModel
	if err := r.db.Where("id = ?", id).First(&newsModel).Error; err != nil {
		return nil, err
	}
	return ToNewsEntity(&newsModel), nil
}

func (r *newsRepository) List(filter entity.NewsFilter) ([]*entity.News, int64, error) {
	query := r.db.Model(&model.NewsModel{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	} else if filter.Published != nil {
		query = query.Where("is_published = ?", *filter.Published)
	}
	if filter.Label != "" {
		query = query.Where("label = ?", filter.Label)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title_ar ILIKE ? OR title_en ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PublishedOnly {
		query = query.Order("published_at DESC NULLS LAST")
	}
	query = query.Order("created_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var newsModels []model.NewsModel
	if err := query.Find(&newsModels).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entity.News, len(newsModels))
	for i := range newsModels {
		items[i] = ToNewsEntity(&newsModels[i])
	}
	return items, total, nil
}

func (r *newsRepository) Update(news *entity.News, fields ...string) error {
	return database.UpdateFields(r.db, &model.NewsModel{}, news.ID, newsColumns(news), fields)
}

func (r *newsRepository) Delete(id string) error {
	result := r.db.Delete(&model.NewsModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *newsRepository) IncrementViews(id string) error {
	return r.db.Model(&model.NewsModel{}).Where("id = ?", id).UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}
