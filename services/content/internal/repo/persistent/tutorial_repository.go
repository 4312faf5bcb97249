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

type TutorialRepository interface {
	Create(tutorial *entity.Tutorial) error
	GetByID(id string) (*entity.Tutorial, error)
	List(filter entity.TutorialFilter) ([]*entity.Tutorial, int64, error)
	Update(tutorial *entity.Tutorial, fields ...string) error
	Delete(id string) error
	IncrementViews(id string) error
}

type tutorialRepository struct {
	db *gorm.DB
}

func NewTutorialRepository(db *gorm.DB) TutorialRepository {
	return &tutorialRepository{db: db}
}

func (r *tutorialRepository) Create(tutorial *entity.Tutorial) error {
	tutorialModel := ToTutorialModel(tutorial)
	if tutorialModel.ID == "" {
		tutorialModel.ID = uuid.New().String()
	}
	if err := r.db.Create(tutorialModel).Error; err != nil {
		return err
	}
	*tutorial = *ToTutorialEntity(tutorialModel)
	return nil
}

func (r *tutorialRepository) GetByID(id string) (*entity.Tutorial, error) {
	var tutorialModel model.TutorialModel
	if err := r.db.Where("id = ?", id).First(&tutorialModel).Error; err != nil {
		return nil, err
	}
	return ToTutorialEntity(&tutorialModel), nil
}

func (r *tutorialRepository) List(filter entity.TutorialFilter) ([]*entity.Tutorial, int64, error) {
	query := r.db.Model(&model.TutorialModel{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", string(filter.Difficulty))
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(tags)", filter.Tag)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title_ar ILIKE ? OR title_en ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var tutorialModels []model.TutorialModel
	if err := query.Find(&tutorialModels).Error; err != nil {
		return nil, 0, err
	}

	tutorials := make([]*entity.Tutorial, len(tutorialModels))
	for i := range tutorialModels {
		tutorials[i] = ToTutorialEntity(&tutorialModels[i])
	}
	return tutorials, total, nil
}

func (r *tutorialRepository) Update(tutorial *entity.Tutorial, fields ...string) error {
	return database.UpdateFields(r.db, &model.TutorialModel{}, tutorial.ID, tutorialColumns(tutorial), fields)
}

func (r *tutorialRepository) Delete(id string) error {
	result := r.db.Delete(&model.TutorialModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tutorialRepository) IncrementViews(id string) error {
	return r.db.Model(&model.TutorialModel{}).Where("id = ?", id).UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}
