package persistent

import (
	"strings"

	"dalil/pkg/database"
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(filter entity.ProductFilter) ([]*entity.Product, int64, error)
	Update(product *entity.Product, fields ...string) error
	Delete(id string) error
	IncrementViews(id string) error
	Facets() (*entity.Facets, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *entity.Product) error {
	productModel := ToProductModel(product)
	if productModel.ID == "" {
		productModel.ID = uuid.New().String()
	}
	if err := r.db.Create(productModel).Error; err != nil {
		return err
	}
	*product = *ToProductEntity(productModel)
	return nil
}

func (r *productRepository) GetByID(id string) (*entity.Product, error) {
	var productModel model.ProductModel
	if err := r.db.Where("id = ?", id).First(&productModel).Error; err != nil {
		return nil, err
	}
	return ToProductEntity(&productModel), nil
}

func (r *productRepository) List(filter entity.ProductFilter) ([]*entity.Product, int64, error) {
	query := r.db.Model(&model.ProductModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Label != "" {
		query = query.Where("label = ?", filter.Label)
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(tags)", filter.Tag)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name ILIKE ? OR name_ar ILIKE ? OR description ILIKE ? OR description_ar ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case entity.SortPopular:
		query = query.Order("views DESC").Order("created_at DESC")
	case entity.SortName:
		query = query.Order("name ASC")
	default:
		query = query.Order("is_featured DESC").Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var productModels []model.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*entity.Product, len(productModels))
	for i := range productModels {
		products[i] = ToProductEntity(&productModels[i])
	}
	return products, total, nil
}

// Update writes the named editable fields. Status, views and moderation
// columns have their own statements.
func (r *productRepository) Update(product *entity.Product, fields ...string) error {
	return database.UpdateFields(r.db, &model.ProductModel{}, product.ID, productColumns(product), fields)
}

func (r *productRepository) Delete(id string) error {
	result := r.db.Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) IncrementViews(id string) error {
	return r.db.Model(&model.ProductModel{}).Where("id = ?", id).UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

func (r *productRepository) Facets() (*entity.Facets, error) {
	facets := &entity.Facets{Categories: []string{}, Labels: []string{}, Tags: []string{}}
	approved := r.db.Model(&model.ProductModel{}).Where("status = ?", string(entity.StatusApproved)).Session(&gorm.Session{})

	if err := approved.
		Where("category <> ''").Distinct().Order("category").
		Pluck("category", &facets.Categories).Error; err != nil {
		return nil, err
	}
	if err := approved.
		Where("label <> ''").Distinct().Order("label").
		Pluck("label", &facets.Labels).Error; err != nil {
		return nil, err
	}
	if err := r.db.Raw(
		"SELECT DISTINCT unnest(tags) AS tag FROM products WHERE status = ? ORDER BY tag",
		string(entity.StatusApproved),
	).Scan(&facets.Tags).Error; err != nil {
		return nil, err
	}
	return facets, nil
}
