package persistent

import (
	"strings"

	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriberRepository interface {
	Create(subscriber *entity.Subscriber) error
	GetByEmail(email string) (*entity.Subscriber, error)
	Update(subscriber *entity.Subscriber) error
	List(filter entity.SubscriberFilter) ([]*entity.Subscriber, int64, error)
	ListActive() ([]*entity.Subscriber, error)
	Delete(id string) error
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(subscriber *entity.Subscriber) error {
	subscriberModel := ToSubscriberModel(subscriber)
	if subscriberModel.ID == "" {
		subscriberModel.ID = uuid.New().String()
	}
	if err := r.db.Create(subscriberModel).Error; err != nil {
		return err
	}
	*subscriber = *ToSubscriberEntity(subscriberModel)
	return nil
}

func (r *subscriberRepository) GetByEmail(email string) (*entity.Subscriber, error) {
	var subscriberModel model.SubscriberModel
	if err := r.db.Where("email = ?", email).First(&subscriberModel).Error; err != nil {
		return nil, err
	}
	return ToSubscriberEntity(&subscriberModel), nil
}

func (r *subscriberRepository) Update(subscriber *entity.Subscriber) error {
	return r.db.Model(&model.SubscriberModel{}).Where("id = ?", subscriber.ID).Updates(map[string]interface{}{
		"locale":          subscriber.Locale,
		"is_active":       subscriber.IsActive,
		"subscribed_at":   subscriber.SubscribedAt,
		"unsubscribed_at": subscriber.UnsubscribedAt,
	}).Error
}

func (r *subscriberRepository) List(filter entity.SubscriberFilter) ([]*entity.Subscriber, int64, error) {
	query := r.db.Model(&model.SubscriberModel{})

	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("email ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("subscribed_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var subscriberModels []model.SubscriberModel
	if err := query.Find(&subscriberModels).Error; err != nil {
		return nil, 0, err
	}

	subscribers := make([]*entity.Subscriber, len(subscriberModels))
	for i := range subscriberModels {
		subscribers[i] = ToSubscriberEntity(&subscriberModels[i])
	}
	return subscribers, total, nil
}

func (r *subscriberRepository) ListActive() ([]*entity.Subscriber, error) {
	var subscriberModels []model.SubscriberModel
	if err := r.db.Where("is_active = ?", true).Order("subscribed_at ASC").Find(&subscriberModels).Error; err != nil {
		return nil, err
	}

	subscribers := make([]*entity.Subscriber, len(subscriberModels))
	for i := range subscriberModels {
		subscribers[i] = ToSubscriberEntity(&subscriberModels[i])
	}
	return subscribers, nil
}

func (r *subscriberRepository) Delete(id string) error {
	result := r.db.Delete(&model.SubscriberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
