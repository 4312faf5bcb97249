package persistent

import (
	"time"

	"dalil/pkg/database"
	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(campaign *entity.Campaign) error
	GetByID(id string) (*entity.Campaign, error)
	List(filter entity.CampaignFilter) ([]*entity.Campaign, int64, error)
	// Update writes the named fields while the campaign is still draft or
	// scheduled. A campaign that moved on is reported as gorm.ErrRecordNotFound.
	Update(campaign *entity.Campaign, fields ...string) error
	Delete(id string) error
	// Transition moves the campaign to `to` only if its current status is one
	// of from, in a single UPDATE. It reports whether a row changed.
	Transition(id string, from []entity.CampaignStatus, to entity.CampaignStatus) (bool, error)
	MarkSent(id string, recipients, failed int, sentAt time.Time) error
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(campaign *entity.Campaign) error {
	campaignModel := ToCampaignModel(campaign)
	if campaignModel.ID == "" {
		campaignModel.ID = uuid.New().String()
	}
	if err := r.db.Create(campaignModel).Error; err != nil {
		return err
	}
	*campaign = *ToCampaignEntity(campaignModel)
	return nil
}

func (r *campaignRepository) GetByID(id string) (*entity.Campaign, error) {
	var campaignModel model.CampaignModel
	if err := r.db.Where("id = ?", id).First(&campaignModel).Error; err != nil {
		return nil, err
	}
	return ToCampaignEntity(&campaignModel), nil
}

func (r *campaignRepository) List(filter entity.CampaignFilter) ([]*entity.Campaign, int64, error) {
	query := r.db.Model(&model.CampaignModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var campaignModels []model.CampaignModel
	if err := query.Find(&campaignModels).Error; err != nil {
		return nil, 0, err
	}

	campaigns := make([]*entity.Campaign, len(campaignModels))
	for i := range campaignModels {
		campaigns[i] = ToCampaignEntity(&campaignModels[i])
	}
	return campaigns, total, nil
}

func (r *campaignRepository) Update(campaign *entity.Campaign, fields ...string) error {
	editable := r.db.Where("status IN ?", []string{string(entity.CampaignDraft), string(entity.CampaignScheduled)})
	return database.UpdateFields(editable, &model.CampaignModel{}, campaign.ID, campaignColumns(campaign), fields)
}

func (r *campaignRepository) Delete(id string) error {
	result := r.db.Delete(&model.CampaignModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *campaignRepository) Transition(id string, from []entity.CampaignStatus, to entity.CampaignStatus) (bool, error) {
	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = string(s)
	}

	result := r.db.Model(&model.CampaignModel{}).
		Where("id = ? AND status IN ?", id, statuses).
		Update("status", string(to))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *campaignRepository) MarkSent(id string, recipients, failed int, sentAt time.Time) error {
	return r.db.Model(&model.CampaignModel{}).
		Where("id = ? AND status = ?", id, string(entity.CampaignSending)).
		Updates(map[string]interface{}{
			"status":           string(entity.CampaignSent),
			"sent_at":          sentAt,
			"recipients_count": recipients,
			"failed_count":     failed,
		}).Error
}
