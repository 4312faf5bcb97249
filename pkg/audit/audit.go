// Package audit appends admin actions to the activity_logs table.
package audit

import (
	"time"

	"dalil/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Action tags stored in activity_logs.action.
const (
	ActionApprove       = "approve"
	ActionReject        = "reject"
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionToggleRole    = "toggle_role"
	ActionPublish       = "publish"
	ActionUnpublish     = "unpublish"
	ActionFeature       = "feature"
	ActionUpload        = "upload"
	ActionSendCampaign  = "send_campaign"
	ActionSchedule      = "schedule"
	ActionCancel        = "cancel"
	ActionUnschedule    = "unschedule"
	ActionUpdateSetting = "update_setting"
)

// Resource types stored in activity_logs.resource_type.
const (
	ResourceProduct    = "product"
	ResourceReview     = "review"
	ResourceUser       = "user"
	ResourceNews       = "news"
	ResourceTutorial   = "tutorial"
	ResourceMedia      = "media"
	ResourceSubscriber = "subscriber"
	ResourceCampaign   = "campaign"
	ResourceSetting    = "setting"
)

type Entry struct {
	AdminID      string
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]interface{}
}

type Recorder interface {
	Record(entry Entry)
}

type ActivityLogModel struct {
	ID           string            `gorm:"type:uuid;primary_key"`
	AdminID      string            `gorm:"type:uuid;not null;index"`
	Action       string            `gorm:"type:varchar(64);not null;index"`
	ResourceType string            `gorm:"type:varchar(64);not null;index"`
	ResourceID   string            `gorm:"type:varchar(64)"`
	Details      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

type dbRecorder struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewRecorder(db *gorm.DB, log *logger.Logger) Recorder {
	return &dbRecorder{db: db, logger: log}
}

// Record inserts the entry. The mutation it describes has already been
// applied, so a failed insert is logged and swallowed.
func (r *dbRecorder) Record(entry Entry) {
	row := &ActivityLogModel{
		ID:           uuid.New().String(),
		AdminID:      entry.AdminID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      datatypes.JSONMap(entry.Details),
	}
	if err := r.db.Create(row).Error; err != nil {
		r.logger.WithFields(map[string]interface{}{
			"admin_id":      entry.AdminID,
			"action":        entry.Action,
			"resource_type": entry.ResourceType,
			"resource_id":   entry.ResourceID,
		}).Error("Failed to write activity log: %v", err)
	}
}
