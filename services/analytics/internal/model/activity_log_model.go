package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLogRow is an activity_logs row joined with the admin's email.
type ActivityLogRow struct {
	ID           string
	AdminID      string
	AdminEmail   string
	Action       string
	ResourceType string
	ResourceID   string
	Details      datatypes.JSONMap
	CreatedAt    time.Time
}
