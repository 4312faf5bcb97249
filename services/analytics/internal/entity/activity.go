package entity

import "time"

type ActivityLog struct {
	ID           string                 `json:"id"`
	AdminID      string                 `json:"admin_id"`
	AdminEmail   string                 `json:"admin_email"`
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resource_type"`
	ResourceID   string                 `json:"resource_id"`
	Details      map[string]interface{} `json:"details"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ActivityFilter narrows the activity log. From and To bound created_at,
// both inclusive.
type ActivityFilter struct {
	AdminID      string
	Action       string
	ResourceType string
	ResourceID   string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}
