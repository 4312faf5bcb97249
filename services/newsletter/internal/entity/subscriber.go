package entity

import "time"

type Subscriber struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Locale         string     `json:"locale"`
	IsActive       bool       `json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

type SubscriberFilter struct {
	Active *bool
	Search string
	Limit  int
	Offset int
}
