package entity

// Dashboard holds the back-office counters. A counter that could not be read
// is reported as zero.
type Dashboard struct {
	Products      ProductCounts    `json:"products"`
	News          NewsCounts       `json:"news"`
	Tutorials     int64            `json:"tutorials"`
	Users         UserCounts       `json:"users"`
	Subscribers   SubscriberCounts `json:"subscribers"`
	Reviews       int64            `json:"reviews"`
	CampaignsSent int64            `json:"campaigns_sent"`
	MediaFiles    int64            `json:"media_files"`
}

type ProductCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type NewsCounts struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
}

type UserCounts struct {
	Total  int64 `json:"total"`
	Admins int64 `json:"admins"`
}

type SubscriberCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}
