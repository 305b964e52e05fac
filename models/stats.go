package models

import "time"

type Stats struct {
	CampaignCount     int64     `json:"campaign_count"`
	TransactionCount  int64     `json:"transaction_count"`
	ContributionCount int64     `json:"contribution_count"`
	WithdrawalCount   int64     `json:"withdrawal_count"`
	TotalRaised       string    `json:"total_raised"` // smallest-unit integer string
	StartTime         time.Time `json:"start_time"`
	LastUpdateTime    time.Time `json:"last_update_time"`
	Subscribers       int       `json:"subscribers"`
}
