package models

// CampaignStatus is derived from stored fields and the current time; it is
// never stored on the campaign itself.
type CampaignStatus string

const (
	StatusActive     CampaignStatus = "Active"
	StatusSuccessful CampaignStatus = "Successful"
	StatusExpired    CampaignStatus = "Expired"
)
