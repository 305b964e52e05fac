package models

// Campaign is a single fundraising effort on the simulated chain. Goal and
// AmountRaised are smallest-unit (wei) integer strings; they routinely exceed
// the range of a float64 or int64 and must never be parsed as either.
type Campaign struct {
	ID                 string   `json:"id"`
	Owner              string   `json:"owner"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	ImageURL           string   `json:"image_url"`
	Goal               string   `json:"goal"`
	Deadline           int64    `json:"deadline"`
	AmountRaised       string   `json:"amount_raised"`
	Contributors       []string `json:"contributors"`
	ContributionsCount int      `json:"contributions_count"`
	IsActive           bool     `json:"is_active"`
	Withdrawn          bool     `json:"withdrawn"`
}
