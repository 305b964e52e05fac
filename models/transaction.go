package models

type TxType string

const (
	TxCreation     TxType = "creation"
	TxContribution TxType = "contribution"
	TxWithdrawal   TxType = "withdrawal"
)

// Transaction is one append-only log entry. Amount is a smallest-unit integer
// string and is empty for creation entries.
type Transaction struct {
	Type       TxType `json:"type"`
	CampaignID string `json:"campaign_id"`
	Amount     string `json:"amount,omitempty"`
	Timestamp  int64  `json:"timestamp"`
	From       string `json:"from"`
}
