package chain

import (
	"errors"

	"github.com/openfund/crowdchain/currency"
)

// Ledger and wallet failures. All are recoverable at the call boundary; the
// HTTP layer maps them to status codes and the mutation that produced them
// leaves the ledger untouched.
var (
	ErrNotFound              = errors.New("campaign not found")
	ErrInvalidAmount         = currency.ErrInvalidAmount
	ErrInvalidCampaignFields = errors.New("invalid campaign fields")
	ErrUnauthorized          = errors.New("requester is not the campaign owner")
	ErrGoalNotMet            = errors.New("funding goal not met")
	ErrCampaignClosed        = errors.New("campaign is no longer accepting contributions")
	ErrAlreadyWithdrawn      = errors.New("funds already withdrawn")

	ErrWalletUnavailable = errors.New("wallet provider not found")
	ErrNoAccounts        = errors.New("wallet has no accounts")
	ErrUserRejected      = errors.New("wallet connection rejected")
)
