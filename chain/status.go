package chain

import (
	"math/big"

	"github.com/openfund/crowdchain/currency"
	"github.com/openfund/crowdchain/models"
)

// DeriveStatus classifies a campaign at the given time. Status is never
// stored; callers must re-derive on every read since now advances.
func DeriveStatus(c models.Campaign, now int64) models.CampaignStatus {
	if !c.IsActive {
		if goalMet(c) {
			return models.StatusSuccessful
		}
		return models.StatusExpired
	}
	if now > c.Deadline {
		return models.StatusExpired
	}
	return models.StatusActive
}

// ProgressPercent returns percent funded, clamped to [0,100]. A zero or
// unparseable goal yields 0; creation-time validation keeps zero-goal
// campaigns out of the ledger, so that branch only guards corrupt input.
func ProgressPercent(amountRaised, goal string) float64 {
	raised, err := currency.ParseAmount(amountRaised)
	if err != nil {
		return 0
	}
	target, err := currency.ParseAmount(goal)
	if err != nil || target.Sign() == 0 {
		return 0
	}
	if raised.Cmp(target) >= 0 {
		return 100
	}
	pct, _ := new(big.Float).Quo(
		new(big.Float).SetInt(raised),
		new(big.Float).SetInt(target),
	).Float64()
	return pct * 100
}

// CanWithdraw reports whether requester may withdraw the campaign's funds:
// the owner, once the goal is met (Successful, or fully funded while still
// Active) and only once.
func CanWithdraw(c models.Campaign, requester string, now int64) bool {
	if requester != c.Owner || c.Withdrawn {
		return false
	}
	status := DeriveStatus(c, now)
	if status == models.StatusSuccessful {
		return true
	}
	return status == models.StatusActive && ProgressPercent(c.AmountRaised, c.Goal) >= 100
}

// goalMet compares as integers; the amounts exceed float precision.
func goalMet(c models.Campaign) bool {
	raised, err := currency.ParseAmount(c.AmountRaised)
	if err != nil {
		return false
	}
	target, err := currency.ParseAmount(c.Goal)
	if err != nil {
		return false
	}
	return raised.Cmp(target) >= 0
}
