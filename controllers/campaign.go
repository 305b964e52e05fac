package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"

	"github.com/openfund/crowdchain/chain"
	"github.com/openfund/crowdchain/currency"
	"github.com/openfund/crowdchain/models"
)

const walletConnectTimeout = 10 * time.Second

type CampaignController struct {
	ledger *chain.Ledger
	wallet *chain.Wallet
}

func NewCampaignController(ledger *chain.Ledger, wallet *chain.Wallet) *CampaignController {
	return &CampaignController{ledger: ledger, wallet: wallet}
}

func (cc *CampaignController) RegisterRoutes(r *gin.Engine) {
	store := persistence.NewInMemoryStore(time.Minute)

	r.GET("/health", cc.HealthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/campaigns", cc.ListCampaigns)
		v1.POST("/campaigns", cc.CreateCampaign)
		v1.GET("/campaigns/:id", cc.GetCampaign)
		v1.POST("/campaigns/:id/contributions", cc.Contribute)
		v1.POST("/campaigns/:id/withdrawals", cc.Withdraw)
		v1.GET("/transactions", cc.ListTransactions)
		v1.GET("/stats", cache.CachePage(store, time.Minute, cc.GetStats))
	}
}

// campaignView decorates a stored campaign with the read-side fields the
// front-end renders: derived status, clamped progress, days left and
// display-unit amounts. Status is derived per request since it depends on now.
type campaignView struct {
	models.Campaign
	Status              models.CampaignStatus `json:"status"`
	Progress            float64               `json:"progress"`
	DaysLeft            int                   `json:"days_left"`
	GoalDisplay         string                `json:"goal_display"`
	AmountRaisedDisplay string                `json:"amount_raised_display"`
	OwnerShort          string                `json:"owner_short"`
}

func newCampaignView(c models.Campaign, now int64) campaignView {
	goalDisplay, _ := currency.ToDisplayUnit(c.Goal)
	raisedDisplay, _ := currency.ToDisplayUnit(c.AmountRaised)
	return campaignView{
		Campaign:            c,
		Status:              chain.DeriveStatus(c, now),
		Progress:            chain.ProgressPercent(c.AmountRaised, c.Goal),
		DaysLeft:            currency.DaysRemaining(c.Deadline, now),
		GoalDisplay:         goalDisplay,
		AmountRaisedDisplay: raisedDisplay,
		OwnerShort:          currency.ShortenAddress(c.Owner),
	}
}

func (cc *CampaignController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "campaigns": len(cc.ledger.Campaigns())})
}

func (cc *CampaignController) ListCampaigns(c *gin.Context) {
	now := time.Now().Unix()
	campaigns := cc.ledger.Campaigns()
	views := make([]campaignView, 0, len(campaigns))
	for _, campaign := range campaigns {
		views = append(views, newCampaignView(campaign, now))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

func (cc *CampaignController) GetCampaign(c *gin.Context) {
	campaign, err := cc.ledger.Campaign(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": newCampaignView(campaign, time.Now().Unix())})
}

type createCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Goal        string `json:"goal"` // display units
	Deadline    int64  `json:"deadline"`
}

func (cc *CampaignController) CreateCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	owner, ok := cc.ensureWallet(c)
	if !ok {
		return
	}
	campaign, err := cc.ledger.CreateCampaign(owner, req.Title, req.Description, req.ImageURL, req.Goal, req.Deadline)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": newCampaignView(campaign, time.Now().Unix())})
}

type contributeRequest struct {
	Amount string `json:"amount"` // display units
}

func (cc *CampaignController) Contribute(c *gin.Context) {
	var req contributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	contributor, ok := cc.ensureWallet(c)
	if !ok {
		return
	}
	campaign, err := cc.ledger.Contribute(c.Param("id"), req.Amount, contributor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": newCampaignView(campaign, time.Now().Unix())})
}

func (cc *CampaignController) Withdraw(c *gin.Context) {
	requester, ok := cc.ensureWallet(c)
	if !ok {
		return
	}
	tx, err := cc.ledger.WithdrawFunds(c.Param("id"), requester)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tx})
}

func (cc *CampaignController) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cc.ledger.Transactions()})
}

func (cc *CampaignController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cc.ledger.Stats()})
}

// ensureWallet auto-connects the wallet session before a mutation. On failure
// it writes the error response and the mutation must not proceed.
func (cc *CampaignController) ensureWallet(c *gin.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), walletConnectTimeout)
	defer cancel()
	account, err := cc.wallet.EnsureConnected(ctx)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return account, true
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusCode(err), gin.H{"success": false, "error": err.Error()})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, chain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chain.ErrInvalidAmount), errors.Is(err, chain.ErrInvalidCampaignFields):
		return http.StatusBadRequest
	case errors.Is(err, chain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, chain.ErrGoalNotMet), errors.Is(err, chain.ErrCampaignClosed), errors.Is(err, chain.ErrAlreadyWithdrawn):
		return http.StatusConflict
	case errors.Is(err, chain.ErrWalletUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, chain.ErrNoAccounts), errors.Is(err, chain.ErrUserRejected):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
