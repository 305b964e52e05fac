package chain

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openfund/crowdchain/currency"
	"github.com/openfund/crowdchain/models"
)

// Config holds the ledger configuration.
type Config struct {
	SeedDemoData bool
}

// Ledger is the simulated chain: an in-memory campaign store and an
// append-only transaction log. It is constructed explicitly and passed to its
// consumers; there is no package-level instance. A single RWMutex serializes
// mutations, which keeps amount accumulation lost-update free under the
// concurrent callers the HTTP layer introduces.
type Ledger struct {
	config *Config
	hub    *Hub
	logger *logrus.Entry

	mu           sync.RWMutex
	campaigns    []*models.Campaign
	byID         map[string]*models.Campaign
	transactions []models.Transaction
	nextID       int
	totalRaised  *big.Int
	stats        models.Stats

	now func() int64
}

func NewLedger(cfg *Config, logger *logrus.Entry) *Ledger {
	l := &Ledger{
		config:      cfg,
		hub:         newHub(),
		logger:      logger,
		byID:        make(map[string]*models.Campaign),
		nextID:      1,
		totalRaised: new(big.Int),
		stats:       models.Stats{StartTime: time.Now()},
		now:         func() int64 { return time.Now().Unix() },
	}
	if cfg.SeedDemoData {
		l.seed()
	}
	return l
}

// Start launches the event hub and the periodic stats refresher. It returns
// immediately; both goroutines exit when ctx is cancelled.
func (l *Ledger) Start(ctx context.Context) {
	go l.hub.run(ctx)
	go l.updateStats(ctx)
}

// Subscribe returns a channel receiving an Event for every ledger mutation.
func (l *Ledger) Subscribe() chan Event { return l.hub.Subscribe() }

// Unsubscribe releases a channel obtained from Subscribe.
func (l *Ledger) Unsubscribe(ch chan Event) { l.hub.Unsubscribe(ch) }

// Campaigns returns all campaigns in insertion order. The result is a
// snapshot; mutating it does not affect the ledger.
func (l *Ledger) Campaigns() []models.Campaign {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Campaign, 0, len(l.campaigns))
	for _, c := range l.campaigns {
		out = append(out, copyCampaign(c))
	}
	return out
}

// Campaign returns the campaign with the given id or ErrNotFound.
func (l *Ledger) Campaign(id string) (models.Campaign, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.byID[id]
	if !ok {
		return models.Campaign{}, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return copyCampaign(c), nil
}

// CreateCampaign validates the fields, assigns the next id and appends a
// creation transaction. The goal is given in display units.
func (l *Ledger) CreateCampaign(owner, title, description, imageURL, goalDisplay string, deadline int64) (models.Campaign, error) {
	if err := validateFields(title, description, imageURL); err != nil {
		return models.Campaign{}, err
	}
	goal, err := currency.ToSmallestUnit(goalDisplay)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("goal: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	c := &models.Campaign{
		ID:           strconv.Itoa(l.nextID),
		Owner:        owner,
		Title:        title,
		Description:  description,
		ImageURL:     imageURL,
		Goal:         goal,
		Deadline:     deadline,
		AmountRaised: "0",
		Contributors: []string{},
		IsActive:     true,
	}
	l.nextID++
	l.campaigns = append(l.campaigns, c)
	l.byID[c.ID] = c
	l.stats.CampaignCount++

	tx := l.appendTransaction(models.TxCreation, c.ID, "", owner)
	l.logger.WithFields(logrus.Fields{"campaign": c.ID, "owner": owner}).Info("campaign created")
	l.hub.publish(Event{Type: EventCampaignCreated, Campaign: copyCampaign(c), Transaction: tx})
	return copyCampaign(c), nil
}

// Contribute adds amountDisplay (display units) to the campaign's total. The
// amount is accumulated with integer arithmetic; totals routinely exceed
// 2^53 smallest units. Contributions to campaigns that are no longer Active
// are rejected.
func (l *Ledger) Contribute(campaignID, amountDisplay, contributor string) (models.Campaign, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.byID[campaignID]
	if !ok {
		return models.Campaign{}, fmt.Errorf("%w: id %s", ErrNotFound, campaignID)
	}
	amount, err := currency.ToSmallestUnit(amountDisplay)
	if err != nil {
		return models.Campaign{}, err
	}
	if status := DeriveStatus(*c, l.now()); status != models.StatusActive {
		return models.Campaign{}, fmt.Errorf("%w: status %s", ErrCampaignClosed, status)
	}

	raised, err := currency.ParseAmount(c.AmountRaised)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("corrupt amount on campaign %s: %w", c.ID, err)
	}
	value, _ := new(big.Int).SetString(amount, 10)
	c.AmountRaised = raised.Add(raised, value).String()
	c.ContributionsCount++
	if !contains(c.Contributors, contributor) {
		c.Contributors = append(c.Contributors, contributor)
	}
	l.totalRaised.Add(l.totalRaised, value)
	l.stats.ContributionCount++
	l.stats.TotalRaised = l.totalRaised.String()

	tx := l.appendTransaction(models.TxContribution, c.ID, amount, contributor)
	l.logger.WithFields(logrus.Fields{"campaign": c.ID, "from": contributor, "amount": amount}).Info("contribution recorded")
	l.hub.publish(Event{Type: EventContribution, Campaign: copyCampaign(c), Transaction: tx})
	return copyCampaign(c), nil
}

// WithdrawFunds releases a funded campaign's balance to its owner. The
// campaign is deactivated and marked withdrawn so a second call fails;
// AmountRaised is kept so the historical total stays on record.
func (l *Ledger) WithdrawFunds(campaignID, requester string) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.byID[campaignID]
	if !ok {
		return models.Transaction{}, fmt.Errorf("%w: id %s", ErrNotFound, campaignID)
	}
	if requester != c.Owner {
		return models.Transaction{}, ErrUnauthorized
	}
	if c.Withdrawn {
		return models.Transaction{}, ErrAlreadyWithdrawn
	}
	if !CanWithdraw(*c, requester, l.now()) {
		return models.Transaction{}, ErrGoalNotMet
	}

	c.Withdrawn = true
	c.IsActive = false
	l.stats.WithdrawalCount++

	tx := l.appendTransaction(models.TxWithdrawal, c.ID, c.AmountRaised, requester)
	l.logger.WithFields(logrus.Fields{"campaign": c.ID, "owner": requester, "amount": c.AmountRaised}).Info("funds withdrawn")
	l.hub.publish(Event{Type: EventWithdrawal, Campaign: copyCampaign(c), Transaction: tx})
	return tx, nil
}

// Transactions returns the log newest first. The result is a snapshot copy;
// the log itself is append-only and owned by the ledger.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Transaction, len(l.transactions))
	for i, tx := range l.transactions {
		out[len(l.transactions)-1-i] = tx
	}
	return out
}

// Stats returns a snapshot of the operational counters.
func (l *Ledger) Stats() models.Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stats := l.stats
	stats.TransactionCount = int64(len(l.transactions))
	stats.TotalRaised = l.totalRaised.String()
	stats.Subscribers = l.hub.Subscribers()
	return stats
}

// appendTransaction records a log entry. Callers must hold the write lock.
func (l *Ledger) appendTransaction(txType models.TxType, campaignID, amount, from string) models.Transaction {
	tx := models.Transaction{
		Type:       txType,
		CampaignID: campaignID,
		Amount:     amount,
		Timestamp:  l.now(),
		From:       from,
	}
	l.transactions = append(l.transactions, tx)
	return tx
}

func (l *Ledger) updateStats(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			l.stats.LastUpdateTime = time.Now()
			l.mu.Unlock()
		}
	}
}

func validateFields(title, description, imageURL string) error {
	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidCampaignFields)
	case description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidCampaignFields)
	case imageURL == "":
		return fmt.Errorf("%w: image_url is required", ErrInvalidCampaignFields)
	}
	return nil
}

func copyCampaign(c *models.Campaign) models.Campaign {
	out := *c
	out.Contributors = append([]string(nil), c.Contributors...)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
