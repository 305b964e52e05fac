package chain

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openfund/crowdchain/currency"
)

// WalletConfig describes the simulated wallet provider. The failure modes of
// a real browser wallet (missing provider, empty account list, user
// rejection) are driven from configuration instead.
type WalletConfig struct {
	Available    bool
	Accounts     []string
	Reject       bool
	ConnectDelay time.Duration
}

// Wallet tracks the single simulated connected account. Ledger mutations from
// external callers are gated on a connected session.
type Wallet struct {
	cfg    WalletConfig
	logger *logrus.Entry

	mu        sync.RWMutex
	connected bool
	account   string
}

func NewWallet(cfg WalletConfig, logger *logrus.Entry) *Wallet {
	return &Wallet{cfg: cfg, logger: logger}
}

// Connect establishes the session and returns the connected account. The
// simulated provider latency is bounded by ctx, so a caller can time out or
// cancel a pending connect.
func (w *Wallet) Connect(ctx context.Context) (string, error) {
	if !w.cfg.Available {
		return "", ErrWalletUnavailable
	}
	if w.cfg.ConnectDelay > 0 {
		timer := time.NewTimer(w.cfg.ConnectDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	if w.cfg.Reject {
		return "", ErrUserRejected
	}
	if len(w.cfg.Accounts) == 0 {
		return "", ErrNoAccounts
	}

	w.mu.Lock()
	w.connected = true
	w.account = w.cfg.Accounts[0]
	account := w.account
	w.mu.Unlock()

	w.logger.Infof("Wallet connected to %s", currency.ShortenAddress(account))
	return account, nil
}

// EnsureConnected returns the current account, connecting first if no session
// exists. A failed connect leaves the session disconnected.
func (w *Wallet) EnsureConnected(ctx context.Context) (string, error) {
	w.mu.RLock()
	connected, account := w.connected, w.account
	w.mu.RUnlock()
	if connected {
		return account, nil
	}
	return w.Connect(ctx)
}

func (w *Wallet) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// CurrentAccount returns the connected account address, or "" when no
// session exists.
func (w *Wallet) CurrentAccount() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.account
}
