package chain

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(t *testing.T, cfg WalletConfig) *Wallet {
	t.Helper()
	base := logrus.New()
	base.SetLevel(logrus.ErrorLevel)
	return NewWallet(cfg, base.WithField("service", "wallet"))
}

func TestWalletConnect(t *testing.T) {
	tests := []struct {
		name    string
		cfg     WalletConfig
		wantErr error
	}{
		{
			name:    "Provider missing",
			cfg:     WalletConfig{Available: false, Accounts: []string{testOwner}},
			wantErr: ErrWalletUnavailable,
		},
		{
			name:    "No accounts",
			cfg:     WalletConfig{Available: true},
			wantErr: ErrNoAccounts,
		},
		{
			name:    "User rejects",
			cfg:     WalletConfig{Available: true, Accounts: []string{testOwner}, Reject: true},
			wantErr: ErrUserRejected,
		},
		{
			name: "Successful connect",
			cfg:  WalletConfig{Available: true, Accounts: []string{testOwner, testContributor}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWallet(t, tt.cfg)
			account, err := w.Connect(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, w.IsConnected())
				assert.Empty(t, w.CurrentAccount())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testOwner, account)
			assert.True(t, w.IsConnected())
			assert.Equal(t, testOwner, w.CurrentAccount())
		})
	}
}

func TestWalletConnectCancellation(t *testing.T) {
	w := newTestWallet(t, WalletConfig{
		Available:    true,
		Accounts:     []string{testOwner},
		ConnectDelay: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := w.Connect(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, w.IsConnected())
}

func TestEnsureConnected(t *testing.T) {
	t.Run("Auto-connects on first use", func(t *testing.T) {
		w := newTestWallet(t, WalletConfig{Available: true, Accounts: []string{testOwner}})
		require.False(t, w.IsConnected())

		account, err := w.EnsureConnected(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testOwner, account)
		assert.True(t, w.IsConnected())
	})

	t.Run("Reuses the existing session", func(t *testing.T) {
		w := newTestWallet(t, WalletConfig{
			Available:    true,
			Accounts:     []string{testOwner},
			ConnectDelay: time.Hour, // a second connect would hang
		})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		w.mu.Lock()
		w.connected, w.account = true, testOwner
		w.mu.Unlock()

		account, err := w.EnsureConnected(ctx)
		require.NoError(t, err)
		assert.Equal(t, testOwner, account)
	})

	t.Run("Failure propagates and leaves no session", func(t *testing.T) {
		w := newTestWallet(t, WalletConfig{Available: false})
		_, err := w.EnsureConnected(context.Background())
		assert.ErrorIs(t, err, ErrWalletUnavailable)
		assert.False(t, w.IsConnected())
	})
}
