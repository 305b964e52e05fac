package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfund/crowdchain/chain"
)

const testAccount = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

func newTestRouter(t *testing.T, cfg *chain.Config, walletCfg chain.WalletConfig) (*gin.Engine, *chain.Ledger, *chain.Wallet) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base := logrus.New()
	base.SetLevel(logrus.ErrorLevel)
	ledger := chain.NewLedger(cfg, base.WithField("service", "ledger"))
	wallet := chain.NewWallet(walletCfg, base.WithField("service", "wallet"))

	r := gin.New()
	NewCampaignController(ledger, wallet).RegisterRoutes(r)
	NewWalletController(wallet).RegisterRoutes(r)
	return r, ledger, wallet
}

func defaultWalletConfig() chain.WalletConfig {
	return chain.WalletConfig{Available: true, Accounts: []string{testAccount}}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func createReq(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "Campaign created over HTTP.",
		"image_url":   "https://example.com/cover.png",
		"goal":        "10",
		"deadline":    time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
}

func TestCreateCampaignEndpoint(t *testing.T) {
	t.Run("Creates and decorates the campaign", func(t *testing.T) {
		r, _, wallet := newTestRouter(t, &chain.Config{}, defaultWalletConfig())

		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", createReq("HTTP Campaign"))
		require.Equal(t, http.StatusCreated, w.Code)

		envelope := decodeEnvelope(t, w)
		assert.Equal(t, true, envelope["success"])
		data := envelope["data"].(map[string]any)
		assert.Equal(t, "1", data["id"])
		assert.Equal(t, testAccount, data["owner"])
		assert.Equal(t, "Active", data["status"])
		assert.Equal(t, float64(0), data["progress"])
		assert.Equal(t, "10.0000", data["goal_display"])
		assert.Equal(t, "0x742d...f44e", data["owner_short"])

		// The mutation auto-connected the wallet session.
		assert.True(t, wallet.IsConnected())
	})

	t.Run("Invalid fields map to 400", func(t *testing.T) {
		r, ledger, _ := newTestRouter(t, &chain.Config{}, defaultWalletConfig())

		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", createReq(""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, ledger.Campaigns())
	})

	t.Run("Wallet failure blocks the mutation", func(t *testing.T) {
		r, ledger, _ := newTestRouter(t, &chain.Config{}, chain.WalletConfig{Available: false})

		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", createReq("Blocked"))
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Empty(t, ledger.Campaigns())
		assert.Empty(t, ledger.Transactions())
	})
}

func TestCampaignReadEndpoints(t *testing.T) {
	r, _, _ := newTestRouter(t, &chain.Config{SeedDemoData: true}, defaultWalletConfig())

	t.Run("List preserves insertion order", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/campaigns", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeEnvelope(t, w)["data"].([]any)
		require.Len(t, data, 3)
		first := data[0].(map[string]any)
		assert.Equal(t, "1", first["id"])
		assert.Equal(t, "Decentralized Education Platform", first["title"])
		assert.Equal(t, "Active", first["status"])
		assert.InDelta(t, 45, first["progress"].(float64), 1e-9)
		assert.Equal(t, "4.5000", first["amount_raised_display"])
	})

	t.Run("Get by id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/campaigns/2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, "Community-Owned Solar Farm", data["title"])
	})

	t.Run("Unknown id maps to 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/campaigns/99", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		envelope := decodeEnvelope(t, w)
		assert.Equal(t, false, envelope["success"])
	})
}

func TestContributeEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t, &chain.Config{}, defaultWalletConfig())
	w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", createReq("Fundable"))
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Records the contribution", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/contributions", map[string]any{"amount": "4.5"})
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, "4.5000", data["amount_raised_display"])
		assert.InDelta(t, 45, data["progress"].(float64), 1e-9)
		assert.Equal(t, float64(1), data["contributions_count"])
	})

	t.Run("Invalid amount maps to 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/contributions", map[string]any{"amount": "-1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown campaign maps to 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns/99/contributions", map[string]any{"amount": "1"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Closed campaign maps to 409", func(t *testing.T) {
		// Fund to goal and withdraw, which deactivates the campaign.
		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/contributions", map[string]any{"amount": "5.5"})
		require.Equal(t, http.StatusOK, w.Code)
		w = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/withdrawals", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/contributions", map[string]any{"amount": "1"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestWithdrawEndpoint(t *testing.T) {
	t.Run("Non-owner maps to 403", func(t *testing.T) {
		// Seeded campaign 3 is owned by a different account than the wallet's.
		r, _, _ := newTestRouter(t, &chain.Config{SeedDemoData: true}, defaultWalletConfig())
		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns/3/withdrawals", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Goal not met maps to 409", func(t *testing.T) {
		r, _, _ := newTestRouter(t, &chain.Config{}, defaultWalletConfig())
		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", createReq("Underfunded"))
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/withdrawals", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Owner withdraws a funded campaign", func(t *testing.T) {
		r, _, _ := newTestRouter(t, &chain.Config{}, defaultWalletConfig())
		w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", createReq("Funded"))
		require.Equal(t, http.StatusCreated, w.Code)
		w = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/contributions", map[string]any{"amount": "10"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/withdrawals", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, "withdrawal", data["type"])
		assert.Equal(t, testAccount, data["from"])

		w = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/withdrawals", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTransactionsEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t, &chain.Config{}, defaultWalletConfig())
	w := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", createReq("Logged"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/contributions", map[string]any{"amount": "2"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeEnvelope(t, w)["data"].([]any)
	require.Len(t, data, 2)
	newest := data[0].(map[string]any)
	oldest := data[1].(map[string]any)
	assert.Equal(t, "contribution", newest["type"])
	assert.Equal(t, "creation", oldest["type"])
	assert.Equal(t, "1", newest["campaign_id"])
}

func TestStatsEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t, &chain.Config{SeedDemoData: true}, defaultWalletConfig())

	w := doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(3), data["campaign_count"])
	assert.Equal(t, "23700000000000000000", data["total_raised"]) // 4.5 + 12 + 7.2 ETH
}

func TestHealthEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t, &chain.Config{}, defaultWalletConfig())
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestWalletEndpoints(t *testing.T) {
	t.Run("Session starts disconnected", func(t *testing.T) {
		r, _, _ := newTestRouter(t, &chain.Config{}, defaultWalletConfig())
		w := doJSON(t, r, http.MethodGet, "/api/v1/wallet", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, false, data["connected"])
	})

	t.Run("Connect establishes the session", func(t *testing.T) {
		r, _, wallet := newTestRouter(t, &chain.Config{}, defaultWalletConfig())
		w := doJSON(t, r, http.MethodPost, "/api/v1/wallet/connect", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, true, data["connected"])
		assert.Equal(t, testAccount, data["account"])
		assert.Equal(t, "0x742d...f44e", data["account_short"])
		assert.True(t, wallet.IsConnected())
	})

	t.Run("Connect failures surface their status", func(t *testing.T) {
		tests := []struct {
			name     string
			cfg      chain.WalletConfig
			expected int
		}{
			{"Unavailable", chain.WalletConfig{Available: false}, http.StatusBadGateway},
			{"No accounts", chain.WalletConfig{Available: true}, http.StatusUnauthorized},
			{"Rejected", chain.WalletConfig{Available: true, Accounts: []string{testAccount}, Reject: true}, http.StatusUnauthorized},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r, _, _ := newTestRouter(t, &chain.Config{}, tt.cfg)
				w := doJSON(t, r, http.MethodPost, "/api/v1/wallet/connect", nil)
				assert.Equal(t, tt.expected, w.Code, "body: %s", w.Body.String())
			})
		}
	})
}
