package server

import (
	"os"

	"github.com/openfund/crowdchain/chain"
	"github.com/openfund/crowdchain/config"
	"github.com/openfund/crowdchain/controllers"
)

// Init builds the router around the ledger and wallet and serves it. The
// PORT environment variable overrides the configured port.
func Init(ledger *chain.Ledger, wallet *chain.Wallet) error {
	cfg := config.GetConfig()

	r := NewRouter(
		controllers.NewCampaignController(ledger, wallet),
		controllers.NewWalletController(wallet),
		cfg.GetStringSlice("server.cors_origins"),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.GetString("server.port")
	}
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}
