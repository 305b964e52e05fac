package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/subosito/gotenv"

	"github.com/openfund/crowdchain/chain"
	"github.com/openfund/crowdchain/config"
	"github.com/openfund/crowdchain/server"
)

func main() {
	environment := flag.String("e", "development", "")
	flag.Usage = func() {
		fmt.Println("Usage: server -e {mode}")
		os.Exit(1)
	}
	flag.Parse()

	gotenv.Load()
	config.Init(*environment)
	cfg := config.GetConfig()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.GetString("log.level")); err == nil {
		logger.SetLevel(level)
	}

	ledger := chain.NewLedger(&chain.Config{
		SeedDemoData: cfg.GetBool("chain.seed_demo_data"),
	}, logger.WithField("service", "ledger"))

	wallet := chain.NewWallet(chain.WalletConfig{
		Available:    cfg.GetBool("wallet.available"),
		Accounts:     cfg.GetStringSlice("wallet.accounts"),
		Reject:       cfg.GetBool("wallet.reject"),
		ConnectDelay: time.Duration(cfg.GetInt("wallet.connect_delay_ms")) * time.Millisecond,
	}, logger.WithField("service", "wallet"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ledger.Start(ctx)

	if err := server.Init(ledger, wallet); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
