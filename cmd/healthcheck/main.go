package main

import (
	"context"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openfund/crowdchain/chain"
	"github.com/openfund/crowdchain/models"
)

// Smoke test: drives a full campaign lifecycle against an in-process ledger.
func main() {
	base := logrus.New()
	base.SetLevel(logrus.WarnLevel)

	log.Println("Testing ledger creation...")
	ledger := chain.NewLedger(&chain.Config{SeedDemoData: true}, base.WithField("service", "ledger"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ledger.Start(ctx)
	if got := len(ledger.Campaigns()); got != 3 {
		log.Fatalf("expected 3 seeded campaigns, got %d", got)
	}
	log.Println("✅ Ledger created and seeded!")

	log.Println("Testing wallet connection...")
	wallet := chain.NewWallet(chain.WalletConfig{
		Available: true,
		Accounts:  []string{"0x742d35Cc6634C0532925a3b844Bc454e4438f44e"},
	}, base.WithField("service", "wallet"))
	connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
	defer connectCancel()
	account, err := wallet.Connect(connectCtx)
	if err != nil {
		log.Fatalf("failed to connect wallet: %v", err)
	}
	log.Printf("✅ Wallet connected to %s!", account)

	log.Println("Testing campaign lifecycle...")
	deadline := time.Now().Add(30 * 24 * time.Hour).Unix()
	campaign, err := ledger.CreateCampaign(account, "Smoke Test Campaign", "Exercises the full lifecycle.", "https://example.com/cover.png", "10", deadline)
	if err != nil {
		log.Fatalf("failed to create campaign: %v", err)
	}

	if _, err := ledger.Contribute(campaign.ID, "4.5", account); err != nil {
		log.Fatalf("first contribution failed: %v", err)
	}
	campaign, err = ledger.Contribute(campaign.ID, "5.5", account)
	if err != nil {
		log.Fatalf("second contribution failed: %v", err)
	}
	if progress := chain.ProgressPercent(campaign.AmountRaised, campaign.Goal); progress != 100 {
		log.Fatalf("expected progress 100, got %v", progress)
	}
	if _, err := ledger.WithdrawFunds(campaign.ID, account); err != nil {
		log.Fatalf("withdrawal failed: %v", err)
	}
	if status := chain.DeriveStatus(mustCampaign(ledger, campaign.ID), time.Now().Unix()); status != models.StatusSuccessful {
		log.Fatalf("expected Successful after withdrawal, got %s", status)
	}
	log.Println("✅ Campaign lifecycle successful!")

	log.Println("Testing transaction log...")
	txs := ledger.Transactions()
	if len(txs) != 4 {
		log.Fatalf("expected 4 transactions, got %d", len(txs))
	}
	if txs[0].Type != models.TxWithdrawal {
		log.Fatalf("expected newest transaction to be a withdrawal, got %s", txs[0].Type)
	}
	log.Println("✅ Transaction log consistent!")

	log.Println("\n🎉 All checks passed! The ledger is ready to serve.")
}

func mustCampaign(ledger *chain.Ledger, id string) models.Campaign {
	c, err := ledger.Campaign(id)
	if err != nil {
		log.Fatalf("failed to fetch campaign %s: %v", id, err)
	}
	return c
}
