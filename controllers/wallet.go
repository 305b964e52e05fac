package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openfund/crowdchain/chain"
	"github.com/openfund/crowdchain/currency"
)

type WalletController struct {
	wallet *chain.Wallet
}

func NewWalletController(wallet *chain.Wallet) *WalletController {
	return &WalletController{wallet: wallet}
}

func (wc *WalletController) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/wallet", wc.Session)
		v1.POST("/wallet/connect", wc.Connect)
	}
}

func (wc *WalletController) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"connected": wc.wallet.IsConnected(),
		"account":   wc.wallet.CurrentAccount(),
	}})
}

func (wc *WalletController) Connect(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), walletConnectTimeout)
	defer cancel()
	account, err := wc.wallet.Connect(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"connected":     true,
		"account":       account,
		"account_short": currency.ShortenAddress(account),
	}})
}
