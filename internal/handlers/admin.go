package handlers

import (
	"net/http"

	"launchcontrol/internal/ledger"

	"github.com/gin-gonic/gin"
)

// These endpoints mirror external chain state into the ledger: wallet
// accounts, mints and token balances arrive from the indexer, not from
// presale operations.

// CreateAccountRequest represents the request body for mirroring an account
type CreateAccountRequest struct {
	Address  *string `json:"address"`
	Lamports *uint64 `json:"lamports"`
}

// CreateAccount mirrors a funded wallet account into the ledger
func CreateAccount(c *gin.Context) {
	var request CreateAccountRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Address == nil || request.Lamports == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address and lamports are required"})
		return
	}
	addr, ok := parseAddress(c, *request.Address, "account")
	if !ok {
		return
	}
	err := store.Atomic(func(tx ledger.Store) error {
		return tx.InitAccount(&ledger.Account{
			Address:  addr,
			Lamports: *request.Lamports,
		})
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": addr.String(), "lamports": *request.Lamports})
}

// GetAccount returns an account's lamport balance
func GetAccount(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"), "account")
	if !ok {
		return
	}
	acc, err := store.Account(addr)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"address":  acc.Address.String(),
		"owner":    acc.Owner.String(),
		"lamports": acc.Lamports,
		"data_len": len(acc.Data),
	})
}

// RegisterMintRequest represents the request body for mirroring a mint
type RegisterMintRequest struct {
	Address        *string `json:"address"`
	Decimals       *uint8  `json:"decimals"`
	Supply         *uint64 `json:"supply"`
	HasTransferFee *bool   `json:"has_transfer_fee"`
	TransferFeeBp  *uint16 `json:"transfer_fee_bp"`
	MaximumFee     *uint64 `json:"maximum_fee"`
}

// RegisterMint mirrors a token mint into the ledger
func RegisterMint(c *gin.Context) {
	var request RegisterMintRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Address == nil || request.Decimals == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address and decimals are required"})
		return
	}
	addr, ok := parseAddress(c, *request.Address, "mint")
	if !ok {
		return
	}
	mint := &ledger.TokenMint{
		Address:  addr,
		Decimals: *request.Decimals,
	}
	if request.Supply != nil {
		mint.Supply = *request.Supply
	}
	if request.HasTransferFee != nil {
		mint.HasTransferFee = *request.HasTransferFee
	}
	if request.TransferFeeBp != nil {
		mint.TransferFeeBp = *request.TransferFeeBp
	}
	if request.MaximumFee != nil {
		mint.MaximumFee = *request.MaximumFee
	}
	err := store.Atomic(func(tx ledger.Store) error {
		return tx.SaveMint(mint)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": addr.String()})
}

// CreditTokenRequest represents the request body for mirroring a balance
type CreditTokenRequest struct {
	Mint   *string `json:"mint"`
	Holder *string `json:"holder"`
	Amount *uint64 `json:"amount"`
}

// CreditToken mirrors a token balance into the ledger
func CreditToken(c *gin.Context) {
	var request CreditTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Mint == nil || request.Holder == nil || request.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mint, holder and amount are required"})
		return
	}
	mint, ok := parseAddress(c, *request.Mint, "mint")
	if !ok {
		return
	}
	holder, ok := parseAddress(c, *request.Holder, "holder")
	if !ok {
		return
	}
	err := store.Atomic(func(tx ledger.Store) error {
		return tx.CreditToken(mint, holder, *request.Amount)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	balance, err := store.TokenBalance(mint, holder)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mint": mint.String(), "holder": holder.String(), "balance": balance})
}
