package handlers

import (
	"errors"
	"net/http"

	"launchcontrol/internal/engine"
	"launchcontrol/internal/ledger"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
)

// parseAddress decodes a base58 public key from a path or body field.
func parseAddress(c *gin.Context, value, field string) (solana.PublicKey, bool) {
	addr, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + " address"})
		return solana.PublicKey{}, false
	}
	return addr, true
}

// abortWithError maps engine and ledger errors onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, engine.ErrInvalidState), errors.Is(err, engine.ErrAlreadyClaimed):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrLimitViolation),
		errors.Is(err, engine.ErrInvalidParams),
		errors.Is(err, engine.ErrInvalidReference),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrAccountExists):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrArithmeticOverflow):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
