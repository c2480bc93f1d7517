package routes

import (
	"launchcontrol/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupLedgerRoutes configures the chain-mirror endpoints
func SetupLedgerRoutes(r *gin.Engine) {
	accounts := r.Group("/api/accounts")
	{
		accounts.POST("", handlers.CreateAccount)
		accounts.GET("/:address", handlers.GetAccount)
	}

	tokens := r.Group("/api/tokens")
	{
		tokens.POST("/mints", handlers.RegisterMint)
		tokens.POST("/balances", handlers.CreditToken)
	}

	signers := r.Group("/api/signers")
	{
		signers.POST("", handlers.GenerateSigner)
		signers.POST("/:address/unlock", handlers.UnlockSigner)
	}
}
