package routes

import (
	"launchcontrol/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPresaleRoutes configures the presale lifecycle endpoints
func SetupPresaleRoutes(r *gin.Engine) {
	presales := r.Group("/api/presales")
	{
		presales.GET("", handlers.ListPresales)
		presales.POST("", handlers.CreatePresale)
		presales.GET("/:address", handlers.GetPresale)
		presales.POST("/:address/vaults", handlers.InitVaults)

		presales.POST("/:address/contribute", handlers.Contribute)
		presales.GET("/:address/contributions/:contributor", handlers.GetContribution)
		presales.GET("/:address/affiliates/:referrer", handlers.GetAffiliate)

		presales.POST("/:address/finalize", handlers.FinalizePresale)
		presales.POST("/:address/cancel", handlers.CancelPresale)
		presales.POST("/:address/claim", handlers.ClaimTokens)
		presales.POST("/:address/refund", handlers.RefundContributor)

		presales.POST("/:address/withdraw-owner-reward", handlers.WithdrawOwnerReward)
		presales.POST("/:address/withdraw-commission", handlers.WithdrawAffiliateCommission)
		presales.POST("/:address/withdraw-unsold", handlers.WithdrawUnsoldTokens)

		presales.POST("/:address/liquidity/seed", handlers.SeedLiquidity)
		presales.POST("/:address/liquidity/dispose", handlers.LockOrBurnLiquidity)
		presales.POST("/:address/liquidity/withdraw", handlers.WithdrawLockedLiquidity)

		presales.POST("/:address/whitelist", handlers.AddToWhitelist)
		presales.DELETE("/:address/whitelist", handlers.RemoveFromWhitelist)
		presales.GET("/:address/whitelist/:user", handlers.CheckWhitelist)

		presales.GET("/:address/snapshots", handlers.ListPresaleSnapshots)
	}
}
