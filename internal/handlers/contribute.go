package handlers

import (
	"net/http"

	"launchcontrol/internal/engine"

	"github.com/gin-gonic/gin"
)

// ContributeRequest represents the request body for a contribution
type ContributeRequest struct {
	Contributor *string `json:"contributor"`
	Amount      *uint64 `json:"amount"`
	Referrer    *string `json:"referrer"`
}

// ContributionResp represents a contributor's running position
type ContributionResp struct {
	Contributor     string `json:"contributor"`
	Amount          uint64 `json:"amount"`
	TokensPurchased uint64 `json:"tokens_purchased"`
	AcceptedAmount  uint64 `json:"accepted_amount,omitempty"`
}

// Contribute accepts a contribution into the presale vault
func Contribute(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	var request ContributeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Contributor == nil || request.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contributor and amount are required"})
		return
	}
	contributor, ok := parseAddress(c, *request.Contributor, "contributor")
	if !ok {
		return
	}
	params := &engine.ContributeParams{
		Presale:     presale,
		Contributor: contributor,
		Amount:      *request.Amount,
	}
	if request.Referrer != nil && *request.Referrer != "" {
		referrer, ok := parseAddress(c, *request.Referrer, "referrer")
		if !ok {
			return
		}
		params.Referrer = &referrer
	}

	accepted, err := eng.Contribute(params)
	if err != nil {
		abortWithError(c, err)
		return
	}

	contribution, err := eng.Contribution(presale, contributor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContributionResp{
		Contributor:     contributor.String(),
		Amount:          contribution.Amount,
		TokensPurchased: contribution.TokensPurchased,
		AcceptedAmount:  accepted,
	})
}

// GetContribution returns a contributor's record under a presale
func GetContribution(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	contributor, ok := parseAddress(c, c.Param("contributor"), "contributor")
	if !ok {
		return
	}
	contribution, err := eng.Contribution(presale, contributor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContributionResp{
		Contributor:     contribution.Contributor.String(),
		Amount:          contribution.Amount,
		TokensPurchased: contribution.TokensPurchased,
	})
}

// GetAffiliate returns a referrer's record under a presale
func GetAffiliate(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	referrer, ok := parseAddress(c, c.Param("referrer"), "referrer")
	if !ok {
		return
	}
	affiliate, err := eng.Affiliate(presale, referrer)
	if err != nil {
		abortWithError(c, err)
		return
	}
	var pending uint64
	if view, err := eng.Presale(presale); err == nil && !affiliate.IsRewardClaimed {
		if commission, err := engine.AffiliateCommission(view.Record, affiliate.TotalSale); err == nil {
			pending = commission
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"referrer":           affiliate.Referrer.String(),
		"total_sale":         affiliate.TotalSale,
		"is_reward_claimed":  affiliate.IsRewardClaimed,
		"pending_commission": pending,
	})
}
