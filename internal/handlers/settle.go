package handlers

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
)

// SignerRequest is the common body of the settlement operations.
type SignerRequest struct {
	Signer    *string `json:"signer"`
	AmmConfig *string `json:"amm_config"`
}

func bindSigner(c *gin.Context) (solana.PublicKey, *SignerRequest, bool) {
	var request SignerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return solana.PublicKey{}, nil, false
	}
	if request.Signer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signer is required"})
		return solana.PublicKey{}, nil, false
	}
	signer, ok := parseAddress(c, *request.Signer, "signer")
	if !ok {
		return solana.PublicKey{}, nil, false
	}
	return signer, &request, true
}

// FinalizePresale ends the sale and settles the raise split
func FinalizePresale(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	if err := eng.FinalizePresale(presale, signer); err != nil {
		abortWithError(c, err)
		return
	}
	view, err := eng.Presale(presale)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildPresaleResp(view))
}

// CancelPresale aborts the sale before its end time
func CancelPresale(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	if err := eng.CancelPresale(presale, signer); err != nil {
		abortWithError(c, err)
		return
	}
	view, err := eng.Presale(presale)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildPresaleResp(view))
}

// ClaimTokens pays out a contributor's purchased tokens
func ClaimTokens(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	tokens, err := eng.ClaimTokens(presale, signer)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// RefundContributor returns a contributor's lamports on a refundable sale
func RefundContributor(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	amount, err := eng.RefundContributor(presale, signer)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

// WithdrawOwnerReward pays the owner the outstanding reward
func WithdrawOwnerReward(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	reward, err := eng.WithdrawOwnerReward(presale, signer)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reward": reward})
}

// WithdrawAffiliateCommission pays a referrer their commission share
func WithdrawAffiliateCommission(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	commission, err := eng.WithdrawAffiliateCommission(presale, signer)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission": commission})
}

// WithdrawUnsoldTokens returns the owner's unsold tokens
func WithdrawUnsoldTokens(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	amount, err := eng.WithdrawUnsoldTokens(presale, signer)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

// SeedLiquidity moves the liquidity reserves into the listing pool
func SeedLiquidity(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, request, ok := bindSigner(c)
	if !ok {
		return
	}
	if request.AmmConfig == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amm_config is required"})
		return
	}
	ammConfig, ok := parseAddress(c, *request.AmmConfig, "amm_config")
	if !ok {
		return
	}
	if err := eng.SeedLiquidity(presale, signer, ammConfig); err != nil {
		abortWithError(c, err)
		return
	}
	view, err := eng.Presale(presale)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildPresaleResp(view))
}

// LockOrBurnLiquidity disposes of the LP share after seeding
func LockOrBurnLiquidity(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	if err := eng.LockOrBurnLiquidity(presale, signer); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// WithdrawLockedLiquidity releases a matured LP lock to its owner
func WithdrawLockedLiquidity(c *gin.Context) {
	presale, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	signer, _, ok := bindSigner(c)
	if !ok {
		return
	}
	amount, err := eng.WithdrawLockedLiquidity(presale, signer)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}
