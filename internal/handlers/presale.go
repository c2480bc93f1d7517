package handlers

import (
	"fmt"
	"net/http"

	"launchcontrol/internal/engine"
	"launchcontrol/internal/models"
	"launchcontrol/internal/state"
	dbconfig "launchcontrol/pkg/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// CreatePresaleRequest represents the request body for creating a presale
type CreatePresaleRequest struct {
	Owner             *string `json:"owner"`
	Token             *string `json:"token"`
	Identifier        *string `json:"identifier"`
	PresaleType       *string `json:"presale_type"`   // 'hard_capped' or 'fair_launch'
	LaunchpadType     *string `json:"launchpad_type"` // 'pro' or 'degen'
	TokenPrice        *uint64 `json:"token_price"`
	HardCap           *uint64 `json:"hard_cap"`
	SoftCap           *uint64 `json:"soft_cap"`
	MinContribution   *uint64 `json:"min_contribution"`
	MaxContribution   *uint64 `json:"max_contribution"`
	StartTime         *int64  `json:"start_time"`
	EndTime           *int64  `json:"end_time"`
	ListingRate       *uint64 `json:"listing_rate"`
	LiquidityBp       *uint16 `json:"liquidity_bp"`
	LiquidityLockTime *int64  `json:"liquidity_lock_time"`
	RefundType        *string `json:"refund_type"`    // 'burn' or 'return'
	ListingOpt        *string `json:"listing_opt"`    // 'auto' or 'manual'
	LiquidityType     *string `json:"liquidity_type"` // 'burn' or 'lock'
	ListingPlatform   *string `json:"listing_platform"`
	AffiliateEnabled  *bool   `json:"affiliate_enabled"`
	CommissionRateBp  *uint16 `json:"commission_rate_bp"`
	WhitelistEnabled  *bool   `json:"whitelist_enabled"`
	TokenPool         *uint64 `json:"token_pool"`
}

// PresaleResp represents the response structure for a presale
type PresaleResp struct {
	Address              string `json:"address"`
	VaultAddress         string `json:"vault_address"`
	Owner                string `json:"owner"`
	Token                string `json:"token"`
	Identifier           string `json:"identifier"`
	PresaleType          string `json:"presale_type"`
	LaunchpadType        string `json:"launchpad_type"`
	TokenPrice           uint64 `json:"token_price"`
	HardCap              uint64 `json:"hard_cap"`
	SoftCap              uint64 `json:"soft_cap"`
	MinContribution      uint64 `json:"min_contribution"`
	MaxContribution      uint64 `json:"max_contribution"`
	TotalRaised          uint64 `json:"total_raised"`
	TotalTokensSold      uint64 `json:"total_tokens_sold"`
	StartTime            int64  `json:"start_time"`
	EndTime              int64  `json:"end_time"`
	IsInit               bool   `json:"is_init"`
	PresaleEnded         bool   `json:"presale_ended"`
	PresaleCanceled      bool   `json:"presale_canceled"`
	PresaleRefund        bool   `json:"presale_refund"`
	AffiliateEnabled     bool   `json:"affiliate_enabled"`
	CommissionRateBp     uint16 `json:"commission_rate_bp"`
	TotalRefAmount       uint64 `json:"total_ref_amount"`
	TotalRefCount        uint64 `json:"total_ref_count"`
	WhitelistEnabled     bool   `json:"whitelist_enabled"`
	OwnerRewardWithdrawn bool   `json:"owner_reward_withdrawn"`
	SolPoolReserve       uint64 `json:"sol_pool_reserve"`
	TokenPoolReserve     uint64 `json:"token_pool_reserve"`
	VaultLamports        uint64 `json:"vault_lamports"`
	VaultTokens          uint64 `json:"vault_tokens"`
	LpVaultAddress       string `json:"lp_vault_address"`
	LpVaultTokens        uint64 `json:"lp_vault_tokens"`
}

func presaleTypeFromString(s string) (state.PresaleType, error) {
	switch s {
	case "hard_capped":
		return state.HardCapped, nil
	case "fair_launch":
		return state.FairLaunch, nil
	}
	return 0, fmt.Errorf("presale_type must be hard_capped or fair_launch")
}

func presaleTypeString(t state.PresaleType) string {
	if t == state.FairLaunch {
		return "fair_launch"
	}
	return "hard_capped"
}

func launchpadTypeFromString(s string) (state.LaunchpadType, error) {
	switch s {
	case "", "pro":
		return state.LaunchpadPro, nil
	case "degen":
		return state.LaunchpadDegen, nil
	}
	return 0, fmt.Errorf("launchpad_type must be pro or degen")
}

func launchpadTypeString(t state.LaunchpadType) string {
	if t == state.LaunchpadDegen {
		return "degen"
	}
	return "pro"
}

func refundTypeFromString(s string) (state.RefundType, error) {
	switch s {
	case "", "burn":
		return state.RefundBurn, nil
	case "return":
		return state.RefundReturn, nil
	}
	return 0, fmt.Errorf("refund_type must be burn or return")
}

func listingOptFromString(s string) (state.ListingOpt, error) {
	switch s {
	case "", "auto":
		return state.ListingAuto, nil
	case "manual":
		return state.ListingManual, nil
	}
	return 0, fmt.Errorf("listing_opt must be auto or manual")
}

func liquidityTypeFromString(s string) (state.LiquidityType, error) {
	switch s {
	case "", "burn":
		return state.LiquidityBurn, nil
	case "lock":
		return state.LiquidityLock, nil
	}
	return 0, fmt.Errorf("liquidity_type must be burn or lock")
}

func listingPlatformFromString(s string) (state.ListingPlatform, error) {
	switch s {
	case "", "raydium":
		return state.PlatformRaydium, nil
	case "meteora":
		return state.PlatformMeteora, nil
	}
	return 0, fmt.Errorf("listing_platform must be raydium or meteora")
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// CreatePresale creates a new presale record
func CreatePresale(c *gin.Context) {
	var request CreatePresaleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Owner == nil || request.Token == nil || request.Identifier == nil || request.PresaleType == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner, token, identifier, presale_type are required"})
		return
	}

	owner, ok := parseAddress(c, *request.Owner, "owner")
	if !ok {
		return
	}
	token, ok := parseAddress(c, *request.Token, "token")
	if !ok {
		return
	}
	presaleType, err := presaleTypeFromString(*request.PresaleType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	launchpadType, err := launchpadTypeFromString(strOrEmpty(request.LaunchpadType))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	refundType, err := refundTypeFromString(strOrEmpty(request.RefundType))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	listingOpt, err := listingOptFromString(strOrEmpty(request.ListingOpt))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	liquidityType, err := liquidityTypeFromString(strOrEmpty(request.LiquidityType))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	platform, err := listingPlatformFromString(strOrEmpty(request.ListingPlatform))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := &engine.InitPresaleParams{
		Owner:           owner,
		Token:           token,
		Identifier:      *request.Identifier,
		PresaleType:     presaleType,
		LaunchpadType:   launchpadType,
		RefundType:      refundType,
		ListingOpt:      listingOpt,
		LiquidityType:   liquidityType,
		ListingPlatform: platform,
	}
	if request.TokenPrice != nil {
		params.TokenPrice = *request.TokenPrice
	}
	if request.HardCap != nil {
		params.HardCap = *request.HardCap
	}
	if request.SoftCap != nil {
		params.SoftCap = *request.SoftCap
	}
	if request.MinContribution != nil {
		params.MinContribution = *request.MinContribution
	}
	if request.MaxContribution != nil {
		params.MaxContribution = *request.MaxContribution
	}
	if request.StartTime != nil {
		params.StartTime = *request.StartTime
	}
	if request.EndTime != nil {
		params.EndTime = *request.EndTime
	}
	if request.ListingRate != nil {
		params.ListingRate = *request.ListingRate
	}
	if request.LiquidityBp != nil {
		params.LiquidityBp = *request.LiquidityBp
	}
	if request.LiquidityLockTime != nil {
		params.LiquidityLockTime = *request.LiquidityLockTime
	}
	if request.AffiliateEnabled != nil {
		params.AffiliateEnabled = *request.AffiliateEnabled
	}
	if request.CommissionRateBp != nil {
		params.CommissionRateBp = *request.CommissionRateBp
	}
	if request.WhitelistEnabled != nil {
		params.WhitelistEnabled = *request.WhitelistEnabled
	}
	if request.TokenPool != nil {
		params.TokenPool = *request.TokenPool
	}

	addr, err := eng.InitPresale(params)
	if err != nil {
		abortWithError(c, err)
		return
	}

	view, err := eng.Presale(addr)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if dbconfig.DB != nil {
		row := models.PresaleIndex{
			PresaleAddress: addr.String(),
			VaultAddress:   view.VaultAddress.String(),
			Token:          token.String(),
			Identifier:     *request.Identifier,
			Owner:          owner.String(),
			PresaleType:    presaleTypeString(presaleType),
			LaunchpadType:  launchpadTypeString(launchpadType),
			StartTime:      params.StartTime,
			EndTime:        params.EndTime,
			IsActive:       true,
		}
		if err := dbconfig.DB.Create(&row).Error; err != nil {
			log.Warnf("Failed to index presale %s: %v", addr, err)
		}
	}

	c.JSON(http.StatusCreated, buildPresaleResp(view))
}

// GetPresale returns a specific presale by record address
func GetPresale(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	view, err := eng.Presale(addr)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildPresaleResp(view))
}

// ListPresales returns the indexed presales
func ListPresales(c *gin.Context) {
	if dbconfig.DB == nil {
		c.JSON(http.StatusOK, []PresaleResp{})
		return
	}
	var rows []models.PresaleIndex
	query := dbconfig.DB.Order("created_at desc")
	if owner := c.Query("owner"); owner != "" {
		query = query.Where("owner = ?", owner)
	}
	if token := c.Query("token"); token != "" {
		query = query.Where("token = ?", token)
	}
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	respList := make([]PresaleResp, 0, len(rows))
	for _, row := range rows {
		addr, ok := parseAddress(c, row.PresaleAddress, "presale")
		if !ok {
			return
		}
		view, err := eng.Presale(addr)
		if err != nil {
			log.Warnf("Failed to load indexed presale %s: %v", row.PresaleAddress, err)
			continue
		}
		respList = append(respList, *buildPresaleResp(view))
	}
	c.JSON(http.StatusOK, respList)
}

// InitVaultsRequest carries the owner signature for vault funding
type InitVaultsRequest struct {
	Signer *string `json:"signer"`
}

// InitVaults funds the presale vault with the owner's token deposit
func InitVaults(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"), "presale")
	if !ok {
		return
	}
	var request InitVaultsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Signer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signer is required"})
		return
	}
	signer, ok := parseAddress(c, *request.Signer, "signer")
	if !ok {
		return
	}
	if err := eng.InitVaults(addr, signer); err != nil {
		abortWithError(c, err)
		return
	}
	view, err := eng.Presale(addr)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildPresaleResp(view))
}

func buildPresaleResp(view *engine.PresaleView) *PresaleResp {
	rec := view.Record
	return &PresaleResp{
		Address:              view.Address.String(),
		VaultAddress:         view.VaultAddress.String(),
		Owner:                rec.Owner.String(),
		Token:                rec.Token.String(),
		Identifier:           rec.Identifier(),
		PresaleType:          presaleTypeString(rec.PresaleType),
		LaunchpadType:        launchpadTypeString(rec.LaunchpadType),
		TokenPrice:           rec.TokenPrice,
		HardCap:              rec.HardCap,
		SoftCap:              rec.SoftCap,
		MinContribution:      rec.MinContribution,
		MaxContribution:      rec.MaxContribution,
		TotalRaised:          rec.TotalRaised,
		TotalTokensSold:      rec.TotalTokensSold,
		StartTime:            rec.StartTime,
		EndTime:              rec.EndTime,
		IsInit:               rec.IsInit,
		PresaleEnded:         rec.PresaleEnded,
		PresaleCanceled:      rec.PresaleCanceled,
		PresaleRefund:        rec.PresaleRefund,
		AffiliateEnabled:     rec.AffiliateEnabled,
		CommissionRateBp:     rec.CommissionRateBp,
		TotalRefAmount:       rec.TotalRefAmount,
		TotalRefCount:        rec.TotalRefCount,
		WhitelistEnabled:     rec.WhitelistEnabled,
		OwnerRewardWithdrawn: rec.OwnerRewardWithdrawn,
		SolPoolReserve:       rec.SolPoolReserve,
		TokenPoolReserve:     rec.TokenPoolReserve,
		VaultLamports:        view.VaultLamports,
		VaultTokens:          view.VaultTokens,
		LpVaultAddress:       view.LpVaultAddress.String(),
		LpVaultTokens:        view.LpVaultTokens,
	}
}
