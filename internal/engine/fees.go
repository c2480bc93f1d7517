package engine

import (
	"math"
	"math/big"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"
)

const (
	// BpDenominator is the basis point scale used by every fee field.
	BpDenominator = 10_000

	// MaxFeeBasisPoints marks a transfer fee that consumes the whole amount;
	// the inverse fee then degenerates to the mint's maximum fee.
	MaxFeeBasisPoints = 10_000

	// DegenScale is the extra price scale degen sales carry so sub-lamport
	// token prices stay representable.
	DegenScale = 100_000_000
)

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// mulDiv computes a*b/den in 128-bit space and fails when the result leaves
// uint64 range or den is zero.
func mulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrArithmeticOverflow
	}
	out := new(big.Int).SetUint64(a)
	out.Mul(out, new(big.Int).SetUint64(b))
	out.Div(out, new(big.Int).SetUint64(den))
	if out.Cmp(maxUint64) > 0 {
		return 0, ErrArithmeticOverflow
	}
	return out.Uint64(), nil
}

func addChecked(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}

func subChecked(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrArithmeticOverflow
	}
	return a - b, nil
}

// bpShare returns amount*bp/10000.
func bpShare(amount uint64, bp uint16) (uint64, error) {
	return mulDiv(amount, uint64(bp), BpDenominator)
}

// unitScale returns 10^decimals, scaled by an extra 1e8 for degen sales.
func unitScale(decimals uint8, launchpad state.LaunchpadType) uint64 {
	unit := uint64(1)
	for i := uint8(0); i < decimals; i++ {
		unit *= 10
	}
	if launchpad == state.LaunchpadDegen {
		unit *= DegenScale
	}
	return unit
}

// TokensForContribution converts a lamport contribution into token units at
// the fixed sale price.
func TokensForContribution(amount uint64, decimals uint8, launchpad state.LaunchpadType, tokenPrice uint64) (uint64, error) {
	return mulDiv(amount, unitScale(decimals, launchpad), tokenPrice)
}

// FairLaunchAllocation floors a contributor's pro-rata share of the fixed
// token pool. The double 10000 scaling preserves four digits of precision
// through the division.
func FairLaunchAllocation(amount, totalTokensSold, totalRaised uint64) (uint64, error) {
	if totalRaised == 0 {
		return 0, ErrArithmeticOverflow
	}
	out := new(big.Int).SetUint64(amount)
	out.Mul(out, big.NewInt(BpDenominator))
	out.Mul(out, new(big.Int).SetUint64(totalTokensSold))
	out.Div(out, new(big.Int).SetUint64(totalRaised))
	out.Div(out, big.NewInt(BpDenominator))
	if out.Cmp(maxUint64) > 0 {
		return 0, ErrArithmeticOverflow
	}
	return out.Uint64(), nil
}

// PresaleData is the derived funding plan of a hard-capped sale at a given
// raise level.
type PresaleData struct {
	LiquiditySols      uint64
	TokensForPresale   uint64
	TokensForLiquidity uint64
	PresaleTokens      uint64
}

// CalculatePresaleData derives the funding plan for a raise amount: the SOL
// share destined for liquidity after the service fee, the tokens sold at the
// sale price, and the tokens the listing rate requires next to them.
func CalculatePresaleData(raise uint64, serviceFeeBp, liquidityBp uint16, decimals uint8, launchpad state.LaunchpadType, tokenPrice, listingRate uint64) (*PresaleData, error) {
	fee, err := bpShare(raise, serviceFeeBp)
	if err != nil {
		return nil, err
	}
	net, err := subChecked(raise, fee)
	if err != nil {
		return nil, err
	}
	liquiditySols, err := bpShare(net, liquidityBp)
	if err != nil {
		return nil, err
	}
	unit := unitScale(decimals, launchpad)
	tokensForPresale, err := mulDiv(raise, unit, tokenPrice)
	if err != nil {
		return nil, err
	}
	tokensForLiquidity, err := mulDiv(liquiditySols, unit, listingRate)
	if err != nil {
		return nil, err
	}
	presaleTokens, err := addChecked(tokensForPresale, tokensForLiquidity)
	if err != nil {
		return nil, err
	}
	return &PresaleData{
		LiquiditySols:      liquiditySols,
		TokensForPresale:   tokensForPresale,
		TokensForLiquidity: tokensForLiquidity,
		PresaleTokens:      presaleTokens,
	}, nil
}

// FinalizeSplit is the raise distribution computed when a sale succeeds.
type FinalizeSplit struct {
	ServiceFee       uint64
	Net              uint64
	AffiliateReserve uint64
	LiquidityReserve uint64
	OwnerReward      uint64
}

// ComputeFinalizeSplit distributes the raise: service fee off the top, then
// the affiliate and liquidity reserves out of the net, and whatever remains
// after prior owner claims as the owner reward.
func ComputeFinalizeSplit(p *state.PresaleRecord) (*FinalizeSplit, error) {
	fee, err := bpShare(p.TotalRaised, p.ServiceFeeBp)
	if err != nil {
		return nil, err
	}
	net, err := subChecked(p.TotalRaised, fee)
	if err != nil {
		return nil, err
	}
	var affiliate uint64
	if p.AffiliateEnabled {
		affiliate, err = bpShare(net, p.CommissionRateBp)
		if err != nil {
			return nil, err
		}
	}
	liquidity, err := bpShare(net, p.LiquidityBp)
	if err != nil {
		return nil, err
	}
	reward := net
	for _, cut := range []uint64{affiliate, liquidity, p.TokensClaimedByOwner} {
		reward, err = subChecked(reward, cut)
		if err != nil {
			return nil, err
		}
	}
	return &FinalizeSplit{
		ServiceFee:       fee,
		Net:              net,
		AffiliateReserve: affiliate,
		LiquidityReserve: liquidity,
		OwnerReward:      reward,
	}, nil
}

// AffiliateCommission computes a referrer's payout: their fee-netted share of
// the fee-netted raise, applied to the commission reserve.
func AffiliateCommission(p *state.PresaleRecord, totalSale uint64) (uint64, error) {
	split, err := ComputeFinalizeSplit(p)
	if err != nil {
		return 0, err
	}
	if split.Net == 0 {
		return 0, nil
	}
	saleFee, err := bpShare(totalSale, p.ServiceFeeBp)
	if err != nil {
		return 0, err
	}
	saleNet, err := subChecked(totalSale, saleFee)
	if err != nil {
		return 0, err
	}
	perce, err := mulDiv(saleNet, BpDenominator, split.Net)
	if err != nil {
		return 0, err
	}
	totalReward, err := bpShare(split.Net, p.CommissionRateBp)
	if err != nil {
		return 0, err
	}
	return mulDiv(totalReward, perce, BpDenominator)
}

// TransferInverseFee returns the extra tokens a sender must add so the
// receiver nets exactly amount after the mint's transfer fee. Classic mints
// pay nothing.
func TransferInverseFee(mint *ledger.TokenMint, amount uint64) (uint64, error) {
	if !mint.HasTransferFee || mint.TransferFeeBp == 0 {
		return 0, nil
	}
	if mint.TransferFeeBp >= MaxFeeBasisPoints {
		return mint.MaximumFee, nil
	}
	num := new(big.Int).SetUint64(amount)
	num.Mul(num, new(big.Int).SetUint64(uint64(mint.TransferFeeBp)))
	den := new(big.Int).SetUint64(uint64(BpDenominator - mint.TransferFeeBp))
	fee := new(big.Int).Add(num, new(big.Int).Sub(den, big.NewInt(1)))
	fee.Div(fee, den)
	if fee.Cmp(maxUint64) > 0 {
		return 0, ErrArithmeticOverflow
	}
	f := fee.Uint64()
	if f > mint.MaximumFee {
		f = mint.MaximumFee
	}
	return f, nil
}
