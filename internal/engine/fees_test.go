package engine

import (
	"testing"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sol = uint64(1_000_000_000)

func TestTokensForContribution(t *testing.T) {
	t.Run("Pro Scale", func(t *testing.T) {
		// 2 SOL at 0.001 SOL per token with 9 decimals
		tokens, err := TokensForContribution(2*sol, 9, state.LaunchpadPro, 1_000_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(2_000_000_000_000), tokens)
	})

	t.Run("Degen Scale", func(t *testing.T) {
		tokens, err := TokensForContribution(1_000_000, 6, state.LaunchpadDegen, 10_000_000_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(10_000_000_000), tokens)
	})

	t.Run("Zero Price", func(t *testing.T) {
		_, err := TokensForContribution(sol, 9, state.LaunchpadPro, 0)
		assert.ErrorIs(t, err, ErrArithmeticOverflow)
	})
}

func TestFairLaunchAllocation(t *testing.T) {
	t.Run("Exact Share", func(t *testing.T) {
		got, err := FairLaunchAllocation(3_333, 1_000_000, 10_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(333_300), got)
	})

	t.Run("Floors The Remainder", func(t *testing.T) {
		got, err := FairLaunchAllocation(5, 3, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), got)

		got, err = FairLaunchAllocation(1, 3, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), got)
	})

	t.Run("Zero Raise", func(t *testing.T) {
		_, err := FairLaunchAllocation(1, 1, 0)
		assert.ErrorIs(t, err, ErrArithmeticOverflow)
	})
}

func TestCalculatePresaleData(t *testing.T) {
	// 100 SOL hard cap, 5% service fee, 10% liquidity, price 0.001 SOL,
	// listing rate 0.002 SOL
	plan, err := CalculatePresaleData(100*sol, 500, 1_000, 9, state.LaunchpadPro, 1_000_000, 2_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_500_000_000), plan.LiquiditySols)
	assert.Equal(t, uint64(100_000_000_000_000), plan.TokensForPresale)
	assert.Equal(t, uint64(4_750_000_000_000), plan.TokensForLiquidity)
	assert.Equal(t, plan.TokensForPresale+plan.TokensForLiquidity, plan.PresaleTokens)
}

func TestComputeFinalizeSplit(t *testing.T) {
	rec := &state.PresaleRecord{
		TotalRaised:      100 * sol,
		ServiceFeeBp:     500,
		LiquidityBp:      1_000,
		AffiliateEnabled: true,
		CommissionRateBp: 2_000,
	}

	t.Run("Full Split", func(t *testing.T) {
		split, err := ComputeFinalizeSplit(rec)
		require.NoError(t, err)
		assert.Equal(t, uint64(5_000_000_000), split.ServiceFee)
		assert.Equal(t, uint64(95_000_000_000), split.Net)
		assert.Equal(t, uint64(19_000_000_000), split.AffiliateReserve)
		assert.Equal(t, uint64(9_500_000_000), split.LiquidityReserve)
		assert.Equal(t, uint64(66_500_000_000), split.OwnerReward)
	})

	t.Run("Affiliate Disabled", func(t *testing.T) {
		disabled := *rec
		disabled.AffiliateEnabled = false
		split, err := ComputeFinalizeSplit(&disabled)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), split.AffiliateReserve)
		assert.Equal(t, uint64(85_500_000_000), split.OwnerReward)
	})

	t.Run("Prior Claims Reduce The Reward", func(t *testing.T) {
		claimed := *rec
		claimed.TokensClaimedByOwner = 66_500_000_000
		split, err := ComputeFinalizeSplit(&claimed)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), split.OwnerReward)
	})
}

func TestAffiliateCommission(t *testing.T) {
	rec := &state.PresaleRecord{
		TotalRaised:      100 * sol,
		ServiceFeeBp:     500,
		LiquidityBp:      1_000,
		AffiliateEnabled: true,
		CommissionRateBp: 2_000,
	}

	// A referrer behind 10% of the raise takes 10% of the 19 SOL reserve
	commission, err := AffiliateCommission(rec, 10*sol)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_900_000_000), commission)

	// All referrers together cannot exceed the reserve
	total, err := AffiliateCommission(rec, 100*sol)
	require.NoError(t, err)
	assert.Equal(t, uint64(19_000_000_000), total)
}

func TestTransferInverseFee(t *testing.T) {
	t.Run("Classic Mint", func(t *testing.T) {
		fee, err := TransferInverseFee(&ledger.TokenMint{}, 1_000_000)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), fee)
	})

	t.Run("Ceiling Division", func(t *testing.T) {
		mint := &ledger.TokenMint{HasTransferFee: true, TransferFeeBp: 100, MaximumFee: 1 << 40}
		fee, err := TransferInverseFee(mint, 9_900)
		require.NoError(t, err)
		// sending 10000 at 1% nets the receiver exactly 9900
		assert.Equal(t, uint64(100), fee)
	})

	t.Run("Capped By Maximum Fee", func(t *testing.T) {
		mint := &ledger.TokenMint{HasTransferFee: true, TransferFeeBp: 100, MaximumFee: 50}
		fee, err := TransferInverseFee(mint, 9_900)
		require.NoError(t, err)
		assert.Equal(t, uint64(50), fee)
	})

	t.Run("Confiscatory Rate Degenerates", func(t *testing.T) {
		mint := &ledger.TokenMint{HasTransferFee: true, TransferFeeBp: 10_000, MaximumFee: 777}
		fee, err := TransferInverseFee(mint, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(777), fee)
	})
}
