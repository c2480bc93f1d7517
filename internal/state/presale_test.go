package state

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePresale(t *testing.T) *PresaleRecord {
	t.Helper()
	rec := &PresaleRecord{
		Version:          PresaleVersion,
		Owner:            solana.NewWallet().PublicKey(),
		Token:            solana.NewWallet().PublicKey(),
		TokenPrice:       1_000_000,
		HardCap:          100_000_000_000,
		SoftCap:          25_000_000_000,
		MinContribution:  100_000_000,
		MaxContribution:  5_000_000_000,
		TotalRaised:      42_000_000_000,
		StartTime:        1_700_000_000,
		EndTime:          1_700_600_000,
		ListingRate:      2_000_000,
		LiquidityBp:      5_000,
		ServiceFeeBp:     500,
		RefundType:       RefundReturn,
		ListingOpt:       ListingManual,
		LiquidityType:    LiquidityLock,
		ListingPlatform:  PlatformMeteora,
		FeeCollector:     solana.NewWallet().PublicKey(),
		AffiliateEnabled: true,
		CommissionRateBp: 2_000,
		TotalRefAmount:   1_234,
		TotalRefCount:    3,
		TotalTokensSold:  9_999,
		WhitelistEnabled: true,
		PresaleType:      FairLaunch,
		LaunchpadType:    LaunchpadDegen,
		Manager:          solana.NewWallet().PublicKey(),
		Admin:            solana.NewWallet().PublicKey(),
	}
	require.NoError(t, rec.SetIdentifier("launch-42"))
	return rec
}

func TestPresaleRecord(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		rec := samplePresale(t)
		data, err := rec.Serialize()
		require.NoError(t, err)
		assert.Equal(t, PresaleAccountSize, len(data))

		decoded, err := DeserializePresale(data)
		require.NoError(t, err)
		assert.Equal(t, rec, decoded)
		assert.Equal(t, "launch-42", decoded.Identifier())
	})

	t.Run("Identifier Bounds", func(t *testing.T) {
		rec := &PresaleRecord{}
		assert.Error(t, rec.SetIdentifier("this-identifier-is-way-too-long-to-fit"))
		require.NoError(t, rec.SetIdentifier(""))
		assert.Equal(t, "", rec.Identifier())
	})

	t.Run("Rejects Wrong Size", func(t *testing.T) {
		rec := samplePresale(t)
		data, err := rec.Serialize()
		require.NoError(t, err)
		_, err = DeserializePresale(data[:len(data)-1])
		assert.Error(t, err)
	})

	t.Run("Rejects Wrong Discriminator", func(t *testing.T) {
		rec := samplePresale(t)
		data, err := rec.Serialize()
		require.NoError(t, err)
		data[0] ^= 0xff
		_, err = DeserializePresale(data)
		assert.Error(t, err)
	})

	t.Run("Active Phase", func(t *testing.T) {
		rec := &PresaleRecord{}
		assert.True(t, rec.IsActivePhase())
		rec.PresaleEnded = true
		assert.False(t, rec.IsActivePhase())
		rec.PresaleEnded = false
		rec.PresaleCanceled = true
		assert.False(t, rec.IsActivePhase())
	})
}

func TestPresaleV0Upgrade(t *testing.T) {
	old := &PresaleRecordV0{
		Owner:                solana.NewWallet().PublicKey(),
		Token:                solana.NewWallet().PublicKey(),
		TokenPrice:           500_000,
		HardCap:              10_000_000_000,
		SoftCap:              2_000_000_000,
		MinContribution:      50_000_000,
		MaxContribution:      1_000_000_000,
		TotalRaised:          3_000_000_000,
		StartTime:            1_600_000_000,
		EndTime:              1_600_600_000,
		PresaleEnded:         true,
		ListingRate:          1_000_000,
		LiquidityBp:          6_000,
		ServiceFeeBp:         300,
		FeeCollector:         solana.NewWallet().PublicKey(),
		AffiliateEnabled:     true,
		CommissionRateBp:     1_500,
		TotalRefAmount:       77,
		TotalRefCount:        2,
		TotalTokensSold:      123_456,
		PresaleType:          HardCapped,
		TokensClaimedByOwner: 10,
		OwnerRewardWithdrawn: true,
		SolPoolReserve:       111,
		TokenPoolReserve:     222,
	}
	copy(old.IdentifierRaw[:], "legacy")
	old.IdentifierLen = 6

	t.Run("V0 Round Trip", func(t *testing.T) {
		data, err := old.Serialize()
		require.NoError(t, err)
		assert.Equal(t, PresaleV0AccountSize, len(data))

		decoded, err := DeserializePresaleV0(data)
		require.NoError(t, err)
		assert.Equal(t, old, decoded)
	})

	t.Run("Upgrade Preserves Fields", func(t *testing.T) {
		payer := solana.NewWallet().PublicKey()
		rec := old.UpgradeToV1(payer)

		assert.Equal(t, PresaleVersion, rec.Version)
		assert.Equal(t, old.Owner, rec.Owner)
		assert.Equal(t, old.Token, rec.Token)
		assert.Equal(t, old.TokenPrice, rec.TokenPrice)
		assert.Equal(t, old.HardCap, rec.HardCap)
		assert.Equal(t, old.TotalRaised, rec.TotalRaised)
		assert.Equal(t, old.PresaleEnded, rec.PresaleEnded)
		assert.Equal(t, old.ServiceFeeBp, rec.ServiceFeeBp)
		assert.Equal(t, "legacy", rec.Identifier())
		assert.Equal(t, old.TotalTokensSold, rec.TotalTokensSold)
		assert.Equal(t, old.TokensClaimedByOwner, rec.TokensClaimedByOwner)
		assert.Equal(t, old.OwnerRewardWithdrawn, rec.OwnerRewardWithdrawn)
		assert.Equal(t, old.SolPoolReserve, rec.SolPoolReserve)
		assert.Equal(t, old.TokenPoolReserve, rec.TokenPoolReserve)

		// Fields the old layout did not carry
		assert.Equal(t, LaunchpadDegen, rec.LaunchpadType)
		assert.Equal(t, payer, rec.Manager)
		assert.Equal(t, payer, rec.Admin)
	})

	t.Run("Upgraded Record Serializes At V1 Size", func(t *testing.T) {
		rec := old.UpgradeToV1(solana.NewWallet().PublicKey())
		data, err := rec.Serialize()
		require.NoError(t, err)
		assert.Equal(t, PresaleAccountSize, len(data))
	})
}
