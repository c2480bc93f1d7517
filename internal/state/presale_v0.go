package state

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PresaleRecordV0 is the original record layout, kept only so stored V0
// records can be upgraded in place. It lacks the version tag, the launchpad
// type and the manager/admin identities.
type PresaleRecordV0 struct {
	Owner                solana.PublicKey
	Token                solana.PublicKey
	TokenPrice           uint64
	HardCap              uint64
	SoftCap              uint64
	MinContribution      uint64
	MaxContribution      uint64
	TotalRaised          uint64
	StartTime            int64
	EndTime              int64
	PresaleEnded         bool
	PresaleCanceled      bool
	PresaleRefund        bool
	IsInit               bool
	ListingRate          uint64
	LiquidityLockTime    int64
	LiquidityBp          uint16
	ServiceFeeBp         uint16
	RefundType           RefundType
	ListingOpt           ListingOpt
	LiquidityType        LiquidityType
	ListingPlatform      ListingPlatform
	FeeCollector         solana.PublicKey
	IdentifierLen        uint32
	IdentifierRaw        [IdentifierMaxLen]byte
	AffiliateEnabled     bool
	TotalRefAmount       uint64
	CommissionRateBp     uint16
	TotalRefCount        uint64
	TotalTokensSold      uint64
	WhitelistEnabled     bool
	PresaleType          PresaleType
	TokensClaimedByOwner uint64
	OwnerRewardWithdrawn bool
	SolPoolReserve       uint64
	TokenPoolReserve     uint64
}

// Serialize encodes the V0 record behind the shared presale discriminator.
// Only tests and backfill tooling create V0 records; the engine never writes
// this layout.
func (p *PresaleRecordV0) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, PresaleV0AccountSize))
	buf.Write(presaleDiscriminator[:])
	if err := binary.Write(buf, binary.LittleEndian, p); err != nil {
		return nil, fmt.Errorf("serialize presale v0 record: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializePresaleV0 decodes the legacy layout.
func DeserializePresaleV0(data []byte) (*PresaleRecordV0, error) {
	if len(data) != PresaleV0AccountSize {
		return nil, fmt.Errorf("presale v0 record: unexpected size %d, want %d", len(data), PresaleV0AccountSize)
	}
	if err := checkDiscriminator(data, presaleDiscriminator); err != nil {
		return nil, err
	}
	var rec PresaleRecordV0
	if err := binary.Read(bytes.NewReader(data[discriminatorLen:]), binary.LittleEndian, &rec); err != nil {
		return nil, fmt.Errorf("deserialize presale v0 record: %w", err)
	}
	return &rec, nil
}

// UpgradeToV1 copies every V0 field verbatim into the current layout and
// fills the fields the old layout did not carry. Migrated records default to
// the degen flavor with the migrating payer as manager and admin, matching
// the records that were live when the V1 layout shipped.
func (p *PresaleRecordV0) UpgradeToV1(payer solana.PublicKey) *PresaleRecord {
	return &PresaleRecord{
		Version:              PresaleVersion,
		Owner:                p.Owner,
		Token:                p.Token,
		TokenPrice:           p.TokenPrice,
		HardCap:              p.HardCap,
		SoftCap:              p.SoftCap,
		MinContribution:      p.MinContribution,
		MaxContribution:      p.MaxContribution,
		TotalRaised:          p.TotalRaised,
		StartTime:            p.StartTime,
		EndTime:              p.EndTime,
		PresaleEnded:         p.PresaleEnded,
		PresaleCanceled:      p.PresaleCanceled,
		PresaleRefund:        p.PresaleRefund,
		IsInit:               p.IsInit,
		ListingRate:          p.ListingRate,
		LiquidityLockTime:    p.LiquidityLockTime,
		LiquidityBp:          p.LiquidityBp,
		ServiceFeeBp:         p.ServiceFeeBp,
		RefundType:           p.RefundType,
		ListingOpt:           p.ListingOpt,
		LiquidityType:        p.LiquidityType,
		ListingPlatform:      p.ListingPlatform,
		FeeCollector:         p.FeeCollector,
		IdentifierLen:        p.IdentifierLen,
		IdentifierRaw:        p.IdentifierRaw,
		AffiliateEnabled:     p.AffiliateEnabled,
		TotalRefAmount:       p.TotalRefAmount,
		CommissionRateBp:     p.CommissionRateBp,
		TotalRefCount:        p.TotalRefCount,
		TotalTokensSold:      p.TotalTokensSold,
		WhitelistEnabled:     p.WhitelistEnabled,
		PresaleType:          p.PresaleType,
		TokensClaimedByOwner: p.TokensClaimedByOwner,
		OwnerRewardWithdrawn: p.OwnerRewardWithdrawn,
		SolPoolReserve:       p.SolPoolReserve,
		TokenPoolReserve:     p.TokenPoolReserve,
		LaunchpadType:        LaunchpadDegen,
		Manager:              payer,
		Admin:                payer,
	}
}
