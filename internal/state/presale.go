package state

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PresaleType selects the sale model.
type PresaleType uint8

const (
	HardCapped PresaleType = iota
	FairLaunch
)

// RefundType controls what happens to unsold tokens after a successful sale.
type RefundType uint8

const (
	RefundBurn RefundType = iota
	RefundReturn
)

// ListingOpt controls whether the pool listing happens automatically.
type ListingOpt uint8

const (
	ListingAuto ListingOpt = iota
	ListingManual
)

// LiquidityType controls the disposition of the LP share after seeding.
type LiquidityType uint8

const (
	LiquidityBurn LiquidityType = iota
	LiquidityLock
)

// ListingPlatform selects the AMM collaborator the liquidity is handed to.
type ListingPlatform uint8

const (
	PlatformRaydium ListingPlatform = iota
	PlatformMeteora
)

// LaunchpadType distinguishes the pro flavor from the degen flavor. Degen
// sales scale token_price and listing_rate by an extra 1e8 and grant the
// platform manager finalization rights with no time restriction.
type LaunchpadType uint8

const (
	LaunchpadPro LaunchpadType = iota
	LaunchpadDegen
)

const (
	// PresaleVersion is the current record layout version.
	PresaleVersion uint8 = 1

	// IdentifierMaxLen is the byte reservation for the presale identifier.
	IdentifierMaxLen = 25
)

// PresaleRecord is the authoritative per-sale record. Field order matches the
// persisted layout exactly; encode/decode go through binary.Write/Read with
// little-endian fixed-width fields behind an 8-byte discriminator.
type PresaleRecord struct {
	Version              uint8
	Owner                solana.PublicKey
	Token                solana.PublicKey
	TokenPrice           uint64 // scaled by an extra 1e8 for degen
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
	ListingRate          uint64 // scaled by an extra 1e8 for degen
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
	LaunchpadType        LaunchpadType
	Manager              solana.PublicKey
	Admin                solana.PublicKey
}

// Payload sizes are fixed; the account size adds the discriminator prefix.
const (
	presaleV1PayloadSize = 337
	presaleV0PayloadSize = 271

	PresaleAccountSize   = discriminatorLen + presaleV1PayloadSize
	PresaleV0AccountSize = discriminatorLen + presaleV0PayloadSize
)

// Identifier returns the presale identifier string.
func (p *PresaleRecord) Identifier() string {
	n := int(p.IdentifierLen)
	if n > IdentifierMaxLen {
		n = IdentifierMaxLen
	}
	return string(p.IdentifierRaw[:n])
}

// SetIdentifier stores the identifier, rejecting anything over the reservation.
func (p *PresaleRecord) SetIdentifier(id string) error {
	if len(id) > IdentifierMaxLen {
		return fmt.Errorf("identifier %q exceeds %d bytes", id, IdentifierMaxLen)
	}
	p.IdentifierRaw = [IdentifierMaxLen]byte{}
	copy(p.IdentifierRaw[:], id)
	p.IdentifierLen = uint32(len(id))
	return nil
}

// Serialize encodes the record behind its discriminator.
func (p *PresaleRecord) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, PresaleAccountSize))
	buf.Write(presaleDiscriminator[:])
	if err := binary.Write(buf, binary.LittleEndian, p); err != nil {
		return nil, fmt.Errorf("serialize presale record: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializePresale decodes a V1 presale record. Callers that may hold a V0
// layout must go through the migrating loader instead.
func DeserializePresale(data []byte) (*PresaleRecord, error) {
	if len(data) != PresaleAccountSize {
		return nil, fmt.Errorf("presale record: unexpected size %d, want %d", len(data), PresaleAccountSize)
	}
	if err := checkDiscriminator(data, presaleDiscriminator); err != nil {
		return nil, err
	}
	var rec PresaleRecord
	if err := binary.Read(bytes.NewReader(data[discriminatorLen:]), binary.LittleEndian, &rec); err != nil {
		return nil, fmt.Errorf("deserialize presale record: %w", err)
	}
	return &rec, nil
}

// IsActivePhase reports whether the record is in its pre-terminal state.
func (p *PresaleRecord) IsActivePhase() bool {
	return !p.PresaleEnded && !p.PresaleCanceled
}
