package state

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ContributionRecord tracks one contributor's running position in one sale.
// Zeroed, not deleted, on claim or refund; a later contribution restarts it.
type ContributionRecord struct {
	Contributor     solana.PublicKey
	Amount          uint64
	TokensPurchased uint64
}

const ContributionAccountSize = discriminatorLen + 48

func (c *ContributionRecord) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, ContributionAccountSize))
	buf.Write(contributionDiscriminator[:])
	if err := binary.Write(buf, binary.LittleEndian, c); err != nil {
		return nil, fmt.Errorf("serialize contribution record: %w", err)
	}
	return buf.Bytes(), nil
}

func DeserializeContribution(data []byte) (*ContributionRecord, error) {
	if len(data) != ContributionAccountSize {
		return nil, fmt.Errorf("contribution record: unexpected size %d, want %d", len(data), ContributionAccountSize)
	}
	if err := checkDiscriminator(data, contributionDiscriminator); err != nil {
		return nil, err
	}
	var rec ContributionRecord
	if err := binary.Read(bytes.NewReader(data[discriminatorLen:]), binary.LittleEndian, &rec); err != nil {
		return nil, fmt.Errorf("deserialize contribution record: %w", err)
	}
	return &rec, nil
}

// AffiliateRecord tracks a referrer's attributed sales. The commission claim
// is a one-shot transition.
type AffiliateRecord struct {
	Referrer        solana.PublicKey
	TotalSale       uint64
	IsRewardClaimed bool
}

const AffiliateAccountSize = discriminatorLen + 41

func (a *AffiliateRecord) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, AffiliateAccountSize))
	buf.Write(affiliateDiscriminator[:])
	if err := binary.Write(buf, binary.LittleEndian, a); err != nil {
		return nil, fmt.Errorf("serialize affiliate record: %w", err)
	}
	return buf.Bytes(), nil
}

func DeserializeAffiliate(data []byte) (*AffiliateRecord, error) {
	if len(data) != AffiliateAccountSize {
		return nil, fmt.Errorf("affiliate record: unexpected size %d, want %d", len(data), AffiliateAccountSize)
	}
	if err := checkDiscriminator(data, affiliateDiscriminator); err != nil {
		return nil, err
	}
	var rec AffiliateRecord
	if err := binary.Read(bytes.NewReader(data[discriminatorLen:]), binary.LittleEndian, &rec); err != nil {
		return nil, fmt.Errorf("deserialize affiliate record: %w", err)
	}
	return &rec, nil
}

// LiquidityLockRecord holds a time-locked LP share. Terminal once withdrawn.
type LiquidityLockRecord struct {
	Owner        solana.PublicKey
	UnlockTime   int64
	LockedAmount uint64
}

const LiquidityLockAccountSize = discriminatorLen + 48

func (l *LiquidityLockRecord) Serialize() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, LiquidityLockAccountSize))
	buf.Write(liquidityDiscriminator[:])
	if err := binary.Write(buf, binary.LittleEndian, l); err != nil {
		return nil, fmt.Errorf("serialize liquidity lock record: %w", err)
	}
	return buf.Bytes(), nil
}

func DeserializeLiquidityLock(data []byte) (*LiquidityLockRecord, error) {
	if len(data) != LiquidityLockAccountSize {
		return nil, fmt.Errorf("liquidity lock record: unexpected size %d, want %d", len(data), LiquidityLockAccountSize)
	}
	if err := checkDiscriminator(data, liquidityDiscriminator); err != nil {
		return nil, err
	}
	var rec LiquidityLockRecord
	if err := binary.Read(bytes.NewReader(data[discriminatorLen:]), binary.LittleEndian, &rec); err != nil {
		return nil, fmt.Errorf("deserialize liquidity lock record: %w", err)
	}
	return &rec, nil
}

// WhitelistEntry carries no payload; the record's existence is the
// membership proof.
const WhitelistAccountSize = discriminatorLen

func SerializeWhitelistEntry() []byte {
	out := make([]byte, WhitelistAccountSize)
	copy(out, whitelistDiscriminator[:])
	return out
}

func IsWhitelistEntry(data []byte) bool {
	return len(data) == WhitelistAccountSize && checkDiscriminator(data, whitelistDiscriminator) == nil
}
