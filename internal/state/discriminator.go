package state

import (
	"crypto/sha256"
	"fmt"
)

const discriminatorLen = 8

// Record discriminators follow the anchor convention: the first eight bytes
// of sha256("account:<Name>").
var (
	presaleDiscriminator      = accountDiscriminator("PresaleRecord")
	contributionDiscriminator = accountDiscriminator("ContributionRecord")
	affiliateDiscriminator    = accountDiscriminator("AffiliateRecord")
	liquidityDiscriminator    = accountDiscriminator("LiquidityLockRecord")
	whitelistDiscriminator    = accountDiscriminator("WhitelistEntry")
)

func accountDiscriminator(name string) [discriminatorLen]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [discriminatorLen]byte
	copy(d[:], sum[:discriminatorLen])
	return d
}

func checkDiscriminator(data []byte, want [discriminatorLen]byte) error {
	if len(data) < discriminatorLen {
		return fmt.Errorf("record too short for discriminator: %d bytes", len(data))
	}
	for i := 0; i < discriminatorLen; i++ {
		if data[i] != want[i] {
			return fmt.Errorf("record discriminator mismatch")
		}
	}
	return nil
}
