package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ProgramID anchors every derived record address.
var ProgramID = solana.MustPublicKeyFromBase58("LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj")

// Seed prefixes for each record family.
const (
	presaleSeed    = "presale"
	vaultSeed      = "vault"
	lpVaultSeed    = "lp_vault"
	contributeSeed = "contribute"
	referrerSeed   = "referrer"
	whitelistSeed  = "whitelist"
	lpLockSeed     = "lp_token_lock"
)

func derive(seeds ...[]byte) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive record address: %w", err)
	}
	return addr, nil
}

// DerivePresale returns the presale record address for a token and identifier.
func DerivePresale(token solana.PublicKey, identifier string) (solana.PublicKey, error) {
	return derive([]byte(presaleSeed), token.Bytes(), []byte(identifier))
}

// DeriveVault returns the main vault holding a presale's raised funds and
// its sale-token allocation.
func DeriveVault(presale solana.PublicKey) (solana.PublicKey, error) {
	return derive([]byte(vaultSeed), presale.Bytes())
}

// DeriveLiquidityVault returns the vault holding the token allocation
// reserved for pool seeding.
func DeriveLiquidityVault(presale solana.PublicKey) (solana.PublicKey, error) {
	return derive([]byte(lpVaultSeed), presale.Bytes())
}

// DeriveContribution returns a contributor's record address under a presale.
func DeriveContribution(presale, user solana.PublicKey) (solana.PublicKey, error) {
	return derive([]byte(contributeSeed), presale.Bytes(), user.Bytes())
}

// DeriveAffiliate returns a referrer's record address under a presale.
func DeriveAffiliate(presale, referrer solana.PublicKey) (solana.PublicKey, error) {
	return derive([]byte(referrerSeed), presale.Bytes(), referrer.Bytes())
}

// DeriveWhitelist returns a user's whitelist entry address under a presale.
func DeriveWhitelist(presale, user solana.PublicKey) (solana.PublicKey, error) {
	return derive([]byte(whitelistSeed), presale.Bytes(), user.Bytes())
}

// DeriveLiquidityLock returns the LP lock record address for a presale.
func DeriveLiquidityLock(presale solana.PublicKey) (solana.PublicKey, error) {
	return derive([]byte(lpLockSeed), presale.Bytes())
}
