package engine

import (
	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
)

// PresaleView is the read model the API serves.
type PresaleView struct {
	Address        solana.PublicKey
	Record         *state.PresaleRecord
	VaultAddress   solana.PublicKey
	VaultLamports  uint64
	VaultTokens    uint64
	LpVaultAddress solana.PublicKey
	LpVaultTokens  uint64
}

// Presale reads a presale without mutating it. A V0 layout is decoded
// through the upgrade path in memory but not persisted; only signed
// operations pay for the realloc.
func (e *Engine) Presale(addr solana.PublicKey) (*PresaleView, error) {
	acc, err := e.store.Account(addr)
	if err != nil {
		return nil, err
	}
	var rec *state.PresaleRecord
	if len(acc.Data) == state.PresaleV0AccountSize {
		old, err := state.DeserializePresaleV0(acc.Data)
		if err != nil {
			return nil, err
		}
		rec = old.UpgradeToV1(solana.PublicKey{})
	} else {
		rec, err = state.DeserializePresale(acc.Data)
		if err != nil {
			return nil, err
		}
	}

	vaultAddr, err := ledger.DeriveVault(addr)
	if err != nil {
		return nil, err
	}
	lpVaultAddr, err := ledger.DeriveLiquidityVault(addr)
	if err != nil {
		return nil, err
	}
	view := &PresaleView{
		Address:        addr,
		Record:         rec,
		VaultAddress:   vaultAddr,
		LpVaultAddress: lpVaultAddr,
	}
	if vault, err := e.store.Account(vaultAddr); err == nil {
		view.VaultLamports = vault.Lamports
	}
	if tokens, err := e.store.TokenBalance(rec.Token, vaultAddr); err == nil {
		view.VaultTokens = tokens
	}
	if tokens, err := e.store.TokenBalance(rec.Token, lpVaultAddr); err == nil {
		view.LpVaultTokens = tokens
	}
	return view, nil
}

// Contribution reads a contributor's record under a presale.
func (e *Engine) Contribution(presale, contributor solana.PublicKey) (*state.ContributionRecord, error) {
	addr, err := ledger.DeriveContribution(presale, contributor)
	if err != nil {
		return nil, err
	}
	acc, err := e.store.Account(addr)
	if err != nil {
		return nil, err
	}
	return state.DeserializeContribution(acc.Data)
}

// Affiliate reads a referrer's record under a presale.
func (e *Engine) Affiliate(presale, referrer solana.PublicKey) (*state.AffiliateRecord, error) {
	addr, err := ledger.DeriveAffiliate(presale, referrer)
	if err != nil {
		return nil, err
	}
	acc, err := e.store.Account(addr)
	if err != nil {
		return nil, err
	}
	return state.DeserializeAffiliate(acc.Data)
}

// IsWhitelisted reports whether a user holds a live whitelist entry.
func (e *Engine) IsWhitelisted(presale, user solana.PublicKey) (bool, error) {
	addr, err := ledger.DeriveWhitelist(presale, user)
	if err != nil {
		return false, err
	}
	acc, err := e.store.Account(addr)
	if err == ledger.ErrAccountNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return state.IsWhitelistEntry(acc.Data), nil
}
