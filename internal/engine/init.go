package engine

import (
	"fmt"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
)

// InitPresaleParams carries everything the creator chooses at launch. The
// platform fees and identities come from the factory, not the caller.
type InitPresaleParams struct {
	Owner             solana.PublicKey
	Token             solana.PublicKey
	Identifier        string
	PresaleType       state.PresaleType
	LaunchpadType     state.LaunchpadType
	TokenPrice        uint64
	HardCap           uint64
	SoftCap           uint64
	MinContribution   uint64
	MaxContribution   uint64
	StartTime         int64
	EndTime           int64
	ListingRate       uint64
	LiquidityBp       uint16
	LiquidityLockTime int64
	RefundType        state.RefundType
	ListingOpt        state.ListingOpt
	LiquidityType     state.LiquidityType
	ListingPlatform   state.ListingPlatform
	AffiliateEnabled  bool
	CommissionRateBp  uint16
	WhitelistEnabled  bool

	// TokenPool is the fixed allocation sold in a fair launch. Ignored for
	// hard-capped sales.
	TokenPool uint64
}

func (p *InitPresaleParams) validate(now int64) error {
	if p.Identifier == "" || len(p.Identifier) > state.IdentifierMaxLen {
		return fmt.Errorf("%w: identifier must be 1-%d bytes", ErrInvalidParams, state.IdentifierMaxLen)
	}
	if p.StartTime >= p.EndTime {
		return fmt.Errorf("%w: start time must precede end time", ErrInvalidParams)
	}
	if p.EndTime <= now {
		return fmt.Errorf("%w: end time is in the past", ErrInvalidParams)
	}
	if p.SoftCap == 0 {
		return fmt.Errorf("%w: soft cap must be positive", ErrInvalidParams)
	}
	if p.LiquidityBp == 0 || p.LiquidityBp > BpDenominator {
		return fmt.Errorf("%w: liquidity share out of range", ErrInvalidParams)
	}
	if p.AffiliateEnabled && p.CommissionRateBp > BpDenominator {
		return fmt.Errorf("%w: commission rate out of range", ErrInvalidParams)
	}
	switch p.PresaleType {
	case state.HardCapped:
		if p.TokenPrice == 0 {
			return fmt.Errorf("%w: token price must be positive", ErrInvalidParams)
		}
		if p.HardCap == 0 || p.SoftCap > p.HardCap {
			return fmt.Errorf("%w: caps must satisfy 0 < soft cap <= hard cap", ErrInvalidParams)
		}
		if p.MinContribution == 0 || p.MaxContribution == 0 || p.MinContribution > p.MaxContribution {
			return fmt.Errorf("%w: contribution bounds must satisfy 0 < min <= max", ErrInvalidParams)
		}
		if p.ListingRate == 0 {
			return fmt.Errorf("%w: listing rate must be positive", ErrInvalidParams)
		}
	case state.FairLaunch:
		if p.TokenPool == 0 {
			return fmt.Errorf("%w: fair launch token pool must be positive", ErrInvalidParams)
		}
		if p.MaxContribution != 0 && p.MinContribution > p.MaxContribution {
			return fmt.Errorf("%w: contribution bounds must satisfy min <= max", ErrInvalidParams)
		}
	default:
		return fmt.Errorf("%w: unknown presale type %d", ErrInvalidParams, p.PresaleType)
	}
	return nil
}

// createRecordAccount debits rent from the payer and creates a program-owned
// account at addr holding data.
func createRecordAccount(tx ledger.Store, payer, addr solana.PublicKey, data []byte) error {
	rent := ledger.RentMinimum(len(data))
	payerAcc, err := tx.Account(payer)
	if err != nil {
		return err
	}
	if payerAcc.Lamports <= rent {
		return ledger.ErrInsufficientFunds
	}
	payerAcc.Lamports -= rent
	if err := tx.SaveAccount(payerAcc); err != nil {
		return err
	}
	return tx.InitAccount(&ledger.Account{
		Address:  addr,
		Owner:    ledger.ProgramID,
		Lamports: rent,
		Data:     data,
	})
}

// InitPresale creates the presale record, charges the flat creator fee and
// stamps the factory identities onto it. The vaults are funded separately.
func (e *Engine) InitPresale(params *InitPresaleParams) (solana.PublicKey, error) {
	now := e.now()
	if err := params.validate(now); err != nil {
		return solana.PublicKey{}, err
	}
	presaleAddr, err := ledger.DerivePresale(params.Token, params.Identifier)
	if err != nil {
		return solana.PublicKey{}, err
	}

	rec := &state.PresaleRecord{
		Version:           state.PresaleVersion,
		Owner:             params.Owner,
		Token:             params.Token,
		TokenPrice:        params.TokenPrice,
		HardCap:           params.HardCap,
		SoftCap:           params.SoftCap,
		MinContribution:   params.MinContribution,
		MaxContribution:   params.MaxContribution,
		StartTime:         params.StartTime,
		EndTime:           params.EndTime,
		ListingRate:       params.ListingRate,
		LiquidityLockTime: params.LiquidityLockTime,
		LiquidityBp:       params.LiquidityBp,
		ServiceFeeBp:      e.factory.ServiceFeeBp,
		RefundType:        params.RefundType,
		ListingOpt:        params.ListingOpt,
		LiquidityType:     params.LiquidityType,
		ListingPlatform:   params.ListingPlatform,
		FeeCollector:      e.factory.FeeCollector,
		AffiliateEnabled:  params.AffiliateEnabled,
		CommissionRateBp:  params.CommissionRateBp,
		WhitelistEnabled:  params.WhitelistEnabled,
		PresaleType:       params.PresaleType,
		LaunchpadType:     params.LaunchpadType,
		Manager:           e.factory.Manager,
		Admin:             e.factory.Admin,
	}
	if params.PresaleType == state.FairLaunch {
		rec.TotalTokensSold = params.TokenPool
	}
	if err := rec.SetIdentifier(params.Identifier); err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	data, err := rec.Serialize()
	if err != nil {
		return solana.PublicKey{}, err
	}

	err = e.store.Atomic(func(tx ledger.Store) error {
		if err := tx.Transfer(params.Owner, e.factory.FeeCollector, e.factory.CreatorFee); err != nil {
			return fmt.Errorf("charge creator fee: %w", err)
		}
		return createRecordAccount(tx, params.Owner, presaleAddr, data)
	})
	if err != nil {
		return solana.PublicKey{}, err
	}

	log.WithFields(log.Fields{
		"presale":    presaleAddr.String(),
		"token":      params.Token.String(),
		"identifier": params.Identifier,
		"owner":      params.Owner.String(),
	}).Info("Presale created")
	e.publish(EventPresaleCreated, &SettlementEvent{
		Presale: presaleAddr.String(),
		Signer:  params.Owner.String(),
	})
	return presaleAddr, nil
}

// InitVaults creates the two presale vaults and pulls in the owner's token
// deposit: the sale allocation into the main vault, the pool-seeding
// allocation into the liquidity vault. Hard-capped sales deposit the
// full-raise funding plan; fair launches the fixed pool plus its liquidity
// share. Mints with a transfer fee require the inverse fee on top so the
// vaults net the plan.
func (e *Engine) InitVaults(presale, signer solana.PublicKey) error {
	var deposit uint64
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, acc, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		if signer != rec.Owner {
			return ErrUnauthorized
		}
		if rec.IsInit || rec.PresaleCanceled {
			return ErrInvalidState
		}

		vaultAddr, err := ledger.DeriveVault(presale)
		if err != nil {
			return err
		}
		lpVaultAddr, err := ledger.DeriveLiquidityVault(presale)
		if err != nil {
			return err
		}
		if err := createRecordAccount(tx, signer, vaultAddr, nil); err != nil {
			return err
		}
		if err := createRecordAccount(tx, signer, lpVaultAddr, nil); err != nil {
			return err
		}

		mint, err := tx.Mint(rec.Token)
		if err != nil {
			return err
		}
		var saleTokens, lpTokens uint64
		switch rec.PresaleType {
		case state.HardCapped:
			plan, err := CalculatePresaleData(rec.HardCap, rec.ServiceFeeBp, rec.LiquidityBp, mint.Decimals, rec.LaunchpadType, rec.TokenPrice, rec.ListingRate)
			if err != nil {
				return err
			}
			saleTokens = plan.TokensForPresale
			lpTokens = plan.TokensForLiquidity
		case state.FairLaunch:
			saleTokens = rec.TotalTokensSold
			lpTokens, err = bpShare(rec.TotalTokensSold, rec.LiquidityBp)
			if err != nil {
				return err
			}
		}
		deposit, err = addChecked(saleTokens, lpTokens)
		if err != nil {
			return err
		}
		inverseFee, err := TransferInverseFee(mint, deposit)
		if err != nil {
			return err
		}
		deposit, err = addChecked(deposit, inverseFee)
		if err != nil {
			return err
		}

		if err := tx.DebitToken(rec.Token, rec.Owner, deposit); err != nil {
			return err
		}
		if err := tx.CreditToken(rec.Token, vaultAddr, saleTokens); err != nil {
			return err
		}
		if err := tx.CreditToken(rec.Token, lpVaultAddr, lpTokens); err != nil {
			return err
		}

		rec.IsInit = true
		if err := savePresale(tx, acc, rec); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"presale": presale.String(),
			"vault":   vaultAddr.String(),
			"deposit": deposit,
		}).Info("Presale vaults initialized")
		return nil
	})
	if err != nil {
		return err
	}
	e.publish(EventVaultsInitialized, &SettlementEvent{
		Presale: presale.String(),
		Signer:  signer.String(),
		Amount:  deposit,
	})
	return nil
}
