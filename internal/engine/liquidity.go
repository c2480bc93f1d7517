package engine

import (
	"fmt"
	"math/big"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"
	"launchcontrol/pkg/amm"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
)

// SeedLiquidity moves the liquidity reserves into the expected pool of the
// sale's listing platform: SOL out of the main vault, tokens out of the
// liquidity vault. Hard-capped sales pair the SOL reserve with tokens at the
// listing rate; fair launches pair it with the fee-netted liquidity share of
// the fixed pool. The reserves are recorded on the presale so the lock step
// knows what was seeded.
func (e *Engine) SeedLiquidity(presale, signer, ammConfig solana.PublicKey) error {
	var evt LiquidityEvent
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, acc, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		if !canFinalize(rec, signer, e.now()) {
			return ErrUnauthorized
		}
		if !rec.PresaleEnded || rec.PresaleRefund || rec.PresaleCanceled {
			return ErrInvalidState
		}
		if rec.SolPoolReserve != 0 || rec.TokenPoolReserve != 0 {
			return ErrAlreadyClaimed
		}

		split, err := ComputeFinalizeSplit(rec)
		if err != nil {
			return err
		}
		mint, err := tx.Mint(rec.Token)
		if err != nil {
			return err
		}

		solReserve := split.LiquidityReserve
		var tokenReserve uint64
		switch rec.PresaleType {
		case state.HardCapped:
			tokenReserve, err = TokensForContribution(solReserve, mint.Decimals, rec.LaunchpadType, rec.ListingRate)
			if err != nil {
				return err
			}
		case state.FairLaunch:
			net, err := mulDiv(rec.TotalTokensSold, BpDenominator-uint64(rec.ServiceFeeBp), BpDenominator)
			if err != nil {
				return err
			}
			tokenReserve, err = bpShare(net, rec.LiquidityBp)
			if err != nil {
				return err
			}
		}

		poolAddr, err := amm.ExpectedPool(rec.ListingPlatform, ammConfig, rec.Token)
		if err != nil {
			return err
		}
		vaultAddr, err := ledger.DeriveVault(presale)
		if err != nil {
			return err
		}
		lpVaultAddr, err := ledger.DeriveLiquidityVault(presale)
		if err != nil {
			return err
		}
		if _, err := tx.Account(poolAddr); err == ledger.ErrAccountNotFound {
			if err := createRecordAccount(tx, signer, poolAddr, nil); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if err := tx.Transfer(vaultAddr, poolAddr, solReserve); err != nil {
			return fmt.Errorf("seed sol reserve: %w", err)
		}
		inverseFee, err := TransferInverseFee(mint, tokenReserve)
		if err != nil {
			return err
		}
		debit, err := addChecked(tokenReserve, inverseFee)
		if err != nil {
			return err
		}
		if err := tx.DebitToken(rec.Token, lpVaultAddr, debit); err != nil {
			return fmt.Errorf("seed token reserve: %w", err)
		}
		if err := tx.CreditToken(rec.Token, poolAddr, tokenReserve); err != nil {
			return err
		}

		rec.SolPoolReserve = solReserve
		rec.TokenPoolReserve = tokenReserve
		if err := savePresale(tx, acc, rec); err != nil {
			return err
		}
		evt.Pool = poolAddr.String()
		evt.SolReserve = solReserve
		evt.TokenReserve = tokenReserve
		return nil
	})
	if err != nil {
		return err
	}
	evt.Presale = presale.String()
	log.WithFields(log.Fields{
		"presale":       evt.Presale,
		"pool":          evt.Pool,
		"sol_reserve":   evt.SolReserve,
		"token_reserve": evt.TokenReserve,
	}).Info("Liquidity seeded")
	e.publish(EventLiquiditySeeded, &evt)
	return nil
}

// lpAmount is the constant-product LP share of the seeded reserves.
func lpAmount(solReserve, tokenReserve uint64) uint64 {
	product := new(big.Int).SetUint64(solReserve)
	product.Mul(product, new(big.Int).SetUint64(tokenReserve))
	return product.Sqrt(product).Uint64()
}

// LockOrBurnLiquidity disposes of the LP share after seeding. Burn sales
// destroy it outright; lock sales park it in a lock record until the
// configured lock time elapses. Either way the lock record marks the
// disposition as done, so replays fail.
func (e *Engine) LockOrBurnLiquidity(presale, signer solana.PublicKey) error {
	var evt LiquidityEvent
	var eventType string
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, _, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		if !canFinalize(rec, signer, e.now()) {
			return ErrUnauthorized
		}
		if rec.SolPoolReserve == 0 && rec.TokenPoolReserve == 0 {
			return ErrInvalidState
		}

		lockAddr, err := ledger.DeriveLiquidityLock(presale)
		if err != nil {
			return err
		}
		if _, err := tx.Account(lockAddr); err == nil {
			return ErrAlreadyClaimed
		} else if err != ledger.ErrAccountNotFound {
			return err
		}

		lp := lpAmount(rec.SolPoolReserve, rec.TokenPoolReserve)
		evt.SolReserve = rec.SolPoolReserve
		evt.TokenReserve = rec.TokenPoolReserve
		evt.LpAmount = lp

		lock := &state.LiquidityLockRecord{
			Owner:      rec.Owner,
			UnlockTime: e.now(),
		}
		eventType = EventLiquidityBurned
		if rec.LiquidityType == state.LiquidityLock {
			lock.UnlockTime += rec.LiquidityLockTime
			lock.LockedAmount = lp
			eventType = EventLiquidityLocked
		}
		data, err := lock.Serialize()
		if err != nil {
			return err
		}
		return createRecordAccount(tx, signer, lockAddr, data)
	})
	if err != nil {
		return err
	}
	evt.Presale = presale.String()
	log.WithFields(log.Fields{
		"presale":   evt.Presale,
		"lp_amount": evt.LpAmount,
		"disposal":  eventType,
	}).Info("Liquidity disposed")
	e.publish(eventType, &evt)
	return nil
}

// WithdrawLockedLiquidity releases a lock record to its owner once the
// unlock time has passed. The record is zeroed, not deleted.
func (e *Engine) WithdrawLockedLiquidity(presale, signer solana.PublicKey) (uint64, error) {
	var amount uint64
	err := e.store.Atomic(func(tx ledger.Store) error {
		lockAddr, err := ledger.DeriveLiquidityLock(presale)
		if err != nil {
			return err
		}
		lockAcc, err := tx.Account(lockAddr)
		if err != nil {
			return err
		}
		lock, err := state.DeserializeLiquidityLock(lockAcc.Data)
		if err != nil {
			return err
		}
		if lock.Owner != signer {
			return ErrUnauthorized
		}
		if lock.LockedAmount == 0 {
			return ErrAlreadyClaimed
		}
		if e.now() < lock.UnlockTime {
			return ErrInvalidState
		}
		amount = lock.LockedAmount
		lock.LockedAmount = 0
		lockAcc.Data, err = lock.Serialize()
		if err != nil {
			return err
		}
		return tx.SaveAccount(lockAcc)
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"presale": presale.String(),
		"owner":   signer.String(),
		"amount":  amount,
	}).Info("Locked liquidity withdrawn")
	e.publish(EventLiquidityUnlocked, &LiquidityEvent{
		Presale:  presale.String(),
		LpAmount: amount,
	})
	return amount, nil
}
