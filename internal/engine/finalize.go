package engine

import (
	"fmt"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
)

// FinalizePresale ends the sale once the window has closed or the hard cap
// is filled. A raise at or above the soft cap settles immediately: the
// service fee goes to the collector and the owner reward is paid out, leaving
// the affiliate and liquidity reserves in the vault. A short raise flips the
// sale to refundable instead. Hard-capped burn sales also burn the tokens
// nobody bought.
func (e *Engine) FinalizePresale(presale, signer solana.PublicKey) error {
	var evt SettlementEvent
	var succeeded bool
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, acc, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		now := e.now()
		if !canFinalize(rec, signer, now) {
			return ErrUnauthorized
		}
		if !rec.IsInit || !rec.IsActivePhase() {
			return ErrInvalidState
		}
		if now <= rec.EndTime && (rec.HardCap == 0 || rec.TotalRaised < rec.HardCap) {
			return fmt.Errorf("%w: presale still open", ErrInvalidState)
		}

		rec.PresaleEnded = true
		succeeded = rec.TotalRaised >= rec.SoftCap
		if !succeeded {
			rec.PresaleRefund = true
			return savePresale(tx, acc, rec)
		}

		vaultAddr, err := ledger.DeriveVault(presale)
		if err != nil {
			return err
		}
		split, err := ComputeFinalizeSplit(rec)
		if err != nil {
			return err
		}
		if err := tx.Transfer(vaultAddr, rec.FeeCollector, split.ServiceFee); err != nil {
			return fmt.Errorf("pay service fee: %w", err)
		}
		if err := tx.Transfer(vaultAddr, rec.Owner, split.OwnerReward); err != nil {
			return fmt.Errorf("pay owner reward: %w", err)
		}
		rec.TokensClaimedByOwner, err = addChecked(rec.TokensClaimedByOwner, split.OwnerReward)
		if err != nil {
			return err
		}
		rec.OwnerRewardWithdrawn = true

		if rec.PresaleType == state.HardCapped && rec.RefundType == state.RefundBurn {
			vaultTokens, err := tx.TokenBalance(rec.Token, vaultAddr)
			if err != nil {
				return err
			}
			if vaultTokens > rec.TotalTokensSold {
				if err := tx.BurnToken(rec.Token, vaultAddr, vaultTokens-rec.TotalTokensSold); err != nil {
					return err
				}
			}
		}

		evt.Amount = split.OwnerReward
		return savePresale(tx, acc, rec)
	})
	if err != nil {
		return err
	}
	evt.Presale = presale.String()
	evt.Signer = signer.String()
	log.WithFields(log.Fields{
		"presale":   evt.Presale,
		"signer":    evt.Signer,
		"succeeded": succeeded,
	}).Info("Presale finalized")
	e.publish(EventPresaleFinalized, &evt)
	return nil
}

// CancelPresale aborts a sale before its end time. Only the owner may cancel,
// and not after taking the owner reward. Cancellation opens refunds.
func (e *Engine) CancelPresale(presale, signer solana.PublicKey) error {
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, acc, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		if signer != rec.Owner {
			return ErrUnauthorized
		}
		if !rec.IsActivePhase() || e.now() > rec.EndTime {
			return ErrInvalidState
		}
		if rec.OwnerRewardWithdrawn {
			return ErrInvalidState
		}
		rec.PresaleCanceled = true
		rec.PresaleRefund = true
		return savePresale(tx, acc, rec)
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"presale": presale.String(),
		"signer":  signer.String(),
	}).Info("Presale canceled")
	e.publish(EventPresaleCanceled, &SettlementEvent{
		Presale: presale.String(),
		Signer:  signer.String(),
	})
	return nil
}
