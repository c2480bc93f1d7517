package engine

import (
	"fmt"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
)

// ClaimTokens pays out a contributor's tokens after a successful sale.
// Hard-capped sales pay the amount fixed at contribution time; fair launches
// pay the pro-rata share of the fixed pool. The contribution record is zeroed
// so a second claim finds nothing.
func (e *Engine) ClaimTokens(presale, contributor solana.PublicKey) (uint64, error) {
	var tokens uint64
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, _, err := loadPresale(tx, presale, contributor)
		if err != nil {
			return err
		}
		if !rec.PresaleEnded || rec.PresaleRefund || rec.PresaleCanceled {
			return ErrInvalidState
		}

		contribAddr, err := ledger.DeriveContribution(presale, contributor)
		if err != nil {
			return err
		}
		contribAcc, err := tx.Account(contribAddr)
		if err != nil {
			return err
		}
		contribution, err := state.DeserializeContribution(contribAcc.Data)
		if err != nil {
			return err
		}
		if contribution.Contributor != contributor {
			return ErrInvalidReference
		}
		if contribution.Amount == 0 {
			return ErrAlreadyClaimed
		}

		switch rec.PresaleType {
		case state.HardCapped:
			tokens = contribution.TokensPurchased
		case state.FairLaunch:
			tokens, err = FairLaunchAllocation(contribution.Amount, rec.TotalTokensSold, rec.TotalRaised)
			if err != nil {
				return err
			}
		}

		vaultAddr, err := ledger.DeriveVault(presale)
		if err != nil {
			return err
		}
		if err := tx.DebitToken(rec.Token, vaultAddr, tokens); err != nil {
			return err
		}
		if err := tx.CreditToken(rec.Token, contributor, tokens); err != nil {
			return err
		}

		contribution.Amount = 0
		contribution.TokensPurchased = 0
		contribAcc.Data, err = contribution.Serialize()
		if err != nil {
			return err
		}
		return tx.SaveAccount(contribAcc)
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"presale":     presale.String(),
		"contributor": contributor.String(),
		"tokens":      tokens,
	}).Info("Tokens claimed")
	e.publish(EventTokensClaimed, &SettlementEvent{
		Presale: presale.String(),
		Signer:  contributor.String(),
		Amount:  tokens,
	})
	return tokens, nil
}

// RefundContributor returns a contributor's lamports once the sale is
// refundable. A sale that ran past its end time under the soft cap is
// promoted to refundable lazily, on the first refund attempt.
func (e *Engine) RefundContributor(presale, contributor solana.PublicKey) (uint64, error) {
	var amount uint64
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, acc, err := loadPresale(tx, presale, contributor)
		if err != nil {
			return err
		}
		if !rec.PresaleRefund && !rec.PresaleEnded &&
			e.now() > rec.EndTime && rec.TotalRaised < rec.SoftCap {
			rec.PresaleRefund = true
			if err := savePresale(tx, acc, rec); err != nil {
				return err
			}
		}
		if !rec.PresaleRefund {
			return ErrInvalidState
		}

		contribAddr, err := ledger.DeriveContribution(presale, contributor)
		if err != nil {
			return err
		}
		contribAcc, err := tx.Account(contribAddr)
		if err != nil {
			return err
		}
		contribution, err := state.DeserializeContribution(contribAcc.Data)
		if err != nil {
			return err
		}
		if contribution.Contributor != contributor {
			return ErrInvalidReference
		}
		if contribution.Amount == 0 {
			return ErrAlreadyClaimed
		}

		vaultAddr, err := ledger.DeriveVault(presale)
		if err != nil {
			return err
		}
		amount = contribution.Amount
		if err := tx.Transfer(vaultAddr, contributor, amount); err != nil {
			return fmt.Errorf("refund contribution: %w", err)
		}

		contribution.Amount = 0
		contribution.TokensPurchased = 0
		contribAcc.Data, err = contribution.Serialize()
		if err != nil {
			return err
		}
		return tx.SaveAccount(contribAcc)
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"presale":     presale.String(),
		"contributor": contributor.String(),
		"amount":      amount,
	}).Info("Contribution refunded")
	e.publish(EventContributorRefund, &SettlementEvent{
		Presale: presale.String(),
		Signer:  contributor.String(),
		Amount:  amount,
	})
	return amount, nil
}
