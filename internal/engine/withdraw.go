package engine

import (
	"fmt"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
)

// WithdrawOwnerReward pays the owner whatever the split still owes them. On
// the normal path finalize already settles this and the replay fails; the
// operation exists for records finalized before immediate settlement shipped.
func (e *Engine) WithdrawOwnerReward(presale, signer solana.PublicKey) (uint64, error) {
	var reward uint64
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, acc, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		if signer != rec.Owner {
			return ErrUnauthorized
		}
		if !rec.PresaleEnded || rec.PresaleRefund || rec.PresaleCanceled {
			return ErrInvalidState
		}
		if rec.OwnerRewardWithdrawn {
			return ErrAlreadyClaimed
		}

		split, err := ComputeFinalizeSplit(rec)
		if err != nil {
			return err
		}
		vaultAddr, err := ledger.DeriveVault(presale)
		if err != nil {
			return err
		}
		reward = split.OwnerReward
		if err := tx.Transfer(vaultAddr, rec.Owner, reward); err != nil {
			return fmt.Errorf("pay owner reward: %w", err)
		}
		rec.TokensClaimedByOwner, err = addChecked(rec.TokensClaimedByOwner, reward)
		if err != nil {
			return err
		}
		rec.OwnerRewardWithdrawn = true
		return savePresale(tx, acc, rec)
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"presale": presale.String(),
		"owner":   signer.String(),
		"reward":  reward,
	}).Info("Owner reward withdrawn")
	e.publish(EventOwnerRewardPaid, &SettlementEvent{
		Presale: presale.String(),
		Signer:  signer.String(),
		Amount:  reward,
	})
	return reward, nil
}

// WithdrawAffiliateCommission pays a referrer their share of the commission
// reserve. One shot per referrer.
func (e *Engine) WithdrawAffiliateCommission(presale, referrer solana.PublicKey) (uint64, error) {
	var commission uint64
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, _, err := loadPresale(tx, presale, referrer)
		if err != nil {
			return err
		}
		if !rec.AffiliateEnabled {
			return ErrInvalidState
		}
		if !rec.PresaleEnded || rec.PresaleRefund || rec.PresaleCanceled {
			return ErrInvalidState
		}

		affAddr, err := ledger.DeriveAffiliate(presale, referrer)
		if err != nil {
			return err
		}
		affAcc, err := tx.Account(affAddr)
		if err != nil {
			return err
		}
		affiliate, err := state.DeserializeAffiliate(affAcc.Data)
		if err != nil {
			return err
		}
		if affiliate.Referrer != referrer {
			return ErrInvalidReference
		}
		if affiliate.IsRewardClaimed {
			return ErrAlreadyClaimed
		}

		commission, err = AffiliateCommission(rec, affiliate.TotalSale)
		if err != nil {
			return err
		}
		vaultAddr, err := ledger.DeriveVault(presale)
		if err != nil {
			return err
		}
		if err := tx.Transfer(vaultAddr, referrer, commission); err != nil {
			return fmt.Errorf("pay commission: %w", err)
		}

		affiliate.IsRewardClaimed = true
		affAcc.Data, err = affiliate.Serialize()
		if err != nil {
			return err
		}
		return tx.SaveAccount(affAcc)
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"presale":    presale.String(),
		"referrer":   referrer.String(),
		"commission": commission,
	}).Info("Affiliate commission withdrawn")
	e.publish(EventCommissionPaid, &SettlementEvent{
		Presale: presale.String(),
		Signer:  referrer.String(),
		Amount:  commission,
	})
	return commission, nil
}

// WithdrawUnsoldTokens returns the owner's unsold tokens. A successful
// hard-capped sale releases the gap between the full-raise funding plan and
// what the actual raise consumed, split per vault; burn sales already
// destroyed the sale-vault gap at finalize. A canceled sale releases both
// vaults outright. A fair launch only releases on cancellation: the fixed
// pool plus the liquidity share at the current fee rate.
func (e *Engine) WithdrawUnsoldTokens(presale, signer solana.PublicKey) (uint64, error) {
	var amount uint64
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, _, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		if signer != rec.Owner {
			return ErrUnauthorized
		}
		vaultAddr, err := ledger.DeriveVault(presale)
		if err != nil {
			return err
		}
		lpVaultAddr, err := ledger.DeriveLiquidityVault(presale)
		if err != nil {
			return err
		}
		saleBalance, err := tx.TokenBalance(rec.Token, vaultAddr)
		if err != nil {
			return err
		}
		lpBalance, err := tx.TokenBalance(rec.Token, lpVaultAddr)
		if err != nil {
			return err
		}

		var saleGap, lpGap uint64
		switch rec.PresaleType {
		case state.HardCapped:
			switch {
			case rec.PresaleCanceled:
				saleGap, lpGap = saleBalance, lpBalance
			case rec.PresaleEnded && !rec.PresaleRefund:
				mint, err := tx.Mint(rec.Token)
				if err != nil {
					return err
				}
				full, err := CalculatePresaleData(rec.HardCap, rec.ServiceFeeBp, rec.LiquidityBp, mint.Decimals, rec.LaunchpadType, rec.TokenPrice, rec.ListingRate)
				if err != nil {
					return err
				}
				used, err := CalculatePresaleData(rec.TotalRaised, rec.ServiceFeeBp, rec.LiquidityBp, mint.Decimals, rec.LaunchpadType, rec.TokenPrice, rec.ListingRate)
				if err != nil {
					return err
				}
				if rec.RefundType != state.RefundBurn {
					saleGap, err = subChecked(full.TokensForPresale, used.TokensForPresale)
					if err != nil {
						return err
					}
				}
				lpGap, err = subChecked(full.TokensForLiquidity, used.TokensForLiquidity)
				if err != nil {
					return err
				}
			default:
				return ErrInvalidState
			}
		case state.FairLaunch:
			if !rec.PresaleCanceled {
				return ErrInvalidState
			}
			saleGap = rec.TotalTokensSold
			net, err := mulDiv(rec.TotalTokensSold, BpDenominator-uint64(rec.ServiceFeeBp), BpDenominator)
			if err != nil {
				return err
			}
			lpGap, err = bpShare(net, rec.LiquidityBp)
			if err != nil {
				return err
			}
		}
		if saleGap > saleBalance {
			saleGap = saleBalance
		}
		if lpGap > lpBalance {
			lpGap = lpBalance
		}

		amount, err = addChecked(saleGap, lpGap)
		if err != nil {
			return err
		}
		if amount == 0 {
			return ErrAlreadyClaimed
		}
		if saleGap > 0 {
			if err := tx.DebitToken(rec.Token, vaultAddr, saleGap); err != nil {
				return err
			}
		}
		if lpGap > 0 {
			if err := tx.DebitToken(rec.Token, lpVaultAddr, lpGap); err != nil {
				return err
			}
		}
		return tx.CreditToken(rec.Token, rec.Owner, amount)
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"presale": presale.String(),
		"owner":   signer.String(),
		"amount":  amount,
	}).Info("Unsold tokens withdrawn")
	e.publish(EventUnsoldWithdrawn, &SettlementEvent{
		Presale: presale.String(),
		Signer:  signer.String(),
		Amount:  amount,
	})
	return amount, nil
}
