package engine

import (
	"fmt"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
)

// ContributeParams is one contribution. Referrer is optional; when set and
// the sale has the affiliate program enabled, the sale is attributed to it.
type ContributeParams struct {
	Presale     solana.PublicKey
	Contributor solana.PublicKey
	Amount      uint64
	Referrer    *solana.PublicKey
}

// Contribute accepts lamports into the presale vault. Hard-capped sales
// enforce the per-wallet bounds and clamp the final contribution to whatever
// room remains under the hard cap; a fully clamped-away contribution fails.
func (e *Engine) Contribute(params *ContributeParams) (uint64, error) {
	var evt ContributionEvent
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, acc, err := loadPresale(tx, params.Presale, params.Contributor)
		if err != nil {
			return err
		}
		now := e.now()
		if !rec.IsInit || !rec.IsActivePhase() || rec.PresaleRefund {
			return ErrInvalidState
		}
		if now < rec.StartTime || now > rec.EndTime {
			return fmt.Errorf("%w: outside contribution window", ErrInvalidState)
		}
		if rec.WhitelistEnabled {
			wlAddr, err := ledger.DeriveWhitelist(params.Presale, params.Contributor)
			if err != nil {
				return err
			}
			wl, err := tx.Account(wlAddr)
			if err != nil || !state.IsWhitelistEntry(wl.Data) {
				return fmt.Errorf("%w: contributor not whitelisted", ErrUnauthorized)
			}
		}
		if params.Referrer != nil && *params.Referrer == params.Contributor {
			return fmt.Errorf("%w: self-referral", ErrInvalidReference)
		}

		contribAddr, err := ledger.DeriveContribution(params.Presale, params.Contributor)
		if err != nil {
			return err
		}
		contribution := &state.ContributionRecord{Contributor: params.Contributor}
		contribAcc, err := tx.Account(contribAddr)
		switch err {
		case nil:
			contribution, err = state.DeserializeContribution(contribAcc.Data)
			if err != nil {
				return err
			}
		case ledger.ErrAccountNotFound:
			contribAcc = nil
		default:
			return err
		}

		amount := params.Amount
		if amount < rec.MinContribution {
			return fmt.Errorf("%w: below minimum contribution", ErrLimitViolation)
		}
		switch rec.PresaleType {
		case state.HardCapped:
			total, err := addChecked(contribution.Amount, amount)
			if err != nil {
				return err
			}
			if total > rec.MaxContribution {
				return fmt.Errorf("%w: above maximum contribution", ErrLimitViolation)
			}
			if room := rec.HardCap - rec.TotalRaised; amount > room {
				amount = room
			}
			if amount == 0 {
				return fmt.Errorf("%w: hard cap reached", ErrLimitViolation)
			}
		case state.FairLaunch:
			if rec.MaxContribution != 0 {
				total, err := addChecked(contribution.Amount, amount)
				if err != nil {
					return err
				}
				if total > rec.MaxContribution {
					return fmt.Errorf("%w: above maximum contribution", ErrLimitViolation)
				}
			}
		}

		vaultAddr, err := ledger.DeriveVault(params.Presale)
		if err != nil {
			return err
		}
		if err := tx.Transfer(params.Contributor, vaultAddr, amount); err != nil {
			return err
		}

		var tokens uint64
		if rec.PresaleType == state.HardCapped {
			mint, err := tx.Mint(rec.Token)
			if err != nil {
				return err
			}
			tokens, err = TokensForContribution(amount, mint.Decimals, rec.LaunchpadType, rec.TokenPrice)
			if err != nil {
				return err
			}
			rec.TotalTokensSold, err = addChecked(rec.TotalTokensSold, tokens)
			if err != nil {
				return err
			}
		}

		contribution.Amount, err = addChecked(contribution.Amount, amount)
		if err != nil {
			return err
		}
		contribution.TokensPurchased, err = addChecked(contribution.TokensPurchased, tokens)
		if err != nil {
			return err
		}
		contribData, err := contribution.Serialize()
		if err != nil {
			return err
		}
		if contribAcc == nil {
			if err := createRecordAccount(tx, params.Contributor, contribAddr, contribData); err != nil {
				return err
			}
		} else {
			contribAcc.Data = contribData
			if err := tx.SaveAccount(contribAcc); err != nil {
				return err
			}
		}

		rec.TotalRaised, err = addChecked(rec.TotalRaised, amount)
		if err != nil {
			return err
		}

		if rec.AffiliateEnabled && params.Referrer != nil {
			if err := creditReferrer(tx, params.Presale, params.Contributor, *params.Referrer, amount, rec); err != nil {
				return err
			}
			evt.Referrer = params.Referrer.String()
		}

		if err := savePresale(tx, acc, rec); err != nil {
			return err
		}
		evt.Presale = params.Presale.String()
		evt.Contributor = params.Contributor.String()
		evt.Amount = amount
		evt.Tokens = tokens
		evt.TotalRaised = rec.TotalRaised
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"presale":      evt.Presale,
		"contributor":  evt.Contributor,
		"amount":       evt.Amount,
		"total_raised": evt.TotalRaised,
	}).Info("Contribution accepted")
	e.publish(EventContribution, &evt)
	return evt.Amount, nil
}

// creditReferrer attributes an accepted contribution to a referrer record,
// creating it on first use. The contributor funds the record rent.
func creditReferrer(tx ledger.Store, presale, contributor, referrer solana.PublicKey, amount uint64, rec *state.PresaleRecord) error {
	affAddr, err := ledger.DeriveAffiliate(presale, referrer)
	if err != nil {
		return err
	}
	affiliate := &state.AffiliateRecord{Referrer: referrer}
	affAcc, err := tx.Account(affAddr)
	switch err {
	case nil:
		affiliate, err = state.DeserializeAffiliate(affAcc.Data)
		if err != nil {
			return err
		}
		if affiliate.Referrer != referrer {
			return ErrInvalidReference
		}
	case ledger.ErrAccountNotFound:
		affAcc = nil
		rec.TotalRefCount++
	default:
		return err
	}

	affiliate.TotalSale, err = addChecked(affiliate.TotalSale, amount)
	if err != nil {
		return err
	}
	rec.TotalRefAmount, err = addChecked(rec.TotalRefAmount, amount)
	if err != nil {
		return err
	}
	data, err := affiliate.Serialize()
	if err != nil {
		return err
	}
	if affAcc == nil {
		return createRecordAccount(tx, contributor, affAddr, data)
	}
	affAcc.Data = data
	return tx.SaveAccount(affAcc)
}
