package engine

import (
	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
)

// AddToWhitelist creates whitelist entries for the given users. The owner
// funds the record rent. Existing entries are left alone.
func (e *Engine) AddToWhitelist(presale, signer solana.PublicKey, users []solana.PublicKey) error {
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, _, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		if signer != rec.Owner {
			return ErrUnauthorized
		}
		if !rec.IsActivePhase() {
			return ErrInvalidState
		}
		for _, user := range users {
			addr, err := ledger.DeriveWhitelist(presale, user)
			if err != nil {
				return err
			}
			if _, err := tx.Account(addr); err == nil {
				continue
			} else if err != ledger.ErrAccountNotFound {
				return err
			}
			if err := createRecordAccount(tx, signer, addr, state.SerializeWhitelistEntry()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"presale": presale.String(),
		"count":   len(users),
	}).Info("Whitelist entries added")
	e.publish(EventWhitelistChanged, &SettlementEvent{
		Presale: presale.String(),
		Signer:  signer.String(),
		Amount:  uint64(len(users)),
	})
	return nil
}

// RemoveFromWhitelist revokes entries by clearing their discriminator. The
// rent stays with the record; revoked users simply fail the membership check.
func (e *Engine) RemoveFromWhitelist(presale, signer solana.PublicKey, users []solana.PublicKey) error {
	err := e.store.Atomic(func(tx ledger.Store) error {
		rec, _, err := loadPresale(tx, presale, signer)
		if err != nil {
			return err
		}
		if signer != rec.Owner {
			return ErrUnauthorized
		}
		if !rec.IsActivePhase() {
			return ErrInvalidState
		}
		for _, user := range users {
			addr, err := ledger.DeriveWhitelist(presale, user)
			if err != nil {
				return err
			}
			acc, err := tx.Account(addr)
			if err == ledger.ErrAccountNotFound {
				continue
			} else if err != nil {
				return err
			}
			acc.Data = make([]byte, state.WhitelistAccountSize)
			if err := tx.SaveAccount(acc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"presale": presale.String(),
		"count":   len(users),
	}).Info("Whitelist entries removed")
	e.publish(EventWhitelistChanged, &SettlementEvent{
		Presale: presale.String(),
		Signer:  signer.String(),
	})
	return nil
}
