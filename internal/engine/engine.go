package engine

import (
	"fmt"
	"time"

	"launchcontrol/internal/ledger"
	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
)

// AdminFinalizationWindow is how long after end time the platform admin may
// still finalize on the owner's behalf.
const AdminFinalizationWindow = 72 * time.Hour

// Publisher is the event sink. config.Publisher satisfies it; a nil publisher
// disables events.
type Publisher interface {
	Publish(queueName string, message interface{}) error
}

// Engine executes presale operations against a ledger store. Every operation
// runs inside Store.Atomic, so a failed step rolls back completely.
type Engine struct {
	store     ledger.Store
	factory   *Factory
	publisher Publisher

	// Now is injectable for tests.
	Now func() time.Time
}

func New(store ledger.Store, factory *Factory, publisher Publisher) *Engine {
	return &Engine{
		store:     store,
		factory:   factory,
		publisher: publisher,
		Now:       time.Now,
	}
}

func (e *Engine) now() int64 {
	return e.Now().Unix()
}

// loadPresale reads and decodes a presale record, upgrading a V0 layout in
// place. The payer funds the rent delta of the larger record.
func loadPresale(tx ledger.Store, addr, payer solana.PublicKey) (*state.PresaleRecord, *ledger.Account, error) {
	acc, err := tx.Account(addr)
	if err != nil {
		return nil, nil, err
	}
	if len(acc.Data) == state.PresaleV0AccountSize {
		old, err := state.DeserializePresaleV0(acc.Data)
		if err != nil {
			return nil, nil, err
		}
		rec := old.UpgradeToV1(payer)
		data, err := rec.Serialize()
		if err != nil {
			return nil, nil, err
		}
		delta := ledger.RentMinimum(state.PresaleAccountSize) - ledger.RentMinimum(state.PresaleV0AccountSize)
		if err := tx.Transfer(payer, addr, delta); err != nil {
			return nil, nil, fmt.Errorf("fund record upgrade: %w", err)
		}
		acc, err = tx.Account(addr)
		if err != nil {
			return nil, nil, err
		}
		acc.Data = data
		if err := tx.SaveAccount(acc); err != nil {
			return nil, nil, err
		}
		log.WithFields(log.Fields{
			"presale": addr.String(),
			"payer":   payer.String(),
		}).Info("Upgraded presale record to v1 layout")
		return rec, acc, nil
	}
	rec, err := state.DeserializePresale(acc.Data)
	if err != nil {
		return nil, nil, err
	}
	return rec, acc, nil
}

// savePresale writes the record back into its account.
func savePresale(tx ledger.Store, acc *ledger.Account, rec *state.PresaleRecord) error {
	data, err := rec.Serialize()
	if err != nil {
		return err
	}
	acc.Data = data
	return tx.SaveAccount(acc)
}

// canFinalize reports whether the signer may end or settle the sale. The
// owner always can; the admin can for a limited window after end time; the
// platform manager can on degen sales with no time restriction.
func canFinalize(p *state.PresaleRecord, signer solana.PublicKey, now int64) bool {
	if signer == p.Owner {
		return true
	}
	if signer == p.Admin && now <= p.EndTime+int64(AdminFinalizationWindow/time.Second) {
		return true
	}
	if p.LaunchpadType == state.LaunchpadDegen && signer == p.Manager {
		return true
	}
	return false
}

func (e *Engine) publish(event string, payload interface{}) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(presaleEventQueue, newEvent(event, payload)); err != nil {
		log.WithField("event", event).Warnf("Failed to publish event: %v", err)
	}
}
