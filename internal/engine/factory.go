package engine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const (
	// MaxCreatorFee caps the flat fee charged at presale creation, in lamports.
	MaxCreatorFee uint64 = 10_000_000_000

	// MaxServiceFeeBp caps the raise-percentage service fee.
	MaxServiceFeeBp uint16 = 2500
)

// Factory carries the platform-level configuration stamped onto every new
// presale record.
type Factory struct {
	Admin        solana.PublicKey
	Manager      solana.PublicKey
	FeeCollector solana.PublicKey
	CreatorFee   uint64
	ServiceFeeBp uint16
}

// NewFactory validates the fee bounds.
func NewFactory(admin, manager, feeCollector solana.PublicKey, creatorFee uint64, serviceFeeBp uint16) (*Factory, error) {
	if creatorFee > MaxCreatorFee {
		return nil, fmt.Errorf("%w: creator fee %d exceeds %d", ErrInvalidParams, creatorFee, MaxCreatorFee)
	}
	if serviceFeeBp > MaxServiceFeeBp {
		return nil, fmt.Errorf("%w: service fee %d bp exceeds %d", ErrInvalidParams, serviceFeeBp, MaxServiceFeeBp)
	}
	return &Factory{
		Admin:        admin,
		Manager:      manager,
		FeeCollector: feeCollector,
		CreatorFee:   creatorFee,
		ServiceFeeBp: serviceFeeBp,
	}, nil
}
