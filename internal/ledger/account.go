package ledger

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMintNotFound      = errors.New("token mint not found")
)

// Account is a lamport-carrying record cell. Data holds the serialized record
// behind its discriminator; system-owned wallets keep Data empty.
type Account struct {
	Address  solana.PublicKey
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// Clone returns a deep copy, so callers can mutate freely before saving.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Data = make([]byte, len(a.Data))
	copy(cp.Data, a.Data)
	return &cp
}

// TokenMint carries the supply and transfer-fee configuration of a mint.
// Classic mints have no transfer fee extension.
type TokenMint struct {
	Address        solana.PublicKey
	Decimals       uint8
	Supply         uint64
	HasTransferFee bool
	TransferFeeBp  uint16
	MaximumFee     uint64
}

// TokenBalance is one holder's balance of one mint.
type TokenBalance struct {
	Mint   solana.PublicKey
	Holder solana.PublicKey
	Amount uint64
}
