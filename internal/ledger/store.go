package ledger

import "github.com/gagliardetto/solana-go"

// Store is the persistence boundary for accounts, token balances and mints.
// Engine operations run inside Atomic so a failed step leaves nothing behind.
type Store interface {
	// Account returns the account at addr or ErrAccountNotFound.
	Account(addr solana.PublicKey) (*Account, error)

	// InitAccount creates a new account. Fails with ErrAccountExists if the
	// address is already occupied.
	InitAccount(acc *Account) error

	// SaveAccount overwrites an existing account.
	SaveAccount(acc *Account) error

	// Transfer moves lamports between accounts. The source must hold strictly
	// more than the amount; draining an account to zero is not allowed because
	// it would fall below rent.
	Transfer(from, to solana.PublicKey, lamports uint64) error

	// Mint returns the mint record or ErrMintNotFound.
	Mint(addr solana.PublicKey) (*TokenMint, error)

	// SaveMint creates or overwrites a mint record.
	SaveMint(m *TokenMint) error

	// TokenBalance returns the holder's balance of mint. A missing balance
	// reads as zero.
	TokenBalance(mint, holder solana.PublicKey) (uint64, error)

	// CreditToken adds to the holder's balance of mint.
	CreditToken(mint, holder solana.PublicKey, amount uint64) error

	// DebitToken subtracts from the holder's balance, failing with
	// ErrInsufficientFunds when the balance is short.
	DebitToken(mint, holder solana.PublicKey, amount uint64) error

	// BurnToken debits the holder and reduces the mint supply.
	BurnToken(mint, holder solana.PublicKey, amount uint64) error

	// Atomic runs fn against a transactional view of the store. If fn returns
	// an error every write made inside it is discarded.
	Atomic(fn func(tx Store) error) error
}
