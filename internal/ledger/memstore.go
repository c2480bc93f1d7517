package ledger

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

type balanceKey struct {
	mint   solana.PublicKey
	holder solana.PublicKey
}

// MemStore is an in-memory Store. Atomic clones the whole state, runs the
// callback against the clone and swaps it in only on success.
type MemStore struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*Account
	mints    map[solana.PublicKey]*TokenMint
	balances map[balanceKey]uint64
}

func NewMemStore() *MemStore {
	return &MemStore{
		accounts: make(map[solana.PublicKey]*Account),
		mints:    make(map[solana.PublicKey]*TokenMint),
		balances: make(map[balanceKey]uint64),
	}
}

func (s *MemStore) clone() *MemStore {
	cp := NewMemStore()
	for k, v := range s.accounts {
		cp.accounts[k] = v.Clone()
	}
	for k, v := range s.mints {
		m := *v
		cp.mints[k] = &m
	}
	for k, v := range s.balances {
		cp.balances[k] = v
	}
	return cp
}

func (s *MemStore) Account(addr solana.PublicKey) (*Account, error) {
	acc, ok := s.accounts[addr]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc.Clone(), nil
}

func (s *MemStore) InitAccount(acc *Account) error {
	if _, ok := s.accounts[acc.Address]; ok {
		return ErrAccountExists
	}
	s.accounts[acc.Address] = acc.Clone()
	return nil
}

func (s *MemStore) SaveAccount(acc *Account) error {
	if _, ok := s.accounts[acc.Address]; !ok {
		return ErrAccountNotFound
	}
	s.accounts[acc.Address] = acc.Clone()
	return nil
}

func (s *MemStore) Transfer(from, to solana.PublicKey, lamports uint64) error {
	if lamports == 0 {
		return nil
	}
	src, ok := s.accounts[from]
	if !ok {
		return ErrAccountNotFound
	}
	dst, ok := s.accounts[to]
	if !ok {
		return ErrAccountNotFound
	}
	if src.Lamports <= lamports {
		return ErrInsufficientFunds
	}
	src.Lamports -= lamports
	dst.Lamports += lamports
	return nil
}

func (s *MemStore) Mint(addr solana.PublicKey) (*TokenMint, error) {
	m, ok := s.mints[addr]
	if !ok {
		return nil, ErrMintNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *MemStore) SaveMint(m *TokenMint) error {
	cp := *m
	s.mints[m.Address] = &cp
	return nil
}

func (s *MemStore) TokenBalance(mint, holder solana.PublicKey) (uint64, error) {
	return s.balances[balanceKey{mint, holder}], nil
}

func (s *MemStore) CreditToken(mint, holder solana.PublicKey, amount uint64) error {
	s.balances[balanceKey{mint, holder}] += amount
	return nil
}

func (s *MemStore) DebitToken(mint, holder solana.PublicKey, amount uint64) error {
	key := balanceKey{mint, holder}
	if s.balances[key] < amount {
		return ErrInsufficientFunds
	}
	s.balances[key] -= amount
	return nil
}

func (s *MemStore) BurnToken(mint, holder solana.PublicKey, amount uint64) error {
	if err := s.DebitToken(mint, holder, amount); err != nil {
		return err
	}
	m, ok := s.mints[mint]
	if !ok {
		return ErrMintNotFound
	}
	if m.Supply < amount {
		return ErrInsufficientFunds
	}
	m.Supply -= amount
	return nil
}

func (s *MemStore) Atomic(fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scratch := s.clone()
	if err := fn(scratch); err != nil {
		return err
	}
	s.accounts = scratch.accounts
	s.mints = scratch.mints
	s.balances = scratch.balances
	return nil
}
