package ledger

import (
	"errors"
	"fmt"

	"launchcontrol/internal/models"

	"github.com/gagliardetto/solana-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists the ledger in postgres. Atomic maps straight onto a
// database transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Account(addr solana.PublicKey) (*Account, error) {
	var row models.LedgerAccount
	if err := s.db.Where("address = ?", addr.String()).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("load account %s: %w", addr, err)
	}
	return rowToAccount(&row)
}

func (s *GormStore) InitAccount(acc *Account) error {
	var count int64
	if err := s.db.Model(&models.LedgerAccount{}).Where("address = ?", acc.Address.String()).Count(&count).Error; err != nil {
		return fmt.Errorf("check account %s: %w", acc.Address, err)
	}
	if count > 0 {
		return ErrAccountExists
	}
	row := accountToRow(acc)
	if err := s.db.Create(row).Error; err != nil {
		return fmt.Errorf("create account %s: %w", acc.Address, err)
	}
	return nil
}

func (s *GormStore) SaveAccount(acc *Account) error {
	result := s.db.Model(&models.LedgerAccount{}).
		Where("address = ?", acc.Address.String()).
		Updates(map[string]interface{}{
			"owner":    acc.Owner.String(),
			"lamports": acc.Lamports,
			"data":     acc.Data,
		})
	if result.Error != nil {
		return fmt.Errorf("save account %s: %w", acc.Address, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *GormStore) Transfer(from, to solana.PublicKey, lamports uint64) error {
	if lamports == 0 {
		return nil
	}
	src, err := s.Account(from)
	if err != nil {
		return err
	}
	dst, err := s.Account(to)
	if err != nil {
		return err
	}
	if src.Lamports <= lamports {
		return ErrInsufficientFunds
	}
	src.Lamports -= lamports
	dst.Lamports += lamports
	if err := s.SaveAccount(src); err != nil {
		return err
	}
	return s.SaveAccount(dst)
}

func (s *GormStore) Mint(addr solana.PublicKey) (*TokenMint, error) {
	var row models.TokenMint
	if err := s.db.Where("address = ?", addr.String()).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMintNotFound
		}
		return nil, fmt.Errorf("load mint %s: %w", addr, err)
	}
	mint, err := solana.PublicKeyFromBase58(row.Address)
	if err != nil {
		return nil, fmt.Errorf("decode mint address %q: %w", row.Address, err)
	}
	return &TokenMint{
		Address:        mint,
		Decimals:       row.Decimals,
		Supply:         row.Supply,
		HasTransferFee: row.HasTransferFee,
		TransferFeeBp:  row.TransferFeeBp,
		MaximumFee:     row.MaximumFee,
	}, nil
}

func (s *GormStore) SaveMint(m *TokenMint) error {
	row := models.TokenMint{
		Address:        m.Address.String(),
		Decimals:       m.Decimals,
		Supply:         m.Supply,
		HasTransferFee: m.HasTransferFee,
		TransferFeeBp:  m.TransferFeeBp,
		MaximumFee:     m.MaximumFee,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"decimals", "supply", "has_transfer_fee", "transfer_fee_bp", "maximum_fee",
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save mint %s: %w", m.Address, err)
	}
	return nil
}

func (s *GormStore) TokenBalance(mint, holder solana.PublicKey) (uint64, error) {
	var row models.TokenBalance
	err := s.db.Where("mint = ? AND holder = ?", mint.String(), holder.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load token balance %s/%s: %w", mint, holder, err)
	}
	return row.Amount, nil
}

func (s *GormStore) CreditToken(mint, holder solana.PublicKey, amount uint64) error {
	row := models.TokenBalance{
		Mint:   mint.String(),
		Holder: holder.String(),
		Amount: amount,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mint"}, {Name: "holder"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": gorm.Expr("token_balance.amount + ?", amount)}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("credit token %s to %s: %w", mint, holder, err)
	}
	return nil
}

func (s *GormStore) DebitToken(mint, holder solana.PublicKey, amount uint64) error {
	balance, err := s.TokenBalance(mint, holder)
	if err != nil {
		return err
	}
	if balance < amount {
		return ErrInsufficientFunds
	}
	result := s.db.Model(&models.TokenBalance{}).
		Where("mint = ? AND holder = ?", mint.String(), holder.String()).
		Update("amount", balance-amount)
	if result.Error != nil {
		return fmt.Errorf("debit token %s from %s: %w", mint, holder, result.Error)
	}
	return nil
}

func (s *GormStore) BurnToken(mint, holder solana.PublicKey, amount uint64) error {
	if err := s.DebitToken(mint, holder, amount); err != nil {
		return err
	}
	m, err := s.Mint(mint)
	if err != nil {
		return err
	}
	if m.Supply < amount {
		return ErrInsufficientFunds
	}
	m.Supply -= amount
	return s.SaveMint(m)
}

func (s *GormStore) Atomic(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func rowToAccount(row *models.LedgerAccount) (*Account, error) {
	addr, err := solana.PublicKeyFromBase58(row.Address)
	if err != nil {
		return nil, fmt.Errorf("decode account address %q: %w", row.Address, err)
	}
	owner, err := solana.PublicKeyFromBase58(row.Owner)
	if err != nil {
		return nil, fmt.Errorf("decode account owner %q: %w", row.Owner, err)
	}
	data := make([]byte, len(row.Data))
	copy(data, row.Data)
	return &Account{
		Address:  addr,
		Owner:    owner,
		Lamports: row.Lamports,
		Data:     data,
	}, nil
}

func accountToRow(acc *Account) *models.LedgerAccount {
	return &models.LedgerAccount{
		Address:  acc.Address.String(),
		Owner:    acc.Owner.String(),
		Lamports: acc.Lamports,
		Data:     acc.Data,
	}
}
