package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"launchcontrol/internal/models"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) *GormStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("ledger_test"),
		tcpostgres.WithUsername("ledger"),
		tcpostgres.WithPassword("ledger"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.LedgerAccount{},
		&models.TokenMint{},
		&models.TokenBalance{},
	))
	return NewGormStore(db)
}

func TestGormStore(t *testing.T) {
	store := setupGormStore(t)

	alice := solana.NewWallet().PublicKey()
	bob := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	t.Run("Account Round Trip", func(t *testing.T) {
		_, err := store.Account(alice)
		assert.ErrorIs(t, err, ErrAccountNotFound)

		require.NoError(t, store.InitAccount(&Account{Address: alice, Lamports: 1_000, Data: []byte{7, 8, 9}}))
		assert.ErrorIs(t, store.InitAccount(&Account{Address: alice}), ErrAccountExists)

		acc, err := store.Account(alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(1_000), acc.Lamports)
		assert.Equal(t, []byte{7, 8, 9}, acc.Data)

		acc.Lamports = 900
		acc.Data = nil
		require.NoError(t, store.SaveAccount(acc))
		acc, err = store.Account(alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(900), acc.Lamports)
		assert.Empty(t, acc.Data)
	})

	t.Run("Transfer", func(t *testing.T) {
		require.NoError(t, store.InitAccount(&Account{Address: bob, Lamports: 10}))
		require.NoError(t, store.Transfer(alice, bob, 300))

		src, err := store.Account(alice)
		require.NoError(t, err)
		dst, err := store.Account(bob)
		require.NoError(t, err)
		assert.Equal(t, uint64(600), src.Lamports)
		assert.Equal(t, uint64(310), dst.Lamports)

		assert.ErrorIs(t, store.Transfer(alice, bob, 600), ErrInsufficientFunds)
	})

	t.Run("Mint Upsert", func(t *testing.T) {
		require.NoError(t, store.SaveMint(&TokenMint{Address: mint, Decimals: 6, Supply: 1_000_000}))
		require.NoError(t, store.SaveMint(&TokenMint{Address: mint, Decimals: 6, Supply: 900_000, HasTransferFee: true, TransferFeeBp: 100}))

		m, err := store.Mint(mint)
		require.NoError(t, err)
		assert.Equal(t, uint64(900_000), m.Supply)
		assert.True(t, m.HasTransferFee)
		assert.Equal(t, uint16(100), m.TransferFeeBp)
	})

	t.Run("Token Balances Accumulate", func(t *testing.T) {
		balance, err := store.TokenBalance(mint, alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), balance)

		require.NoError(t, store.CreditToken(mint, alice, 500))
		require.NoError(t, store.CreditToken(mint, alice, 250))
		require.NoError(t, store.DebitToken(mint, alice, 50))

		balance, err = store.TokenBalance(mint, alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(700), balance)

		assert.ErrorIs(t, store.DebitToken(mint, alice, 701), ErrInsufficientFunds)
	})

	t.Run("Burn", func(t *testing.T) {
		require.NoError(t, store.BurnToken(mint, alice, 200))
		balance, err := store.TokenBalance(mint, alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), balance)

		m, err := store.Mint(mint)
		require.NoError(t, err)
		assert.Equal(t, uint64(899_800), m.Supply)
	})

	t.Run("Atomic Rolls Back", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.Atomic(func(tx Store) error {
			if err := tx.Transfer(alice, bob, 100); err != nil {
				return err
			}
			if err := tx.CreditToken(mint, bob, 999); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		acc, err := store.Account(alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(600), acc.Lamports)
		balance, err := store.TokenBalance(mint, bob)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), balance)
	})

	t.Run("Atomic Commits", func(t *testing.T) {
		err := store.Atomic(func(tx Store) error {
			return tx.Transfer(alice, bob, 100)
		})
		require.NoError(t, err)
		acc, err := store.Account(alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), acc.Lamports)
	})
}
