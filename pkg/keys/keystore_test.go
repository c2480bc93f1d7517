package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystore(t *testing.T) {
	ks := NewKeystore(t.TempDir())

	t.Run("Generate Key Pair", func(t *testing.T) {
		account, err := ks.Generate()
		require.NoError(t, err)
		assert.NotEmpty(t, account.PublicKey.ToBase58())
		assert.Equal(t, 64, len(account.PrivateKey), "Private key should be 64 bytes")
	})

	t.Run("Encrypt and Decrypt Private Key", func(t *testing.T) {
		account, err := ks.Generate()
		require.NoError(t, err)

		encrypted, err := ks.Encrypt(account.PrivateKey, "test-password")
		require.NoError(t, err)
		assert.NotEmpty(t, encrypted)

		decrypted, err := ks.Decrypt(encrypted, "test-password")
		require.NoError(t, err)
		assert.True(t, bytes.Equal(account.PrivateKey[:], decrypted), "Decrypted private key should match original")
	})

	t.Run("Save and Load Entry", func(t *testing.T) {
		account, err := ks.Generate()
		require.NoError(t, err)

		require.NoError(t, ks.Save(account, "test-password"))

		loaded, err := ks.Load(account.PublicKey.ToBase58(), "test-password")
		require.NoError(t, err)
		assert.Equal(t, account.PublicKey.ToBase58(), loaded.PublicKey.ToBase58())
		assert.True(t, bytes.Equal(account.PrivateKey[:], loaded.PrivateKey[:]))
	})

	t.Run("Address Derivation", func(t *testing.T) {
		account, err := ks.Generate()
		require.NoError(t, err)

		address, err := ks.Address(account.PrivateKey)
		require.NoError(t, err)
		assert.Equal(t, account.PublicKey.ToBase58(), address)
	})

	t.Run("Error Cases", func(t *testing.T) {
		account, err := ks.Generate()
		require.NoError(t, err)

		encrypted, err := ks.Encrypt(account.PrivateKey, "password1")
		require.NoError(t, err)

		_, err = ks.Decrypt(encrypted, "password2")
		assert.Error(t, err)

		_, err = ks.Load("nonexistent", "password1")
		assert.Error(t, err)

		_, err = ks.Address([]byte("invalid-key"))
		assert.Error(t, err)
	})

	t.Run("Multiple Key Generation", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			account, err := ks.Generate()
			require.NoError(t, err)

			address := account.PublicKey.ToBase58()
			assert.False(t, seen[address], "Generated duplicate address")
			seen[address] = true
		}
	})
}
