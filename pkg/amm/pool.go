package amm

import (
	"bytes"
	"fmt"

	"launchcontrol/internal/state"

	"github.com/gagliardetto/solana-go"
)

// Program and mint addresses of the listing collaborators.
var (
	WSOL = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

	RaydiumCpmmProgram = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")
	MeteoraCpmmProgram = solana.MustPublicKeyFromBase58("cpamdpZCGKUy5JxQXB4dcpGPiikHawvSWAd6mEn1sGG")
)

const raydiumPoolSeed = "pool"

// ExpectedPool derives the pool address a seeded liquidity pair lands in.
// Raydium orders the mint pair ascending, Meteora descending, and the two
// programs place the config seed on opposite ends.
func ExpectedPool(platform state.ListingPlatform, ammConfig, token solana.PublicKey) (solana.PublicKey, error) {
	switch platform {
	case state.PlatformRaydium:
		token0, token1 := orderAscending(WSOL, token)
		addr, _, err := solana.FindProgramAddress([][]byte{
			[]byte(raydiumPoolSeed),
			ammConfig.Bytes(),
			token0.Bytes(),
			token1.Bytes(),
		}, RaydiumCpmmProgram)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("derive raydium pool: %w", err)
		}
		return addr, nil
	case state.PlatformMeteora:
		token1, token0 := orderAscending(WSOL, token)
		addr, _, err := solana.FindProgramAddress([][]byte{
			token0.Bytes(),
			token1.Bytes(),
			ammConfig.Bytes(),
		}, MeteoraCpmmProgram)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("derive meteora pool: %w", err)
		}
		return addr, nil
	default:
		return solana.PublicKey{}, fmt.Errorf("unknown listing platform %d", platform)
	}
}

func orderAscending(a, b solana.PublicKey) (solana.PublicKey, solana.PublicKey) {
	if bytes.Compare(a.Bytes(), b.Bytes()) <= 0 {
		return a, b
	}
	return b, a
}
