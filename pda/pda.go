// Package pda derives the program addresses used by the AgentGrind program.
//
// Every on-chain account the client touches lives at a deterministic address
// computed from a domain tag plus owner-supplied seeds. The same seeds always
// yield the same address; the ledger validates the bump, the client only has
// to supply matching seeds.
package pda

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed tags, byte-identical to the program's seed constants.
const (
	SeedProfile = "profile"
	SeedBounty  = "bounty"
	SeedVault   = "vault"
	SeedAgent   = "agent"
)

// MaxBountyIDLen maximum bounty_id seed length accepted by the program.
const MaxBountyIDLen = 64

// ProfileAddress derives the CreatorProfile address for a wallet.
func ProfileAddress(programID, wallet solana.PublicKey) (solana.PublicKey, uint8, error) {
	if wallet.IsZero() {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: zero wallet key", ErrInvalidSeed)
	}
	return findAddress(programID, [][]byte{[]byte(SeedProfile), wallet.Bytes()})
}

// BountyAddress derives a bounty address from its creator and bounty_id.
func BountyAddress(programID, creator solana.PublicKey, bountyID string) (solana.PublicKey, uint8, error) {
	if creator.IsZero() {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: zero creator key", ErrInvalidSeed)
	}
	if bountyID == "" {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: empty bounty_id", ErrInvalidSeed)
	}
	if len(bountyID) > MaxBountyIDLen {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: bounty_id exceeds %d bytes", ErrInvalidSeed, MaxBountyIDLen)
	}
	return findAddress(programID, [][]byte{[]byte(SeedBounty), creator.Bytes(), []byte(bountyID)})
}

// VaultAddress derives the escrow vault address for a bounty account.
func VaultAddress(programID, bounty solana.PublicKey) (solana.PublicKey, uint8, error) {
	if bounty.IsZero() {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: zero bounty key", ErrInvalidSeed)
	}
	return findAddress(programID, [][]byte{[]byte(SeedVault), bounty.Bytes()})
}

// AgentAddress derives the AgentProfile address for a claimer wallet.
// The program uses it to enforce one active claim per agent.
func AgentAddress(programID, wallet solana.PublicKey) (solana.PublicKey, uint8, error) {
	if wallet.IsZero() {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: zero wallet key", ErrInvalidSeed)
	}
	return findAddress(programID, [][]byte{[]byte(SeedAgent), wallet.Bytes()})
}

func findAddress(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return addr, bump, nil
}
