// Package chain is the boundary to the external ledger. Everything above it
// works on decoded state; everything below is RPC plumbing. The Ledger
// interface keeps services testable against an in-memory fake.
package chain

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrAccountNotFound no account exists at the requested address
	ErrAccountNotFound = errors.New("account not found")

	// ErrRpcFailed the RPC endpoint rejected or failed the request
	ErrRpcFailed = errors.New("rpc request failed")

	// ErrTxRejected the ledger rejected the submitted transaction
	ErrTxRejected = errors.New("transaction rejected")

	// ErrConfirmTimeout the transaction was sent but never confirmed in time
	ErrConfirmTimeout = errors.New("transaction confirmation timed out")

	// ErrNoSigner submission requires a signer keypair and none is configured
	ErrNoSigner = errors.New("no signer keypair configured")
)

// AccountEntry one program account: its address plus raw data
type AccountEntry struct {
	Address solana.PublicKey
	Data    []byte
}

// UnsignedTx instructions awaiting an external wallet signature
type UnsignedTx struct {
	Instructions []solana.Instruction
	Payer        solana.PublicKey
}

// Ledger read/write access to on-chain accounts. All methods are single
// request/response operations; callers own retry policy. A failed write is
// authoritative: re-fetch and re-decode rather than trusting local state.
type Ledger interface {
	// FetchAccount return the raw data of one account.
	FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error)

	// ListProgramAccounts return all accounts owned by a program whose data
	// is exactly dataSize bytes. Order is ledger-defined.
	ListProgramAccounts(ctx context.Context, programID solana.PublicKey, dataSize uint64) ([]AccountEntry, error)

	// SubmitInstructions sign and send instructions as one transaction, then
	// wait for confirmation.
	SubmitInstructions(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers []solana.PrivateKey) (solana.Signature, error)

	// LatestBlockhash return a recent blockhash for transaction assembly.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
}
