package chain

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// EncodeBase64 assemble an unsigned transaction against a fresh blockhash and
// serialize it for an external wallet to sign. Wallets must sign promptly
// before the blockhash expires.
func EncodeBase64(ctx context.Context, l Ledger, tx *UnsignedTx) (string, error) {
	blockhash, err := l.LatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	assembled, err := solana.NewTransaction(tx.Instructions, blockhash, solana.TransactionPayer(tx.Payer))
	if err != nil {
		return "", fmt.Errorf("assemble transaction: %w", err)
	}
	return assembled.ToBase64()
}
