package chain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Confirmation polling cadence.
const (
	confirmPollInterval = 500 * time.Millisecond
	confirmTimeout      = 60 * time.Second
)

// Client Ledger implementation backed by a Solana JSON-RPC endpoint
type Client struct {
	rpc *rpc.Client
	url string
}

// NewClient connect a ledger client to an RPC endpoint.
func NewClient(rpcUrl string) *Client {
	return &Client{
		rpc: rpc.New(rpcUrl),
		url: rpcUrl,
	}
}

// FetchAccount implements Ledger.
func (c *Client) FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
		}
		return nil, fmt.Errorf("%w: getAccountInfo %s: %v", ErrRpcFailed, address, err)
	}
	if res == nil || res.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	data := res.Value.Data.GetBinary()
	if data == nil {
		return nil, fmt.Errorf("%w: getAccountInfo %s: empty data", ErrRpcFailed, address)
	}
	return data, nil
}

// ListProgramAccounts implements Ledger.
func (c *Client) ListProgramAccounts(ctx context.Context, programID solana.PublicKey, dataSize uint64) ([]AccountEntry, error) {
	res, err := c.rpc.GetProgramAccountsWithOpts(ctx, programID, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{DataSize: dataSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: getProgramAccounts %s: %v", ErrRpcFailed, programID, err)
	}

	entries := make([]AccountEntry, 0, len(res))
	for _, keyed := range res {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		data := keyed.Account.Data.GetBinary()
		if data == nil {
			continue
		}
		entries = append(entries, AccountEntry{Address: keyed.Pubkey, Data: data})
	}
	return entries, nil
}

// SubmitInstructions implements Ledger. The transaction is signed locally,
// sent, and polled until it reaches confirmed commitment.
func (c *Client) SubmitInstructions(ctx context.Context, instructions []solana.Instruction, payer solana.PublicKey, signers []solana.PrivateKey) (solana.Signature, error) {
	if len(signers) == 0 {
		return solana.Signature{}, ErrNoSigner
	}

	blockhash, err := c.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: build transaction: %v", ErrTxRejected, err)
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: sign: %v", ErrTxRejected, err)
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %v", ErrTxRejected, err)
	}

	if err := c.awaitConfirmation(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

// LatestBlockhash implements Ledger.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	res, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("%w: getLatestBlockhash: %v", ErrRpcFailed, err)
	}
	return res.Value.Blockhash, nil
}

func (c *Client) awaitConfirmation(ctx context.Context, sig solana.Signature) error {
	deadline := time.Now().Add(confirmTimeout)
	ticker := time.NewTicker(confirmPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %v", ErrConfirmTimeout, sig, ctx.Err())
		case <-ticker.C:
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrConfirmTimeout, sig)
		}

		res, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			log.Printf("getSignatureStatuses %s: %v", sig, err)
			continue
		}
		if len(res.Value) == 0 || res.Value[0] == nil {
			continue
		}
		st := res.Value[0]
		if st.Err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTxRejected, sig, st.Err)
		}
		switch st.ConfirmationStatus {
		case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
			return nil
		}
	}
}
