package bounty_service

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"agentgrind-service/bounty"
	"agentgrind-service/chain"
	model "agentgrind-service/models"
)

// CreateParams inputs for a new bounty
type CreateParams struct {
	Creator     solana.PublicKey
	BountyID    string
	GrossAmount uint64 // atoms before the platform fee
	Deadline    int64  // unix seconds
	Title       string
	Description string
}

// BuildCreate assemble the create-bounty transaction: the escrow instruction
// for the net amount plus, when a treasury is configured, the fee transfer
// leg. Metadata is persisted up front so the board can render the bounty as
// soon as the transaction lands.
func (s *BountyService) BuildCreate(ctx context.Context, p CreateParams) (*chain.UnsignedTx, error) {
	fee, net, err := bounty.SplitFee(p.GrossAmount)
	if err != nil {
		return nil, err
	}

	createIx, err := s.builder.CreateBounty(p.Creator, p.BountyID, net, p.Deadline)
	if err != nil {
		return nil, err
	}
	instructions := []solana.Instruction{createIx}

	if fee > 0 && !s.treasury.IsZero() {
		feeIx, err := s.feeTransfer(p.Creator, fee)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, feeIx)
	}

	if p.Title != "" || p.Description != "" {
		err := s.SaveMetadata(&model.BountyMetadata{
			Creator:     p.Creator.String(),
			BountyID:    p.BountyID,
			Title:       p.Title,
			Description: p.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("save metadata: %w", err)
		}
	}

	return &chain.UnsignedTx{Instructions: instructions, Payer: p.Creator}, nil
}

func (s *BountyService) feeTransfer(creator solana.PublicKey, fee uint64) (solana.Instruction, error) {
	source, _, err := solana.FindAssociatedTokenAddress(creator, s.mint)
	if err != nil {
		return nil, fmt.Errorf("creator token account: %w", err)
	}
	dest, _, err := solana.FindAssociatedTokenAddress(s.treasury, s.mint)
	if err != nil {
		return nil, fmt.Errorf("treasury token account: %w", err)
	}
	return token.NewTransferInstruction(fee, source, dest, creator, nil).Build(), nil
}

// BuildClaim claim an open bounty for caller.
func (s *BountyService) BuildClaim(ctx context.Context, caller, creator solana.PublicKey, bountyID string) (*chain.UnsignedTx, error) {
	address, b, err := s.fetchBounty(ctx, creator, bountyID)
	if err != nil {
		return nil, err
	}
	if err := bounty.Validate(b, bounty.Request{Action: bounty.ActionClaim, Caller: caller, Now: s.now()}); err != nil {
		return nil, err
	}
	ix, err := s.builder.ClaimBounty(address, caller)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: caller}, nil
}

// BuildAbandon release caller's claim back to the open pool.
func (s *BountyService) BuildAbandon(ctx context.Context, caller, creator solana.PublicKey, bountyID string) (*chain.UnsignedTx, error) {
	address, b, err := s.fetchBounty(ctx, creator, bountyID)
	if err != nil {
		return nil, err
	}
	if err := bounty.Validate(b, bounty.Request{Action: bounty.ActionAbandon, Caller: caller, Now: s.now()}); err != nil {
		return nil, err
	}
	ix, err := s.builder.AbandonClaim(address, caller)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: caller}, nil
}

// BuildSubmitProof attach a proof URI to caller's claimed bounty.
func (s *BountyService) BuildSubmitProof(ctx context.Context, caller, creator solana.PublicKey, bountyID, proofURI string) (*chain.UnsignedTx, error) {
	address, b, err := s.fetchBounty(ctx, creator, bountyID)
	if err != nil {
		return nil, err
	}
	if err := bounty.Validate(b, bounty.Request{Action: bounty.ActionSubmitProof, Caller: caller, Now: s.now(), ProofURI: proofURI}); err != nil {
		return nil, err
	}
	ix, err := s.builder.SubmitProof(address, caller, proofURI)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: caller}, nil
}

// BuildApprove release the escrow to the claimer.
func (s *BountyService) BuildApprove(ctx context.Context, caller, creator solana.PublicKey, bountyID string) (*chain.UnsignedTx, error) {
	address, b, err := s.fetchBounty(ctx, creator, bountyID)
	if err != nil {
		return nil, err
	}
	if err := bounty.Validate(b, bounty.Request{Action: bounty.ActionApprove, Caller: caller, Now: s.now()}); err != nil {
		return nil, err
	}
	if b.Claimer == nil {
		return nil, bounty.ErrNoClaimer
	}
	ix, err := s.builder.ApproveAndPay(address, caller, *b.Claimer)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: caller}, nil
}

// BuildReject send a submission back with a reason, reopening the bounty.
func (s *BountyService) BuildReject(ctx context.Context, caller, creator solana.PublicKey, bountyID, reason string) (*chain.UnsignedTx, error) {
	address, b, err := s.fetchBounty(ctx, creator, bountyID)
	if err != nil {
		return nil, err
	}
	if err := bounty.Validate(b, bounty.Request{Action: bounty.ActionReject, Caller: caller, Now: s.now(), Reason: reason}); err != nil {
		return nil, err
	}
	ix, err := s.builder.RejectBounty(address, caller, reason)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: caller}, nil
}

// BuildFinalize force payout after the review window; any wallet may call.
func (s *BountyService) BuildFinalize(ctx context.Context, caller, creator solana.PublicKey, bountyID string) (*chain.UnsignedTx, error) {
	address, b, err := s.fetchBounty(ctx, creator, bountyID)
	if err != nil {
		return nil, err
	}
	if err := bounty.Validate(b, bounty.Request{Action: bounty.ActionForceFinalize, Caller: caller, Now: s.now()}); err != nil {
		return nil, err
	}
	if b.Claimer == nil {
		return nil, bounty.ErrNoClaimer
	}
	ix, err := s.builder.FinalizeBounty(address, b.Creator, *b.Claimer, caller)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: caller}, nil
}

// BuildCancel refund an open bounty's escrow to its creator.
func (s *BountyService) BuildCancel(ctx context.Context, caller, creator solana.PublicKey, bountyID string) (*chain.UnsignedTx, error) {
	address, b, err := s.fetchBounty(ctx, creator, bountyID)
	if err != nil {
		return nil, err
	}
	if err := bounty.Validate(b, bounty.Request{Action: bounty.ActionCancel, Caller: caller, Now: s.now()}); err != nil {
		return nil, err
	}
	ix, err := s.builder.CancelBounty(address, caller)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: caller}, nil
}

// Submit sign and send a built transaction with a local keypair, waiting for
// confirmation. The ledger's verdict is authoritative; on failure callers
// must re-fetch rather than retry blindly.
func (s *BountyService) Submit(ctx context.Context, tx *chain.UnsignedTx, signer solana.PrivateKey) (solana.Signature, error) {
	return s.ledger.SubmitInstructions(ctx, tx.Instructions, signer.PublicKey(), []solana.PrivateKey{signer})
}

// EncodeBase64 serialize an unsigned transaction for an external wallet to
// sign.
func (s *BountyService) EncodeBase64(ctx context.Context, tx *chain.UnsignedTx) (string, error) {
	return chain.EncodeBase64(ctx, s.ledger, tx)
}
