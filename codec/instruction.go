package codec

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"agentgrind-service/pda"
)

// Program method names on the wire.
const (
	MethodCreateBounty  = "create_bounty"
	MethodClaimBounty   = "claim_bounty"
	MethodAbandonClaim  = "abandon_claim"
	MethodSubmitProof   = "submit_proof"
	MethodApproveAndPay = "approve_and_pay"
	MethodRejectBounty  = "reject_bounty"
	MethodFinalize      = "finalize_bounty"
	MethodCancelBounty  = "cancel_bounty"
	MethodInitProfile   = "init_profile"
	MethodLinkX         = "link_x"
)

// InstructionDiscriminator derives the 8-byte method tag for an instruction.
func InstructionDiscriminator(method string) []byte {
	h := sha256.Sum256([]byte("global:" + method))
	return h[:8]
}

// InstructionBuilder assembles program instructions: method discriminator plus
// borsh-encoded arguments, addressed at the accounts each handler expects.
type InstructionBuilder struct {
	ProgramID solana.PublicKey
	Mint      solana.PublicKey
}

// NewInstructionBuilder build an instruction builder bound to a program and
// escrow mint.
func NewInstructionBuilder(programID, mint solana.PublicKey) *InstructionBuilder {
	return &InstructionBuilder{ProgramID: programID, Mint: mint}
}

// CreateBounty escrow a net amount for a new bounty. The platform fee is a
// separate token transfer appended by the caller; amount here is post-fee.
func (ib *InstructionBuilder) CreateBounty(creator solana.PublicKey, bountyID string, amount uint64, deadline int64) (solana.Instruction, error) {
	if len(bountyID) > MaxBountyIDLen {
		return nil, fmt.Errorf("bounty_id: %w: %d > %d", ErrStringTooLong, len(bountyID), MaxBountyIDLen)
	}
	bountyAddr, _, err := pda.BountyAddress(ib.ProgramID, creator, bountyID)
	if err != nil {
		return nil, err
	}
	vaultAddr, _, err := pda.VaultAddress(ib.ProgramID, bountyAddr)
	if err != nil {
		return nil, err
	}
	profileAddr, _, err := pda.ProfileAddress(ib.ProgramID, creator)
	if err != nil {
		return nil, err
	}
	creatorATA, _, err := solana.FindAssociatedTokenAddress(creator, ib.Mint)
	if err != nil {
		return nil, fmt.Errorf("creator token account: %w", err)
	}

	data, err := encodeArgs(MethodCreateBounty, func(enc *bin.Encoder) error {
		if err := writeString(enc, bountyID, MaxBountyIDLen); err != nil {
			return err
		}
		if err := enc.WriteUint64(amount, bin.LE); err != nil {
			return err
		}
		return enc.WriteInt64(deadline, bin.LE)
	})
	if err != nil {
		return nil, err
	}

	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(bountyAddr, true, false),
		solana.NewAccountMeta(vaultAddr, true, false),
		solana.NewAccountMeta(profileAddr, true, false),
		solana.NewAccountMeta(ib.Mint, false, false),
		solana.NewAccountMeta(creatorATA, true, false),
		solana.NewAccountMeta(creator, true, true),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	}, data), nil
}

// ClaimBounty claim an open bounty for the payer wallet.
func (ib *InstructionBuilder) ClaimBounty(bountyAddr, payer solana.PublicKey) (solana.Instruction, error) {
	agentAddr, _, err := pda.AgentAddress(ib.ProgramID, payer)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(bountyAddr, true, false),
		solana.NewAccountMeta(agentAddr, true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, InstructionDiscriminator(MethodClaimBounty)), nil
}

// AbandonClaim release a claim back to the open pool.
func (ib *InstructionBuilder) AbandonClaim(bountyAddr, payer solana.PublicKey) (solana.Instruction, error) {
	agentAddr, _, err := pda.AgentAddress(ib.ProgramID, payer)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(bountyAddr, true, false),
		solana.NewAccountMeta(agentAddr, true, false),
		solana.NewAccountMeta(payer, false, true),
	}, InstructionDiscriminator(MethodAbandonClaim)), nil
}

// SubmitProof attach a proof URI to a claimed bounty.
func (ib *InstructionBuilder) SubmitProof(bountyAddr, payer solana.PublicKey, proofURI string) (solana.Instruction, error) {
	agentAddr, _, err := pda.AgentAddress(ib.ProgramID, payer)
	if err != nil {
		return nil, err
	}
	data, err := encodeArgs(MethodSubmitProof, func(enc *bin.Encoder) error {
		return writeString(enc, proofURI, MaxProofURILen)
	})
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(bountyAddr, true, false),
		solana.NewAccountMeta(agentAddr, true, false),
		solana.NewAccountMeta(payer, false, true),
	}, data), nil
}

// ApproveAndPay release the escrow to the claimer's token account.
func (ib *InstructionBuilder) ApproveAndPay(bountyAddr, creator, claimer solana.PublicKey) (solana.Instruction, error) {
	vaultAddr, _, err := pda.VaultAddress(ib.ProgramID, bountyAddr)
	if err != nil {
		return nil, err
	}
	claimerATA, _, err := solana.FindAssociatedTokenAddress(claimer, ib.Mint)
	if err != nil {
		return nil, fmt.Errorf("claimer token account: %w", err)
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(bountyAddr, true, false),
		solana.NewAccountMeta(vaultAddr, true, false),
		solana.NewAccountMeta(claimerATA, true, false),
		solana.NewAccountMeta(creator, true, true),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}, InstructionDiscriminator(MethodApproveAndPay)), nil
}

// RejectBounty send a submission back with a reason, reopening the bounty.
func (ib *InstructionBuilder) RejectBounty(bountyAddr, creator solana.PublicKey, reason string) (solana.Instruction, error) {
	profileAddr, _, err := pda.ProfileAddress(ib.ProgramID, creator)
	if err != nil {
		return nil, err
	}
	data, err := encodeArgs(MethodRejectBounty, func(enc *bin.Encoder) error {
		return writeString(enc, reason, MaxRejectionReasonLen)
	})
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(bountyAddr, true, false),
		solana.NewAccountMeta(profileAddr, true, false),
		solana.NewAccountMeta(creator, false, true),
	}, data), nil
}

// FinalizeBounty force payout after the review window; any wallet may call.
func (ib *InstructionBuilder) FinalizeBounty(bountyAddr, creator, claimer, caller solana.PublicKey) (solana.Instruction, error) {
	vaultAddr, _, err := pda.VaultAddress(ib.ProgramID, bountyAddr)
	if err != nil {
		return nil, err
	}
	profileAddr, _, err := pda.ProfileAddress(ib.ProgramID, creator)
	if err != nil {
		return nil, err
	}
	claimerATA, _, err := solana.FindAssociatedTokenAddress(claimer, ib.Mint)
	if err != nil {
		return nil, fmt.Errorf("claimer token account: %w", err)
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(bountyAddr, true, false),
		solana.NewAccountMeta(vaultAddr, true, false),
		solana.NewAccountMeta(profileAddr, true, false),
		solana.NewAccountMeta(caller, true, true),
		solana.NewAccountMeta(claimerATA, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}, InstructionDiscriminator(MethodFinalize)), nil
}

// CancelBounty refund an open bounty's escrow to the creator.
func (ib *InstructionBuilder) CancelBounty(bountyAddr, creator solana.PublicKey) (solana.Instruction, error) {
	vaultAddr, _, err := pda.VaultAddress(ib.ProgramID, bountyAddr)
	if err != nil {
		return nil, err
	}
	profileAddr, _, err := pda.ProfileAddress(ib.ProgramID, creator)
	if err != nil {
		return nil, err
	}
	creatorATA, _, err := solana.FindAssociatedTokenAddress(creator, ib.Mint)
	if err != nil {
		return nil, fmt.Errorf("creator token account: %w", err)
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(bountyAddr, true, false),
		solana.NewAccountMeta(vaultAddr, true, false),
		solana.NewAccountMeta(profileAddr, true, false),
		solana.NewAccountMeta(creatorATA, true, false),
		solana.NewAccountMeta(creator, true, true),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}, InstructionDiscriminator(MethodCancelBounty)), nil
}

// InitProfile create the caller's CreatorProfile with initial reputation.
func (ib *InstructionBuilder) InitProfile(wallet solana.PublicKey) (solana.Instruction, error) {
	profileAddr, _, err := pda.ProfileAddress(ib.ProgramID, wallet)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(profileAddr, true, false),
		solana.NewAccountMeta(wallet, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, InstructionDiscriminator(MethodInitProfile)), nil
}

// LinkX record a verified X handle on the caller's profile.
func (ib *InstructionBuilder) LinkX(wallet solana.PublicKey, xHandle string) (solana.Instruction, error) {
	profileAddr, _, err := pda.ProfileAddress(ib.ProgramID, wallet)
	if err != nil {
		return nil, err
	}
	data, err := encodeArgs(MethodLinkX, func(enc *bin.Encoder) error {
		return writeString(enc, xHandle, MaxXHandleLen)
	})
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ib.ProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(profileAddr, true, false),
		solana.NewAccountMeta(wallet, false, true),
	}, data), nil
}

func encodeArgs(method string, write func(enc *bin.Encoder) error) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(InstructionDiscriminator(method), false); err != nil {
		return nil, err
	}
	if err := write(enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
