// Package profile_service exposes the creator profile read model: on-chain
// reputation plus the advisory access tier derived from it.
package profile_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"agentgrind-service/bounty"
	"agentgrind-service/chain"
	"agentgrind-service/codec"
	"agentgrind-service/conf"
	"agentgrind-service/pda"
)

// ProfileService creator profile query and linking service
type ProfileService struct {
	ledger    chain.Ledger
	builder   *codec.InstructionBuilder
	programID solana.PublicKey
}

// NewProfileService create a profile service bound to a ledger and program.
func NewProfileService(ledger chain.Ledger, programID, mint solana.PublicKey) *ProfileService {
	return &ProfileService{
		ledger:    ledger,
		builder:   codec.NewInstructionBuilder(programID, mint),
		programID: programID,
	}
}

// NewProfileServiceFromConfig create a profile service from global configuration.
func NewProfileServiceFromConfig(ledger chain.Ledger) (*ProfileService, error) {
	programID, err := solana.PublicKeyFromBase58(conf.Cfg.Chain.ProgramId)
	if err != nil {
		return nil, fmt.Errorf("invalid program id %q: %w", conf.Cfg.Chain.ProgramId, err)
	}
	mint, err := solana.PublicKeyFromBase58(conf.Cfg.Chain.Mint)
	if err != nil {
		return nil, fmt.Errorf("invalid mint %q: %w", conf.Cfg.Chain.Mint, err)
	}
	return NewProfileService(ledger, programID, mint), nil
}

// ProfileView decoded profile state plus derived tier fields
type ProfileView struct {
	Address string `json:"address"`
	// Exists false when the wallet has not initialized a profile yet; the
	// rest of the view then shows the state init_profile would create.
	Exists bool `json:"exists"`
	bounty.CreatorProfile

	Tier bounty.AccessTier `json:"tier"`
	// MaxBountyAtoms advisory per-bounty cap; omitted when uncapped
	MaxBountyAtoms uint64 `json:"max_bounty_atoms,omitempty"`
	CanCreate      bool   `json:"can_create"`
}

// GetProfile fetch and decode the profile for a wallet. A wallet without a
// profile account gets a synthetic view at the initial reputation, since that
// is exactly what init_profile would mint.
func (s *ProfileService) GetProfile(ctx context.Context, wallet solana.PublicKey) (*ProfileView, error) {
	address, _, err := pda.ProfileAddress(s.programID, wallet)
	if err != nil {
		return nil, err
	}

	data, err := s.ledger.FetchAccount(ctx, address)
	if errors.Is(err, chain.ErrAccountNotFound) {
		return s.tieredView(address, false, &bounty.CreatorProfile{
			Wallet:     wallet,
			Reputation: bounty.InitialReputation,
		}), nil
	}
	if err != nil {
		return nil, err
	}

	profile, err := codec.DecodeCreatorProfile(data)
	if err != nil {
		return nil, err
	}
	return s.tieredView(address, true, profile), nil
}

func (s *ProfileService) tieredView(address solana.PublicKey, exists bool, p *bounty.CreatorProfile) *ProfileView {
	tier := bounty.TierFor(p.Reputation)
	v := &ProfileView{
		Address:        address.String(),
		Exists:         exists,
		CreatorProfile: *p,
		Tier:           tier,
		CanCreate:      tier.CanCreate(),
	}
	if limit, capped := tier.MaxBountyAtoms(); capped {
		v.MaxBountyAtoms = limit
	}
	return v
}

// BuildInitProfile create the wallet's profile account at initial reputation.
func (s *ProfileService) BuildInitProfile(wallet solana.PublicKey) (*chain.UnsignedTx, error) {
	ix, err := s.builder.InitProfile(wallet)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: wallet}, nil
}

// BuildLinkX record a verified X handle on the wallet's profile.
func (s *ProfileService) BuildLinkX(wallet solana.PublicKey, xHandle string) (*chain.UnsignedTx, error) {
	ix, err := s.builder.LinkX(wallet, xHandle)
	if err != nil {
		return nil, err
	}
	return &chain.UnsignedTx{Instructions: []solana.Instruction{ix}, Payer: wallet}, nil
}

// EncodeBase64 serialize an unsigned transaction for an external wallet to
// sign.
func (s *ProfileService) EncodeBase64(ctx context.Context, tx *chain.UnsignedTx) (string, error) {
	return chain.EncodeBase64(ctx, s.ledger, tx)
}
