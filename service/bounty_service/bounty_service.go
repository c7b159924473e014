// Package bounty_service exposes the bounty read model and action builders
// backed by the ledger. All state lives on-chain; this service decodes,
// validates against lifecycle rules, enriches with off-chain metadata, and
// assembles instructions. It never trusts local predictions after a ledger
// rejection.
package bounty_service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/gagliardetto/solana-go"

	"agentgrind-service/bounty"
	"agentgrind-service/chain"
	"agentgrind-service/codec"
	"agentgrind-service/conf"
	"agentgrind-service/database"
	model "agentgrind-service/models"
	"agentgrind-service/models/dao"
	"agentgrind-service/pda"
)

// BountyService bounty query and action service
type BountyService struct {
	ledger      chain.Ledger
	builder     *codec.InstructionBuilder
	programID   solana.PublicKey
	mint        solana.PublicKey
	treasury    solana.PublicKey // zero key disables the fee transfer leg
	metadataDAO *dao.BountyMetadataDAO

	now func() time.Time
}

// NewBountyService create a bounty service bound to a ledger and program.
func NewBountyService(ledger chain.Ledger, programID, mint, treasury solana.PublicKey) *BountyService {
	return &BountyService{
		ledger:      ledger,
		builder:     codec.NewInstructionBuilder(programID, mint),
		programID:   programID,
		mint:        mint,
		treasury:    treasury,
		metadataDAO: dao.NewBountyMetadataDAO(),
		now:         time.Now,
	}
}

// NewBountyServiceFromConfig create a bounty service from global configuration.
func NewBountyServiceFromConfig(ledger chain.Ledger) (*BountyService, error) {
	programID, err := solana.PublicKeyFromBase58(conf.Cfg.Chain.ProgramId)
	if err != nil {
		return nil, fmt.Errorf("invalid program id %q: %w", conf.Cfg.Chain.ProgramId, err)
	}
	mint, err := solana.PublicKeyFromBase58(conf.Cfg.Chain.Mint)
	if err != nil {
		return nil, fmt.Errorf("invalid mint %q: %w", conf.Cfg.Chain.Mint, err)
	}
	var treasury solana.PublicKey
	if conf.Cfg.Chain.Treasury != "" {
		treasury, err = solana.PublicKeyFromBase58(conf.Cfg.Chain.Treasury)
		if err != nil {
			return nil, fmt.Errorf("invalid treasury %q: %w", conf.Cfg.Chain.Treasury, err)
		}
	}
	return NewBountyService(ledger, programID, mint, treasury), nil
}

// BountyView decoded bounty state plus derived presentation fields
type BountyView struct {
	Address string `json:"address"`
	bounty.Bounty

	// Expired deadline elapsed while the bounty is still open/claimed
	Expired bool `json:"expired"`
	// FinalizableAt unix time force-finalize becomes legal; 0 unless Submitted
	FinalizableAt int64 `json:"finalizable_at,omitempty"`

	Metadata *model.BountyMetadata `json:"metadata,omitempty"`
}

func (s *BountyService) view(address solana.PublicKey, b *bounty.Bounty) *BountyView {
	v := &BountyView{
		Address: address.String(),
		Bounty:  *b,
	}
	if !b.Status.Terminal() {
		v.Expired = bounty.DeadlinePassed(b, s.now())
	}
	if b.Status == bounty.StatusSubmitted {
		v.FinalizableAt = bounty.FinalizeAt(b).Unix()
	}
	if meta, err := s.metadataDAO.Get(b.Creator.String(), b.BountyID); err == nil {
		v.Metadata = meta
	}
	return v
}

// ListBounties fetch and decode every bounty account owned by the program.
// Undecodable accounts are logged and skipped so one corrupt account cannot
// blank the whole board. Results are ordered open-first, nearest deadline
// first.
func (s *BountyService) ListBounties(ctx context.Context) ([]*BountyView, error) {
	entries, err := s.ledger.ListProgramAccounts(ctx, s.programID, codec.BountyAccountSize)
	if err != nil {
		return nil, err
	}

	views := make([]*BountyView, 0, len(entries))
	for _, entry := range entries {
		b, err := codec.DecodeBounty(entry.Data)
		if err != nil {
			log.Printf("skip undecodable bounty account %s: %v", entry.Address, err)
			continue
		}
		views = append(views, s.view(entry.Address, b))
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].Status != views[j].Status {
			return views[i].Status < views[j].Status
		}
		return views[i].Deadline < views[j].Deadline
	})
	return views, nil
}

// GetBounty fetch one bounty by its creator and bounty_id seeds.
func (s *BountyService) GetBounty(ctx context.Context, creator solana.PublicKey, bountyID string) (*BountyView, error) {
	address, _, err := pda.BountyAddress(s.programID, creator, bountyID)
	if err != nil {
		return nil, err
	}
	return s.GetBountyByAddress(ctx, address)
}

// GetBountyByAddress fetch one bounty account directly.
func (s *BountyService) GetBountyByAddress(ctx context.Context, address solana.PublicKey) (*BountyView, error) {
	data, err := s.ledger.FetchAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	b, err := codec.DecodeBounty(data)
	if err != nil {
		return nil, err
	}
	return s.view(address, b), nil
}

// SaveMetadata store off-chain title/description for a bounty.
func (s *BountyService) SaveMetadata(meta *model.BountyMetadata) error {
	if meta.CreatedAt == 0 {
		meta.CreatedAt = s.now().Unix()
	}
	meta.UpdatedAt = s.now().Unix()
	return s.metadataDAO.Save(meta)
}

// GetMetadata fetch off-chain metadata for a bounty.
func (s *BountyService) GetMetadata(creator, bountyID string) (*model.BountyMetadata, error) {
	return s.metadataDAO.Get(creator, bountyID)
}

// MetadataKey identifies one off-chain metadata record by its bounty seeds.
type MetadataKey struct {
	Creator  string `json:"creator"`
	BountyID string `json:"bounty_id"`
}

// GetMetadataBatch resolve metadata for many bounties in one call. Blank
// keys and keys with no stored record are omitted from the result rather
// than failing the batch.
func (s *BountyService) GetMetadataBatch(keys []MetadataKey) ([]*model.BountyMetadata, error) {
	items := make([]*model.BountyMetadata, 0, len(keys))
	for _, k := range keys {
		if k.Creator == "" || k.BountyID == "" {
			continue
		}
		meta, err := s.metadataDAO.Get(k.Creator, k.BountyID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, meta)
	}
	return items, nil
}

func (s *BountyService) fetchBounty(ctx context.Context, creator solana.PublicKey, bountyID string) (solana.PublicKey, *bounty.Bounty, error) {
	address, _, err := pda.BountyAddress(s.programID, creator, bountyID)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	data, err := s.ledger.FetchAccount(ctx, address)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	b, err := codec.DecodeBounty(data)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	return address, b, nil
}
