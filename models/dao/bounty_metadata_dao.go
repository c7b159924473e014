package dao

import (
	"fmt"

	"agentgrind-service/database"
	model "agentgrind-service/models"
)

// BountyMetadataDAO bounty metadata DAO
type BountyMetadataDAO struct {
	db database.Database
}

// NewBountyMetadataDAO create bounty metadata DAO instance
func NewBountyMetadataDAO() *BountyMetadataDAO {
	return &BountyMetadataDAO{
		db: database.DB,
	}
}

// Save create or replace metadata for a bounty
func (d *BountyMetadataDAO) Save(meta *model.BountyMetadata) error {
	if d.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if len(meta.Title) > model.MaxTitleLen {
		return fmt.Errorf("title exceeds %d characters", model.MaxTitleLen)
	}
	if len(meta.Description) > model.MaxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters", model.MaxDescriptionLen)
	}
	return d.db.SaveBountyMetadata(meta)
}

// Get fetch metadata for one bounty
func (d *BountyMetadataDAO) Get(creator, bountyID string) (*model.BountyMetadata, error) {
	if d.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return d.db.GetBountyMetadata(creator, bountyID)
}

// ListByCreator list metadata rows for one creator, newest first
func (d *BountyMetadataDAO) ListByCreator(creator string) ([]*model.BountyMetadata, error) {
	if d.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return d.db.ListBountyMetadataByCreator(creator)
}

// Delete remove metadata for one bounty
func (d *BountyMetadataDAO) Delete(creator, bountyID string) error {
	if d.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return d.db.DeleteBountyMetadata(creator, bountyID)
}
