package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	model "agentgrind-service/models"

	"github.com/cockroachdb/pebble"
)

// PebbleDatabase PebbleDB metadata store implementation
type PebbleDatabase struct {
	collections map[string]*pebble.DB
}

// PebbleConfig PebbleDB configuration
type PebbleConfig struct {
	DataDir string
}

// Collection names and their key-value formats
const (
	collectionBountyMetadata = "bounty_metadata" // key: {creator}:{bounty_id}, value: JSON(BountyMetadata)
)

// NewPebbleDatabase create PebbleDB metadata store instance
func NewPebbleDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*PebbleConfig)
	if !ok {
		return nil, fmt.Errorf("invalid PebbleDB config type")
	}

	if err := os.MkdirAll(cfg.DataDir, 0777); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	log.Printf("PebbleDB data directory: %s", cfg.DataDir)

	collectionNames := []string{
		collectionBountyMetadata,
	}

	collections := make(map[string]*pebble.DB)
	for _, name := range collectionNames {
		collectionPath := filepath.Join(cfg.DataDir, "metadata_db", name)

		db, err := pebble.Open(collectionPath, &pebble.Options{})
		if err != nil {
			for _, openedDB := range collections {
				openedDB.Close()
			}
			return nil, fmt.Errorf("failed to open collection %s at %s: %w", name, collectionPath, err)
		}
		collections[name] = db
	}

	log.Printf("PebbleDB metadata store connected with %d collections", len(collections))
	return &PebbleDatabase{collections: collections}, nil
}

func metadataKey(creator, bountyID string) []byte {
	return []byte(creator + ":" + bountyID)
}

// SaveBountyMetadata create or replace metadata for a bounty.
func (p *PebbleDatabase) SaveBountyMetadata(meta *model.BountyMetadata) error {
	db := p.collections[collectionBountyMetadata]
	if db == nil {
		return ErrDatabaseNotInitialized
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return db.Set(metadataKey(meta.Creator, meta.BountyID), data, pebble.Sync)
}

// GetBountyMetadata fetch metadata for one bounty.
func (p *PebbleDatabase) GetBountyMetadata(creator, bountyID string) (*model.BountyMetadata, error) {
	db := p.collections[collectionBountyMetadata]
	if db == nil {
		return nil, ErrDatabaseNotInitialized
	}

	val, closer, err := db.Get(metadataKey(creator, bountyID))
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	defer closer.Close()

	var meta model.BountyMetadata
	if err := json.Unmarshal(val, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &meta, nil
}

// ListBountyMetadataByCreator list all metadata rows for one creator, newest
// first.
func (p *PebbleDatabase) ListBountyMetadataByCreator(creator string) ([]*model.BountyMetadata, error) {
	db := p.collections[collectionBountyMetadata]
	if db == nil {
		return nil, ErrDatabaseNotInitialized
	}

	prefix := []byte(creator + ":")
	upperBound := append(append([]byte{}, prefix...), 0xff)
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	var results []*model.BountyMetadata
	for iter.First(); iter.Valid(); iter.Next() {
		var meta model.BountyMetadata
		if err := json.Unmarshal(iter.Value(), &meta); err != nil {
			log.Printf("skip malformed metadata at key %s: %v", iter.Key(), err)
			continue
		}
		results = append(results, &meta)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt > results[j].CreatedAt
	})
	return results, nil
}

// DeleteBountyMetadata remove metadata for one bounty.
func (p *PebbleDatabase) DeleteBountyMetadata(creator, bountyID string) error {
	db := p.collections[collectionBountyMetadata]
	if db == nil {
		return ErrDatabaseNotInitialized
	}
	return db.Delete(metadataKey(creator, bountyID), pebble.Sync)
}

// Close close all collections.
func (p *PebbleDatabase) Close() error {
	var firstErr error
	for name, db := range p.collections {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close collection %s: %w", name, err)
		}
	}
	return firstErr
}
