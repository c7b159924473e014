package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	model "agentgrind-service/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySQLDatabase MySQL metadata store implementation backed by GORM
type MySQLDatabase struct {
	db *gorm.DB
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	Dsn          string
	MaxOpenConns int
	MaxIdleConns int
}

// NewMySQLDatabase create MySQL metadata store instance
func NewMySQLDatabase(config interface{}) (Database, error) {
	cfg, ok := config.(*MySQLConfig)
	if !ok {
		return nil, fmt.Errorf("invalid MySQL config type")
	}

	db, err := gorm.Open(mysql.Open(cfg.Dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&model.BountyMetadata{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("MySQL metadata store connected")
	return &MySQLDatabase{db: db}, nil
}

// SaveBountyMetadata create or replace metadata for a bounty.
func (m *MySQLDatabase) SaveBountyMetadata(meta *model.BountyMetadata) error {
	return m.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "creator"}, {Name: "bounty_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
	}).Create(meta).Error
}

// GetBountyMetadata fetch metadata for one bounty.
func (m *MySQLDatabase) GetBountyMetadata(creator, bountyID string) (*model.BountyMetadata, error) {
	var meta model.BountyMetadata
	err := m.db.Where("creator = ? AND bounty_id = ?", creator, bountyID).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// ListBountyMetadataByCreator list all metadata rows for one creator, newest
// first.
func (m *MySQLDatabase) ListBountyMetadataByCreator(creator string) ([]*model.BountyMetadata, error) {
	var metas []*model.BountyMetadata
	err := m.db.Where("creator = ?", creator).Order("created_at DESC").Find(&metas).Error
	if err != nil {
		return nil, err
	}
	return metas, nil
}

// DeleteBountyMetadata remove metadata for one bounty.
func (m *MySQLDatabase) DeleteBountyMetadata(creator, bountyID string) error {
	return m.db.Where("creator = ? AND bounty_id = ?", creator, bountyID).Delete(&model.BountyMetadata{}).Error
}

// Close close the underlying connection pool.
func (m *MySQLDatabase) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
