package database

import (
	model "agentgrind-service/models"
)

// Database interface for different metadata store implementations
type Database interface {
	// BountyMetadata operations
	SaveBountyMetadata(meta *model.BountyMetadata) error
	GetBountyMetadata(creator, bountyID string) (*model.BountyMetadata, error)
	ListBountyMetadataByCreator(creator string) ([]*model.BountyMetadata, error)
	DeleteBountyMetadata(creator, bountyID string) error

	// General operations
	Close() error
}

// DBType database type
type DBType string

const (
	DBTypeMySQL  DBType = "mysql"
	DBTypePebble DBType = "pebble"
)

// Global database instance
var DB Database

// currentDBType stores the current database type
var currentDBType DBType

// InitDatabase initialize database with specified type
func InitDatabase(dbType DBType, config interface{}) error {
	var err error

	switch dbType {
	case DBTypePebble:
		DB, err = NewPebbleDatabase(config)
		currentDBType = DBTypePebble
	case DBTypeMySQL:
		DB, err = NewMySQLDatabase(config)
		currentDBType = DBTypeMySQL
	default:
		return ErrUnsupportedDBType
	}

	return err
}

// CurrentDBType return the active database type.
func CurrentDBType() DBType {
	return currentDBType
}
