package model

// Metadata field limits enforced at the API boundary.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 5000
)

// BountyMetadata off-chain title/description for a bounty. The chain only
// stores the bounty_id seed; human-readable context lives here, keyed by the
// same (creator, bounty_id) pair used for PDA derivation.
type BountyMetadata struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Creator     string `gorm:"type:varchar(64);not null;uniqueIndex:idx_creator_bounty,priority:1" json:"creator"`
	BountyID    string `gorm:"type:varchar(64);not null;uniqueIndex:idx_creator_bounty,priority:2" json:"bounty_id"`
	Title       string `gorm:"type:varchar(200)" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CreatedAt   int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName table name
func (BountyMetadata) TableName() string {
	return "bounty_metadata"
}
