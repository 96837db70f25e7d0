package model

import (
	"time"
)

// MigrationVersion records a schema version applied to the store
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"size:20;not null;index"`
	AppliedAt time.Time `gorm:"not null"`
	Details   string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
