// Package schema provides database models of the PostgreSQL session store.
package schema

import "time"

// SessionSnapshot keeps the serialized dataset of one session.
type SessionSnapshot struct {
	// SessionID is the subject of the session token.
	SessionID string `gorm:"primaryKey;type:varchar(36)"`

	// DatasetID is the content-derived ID of the dataset.
	DatasetID string `gorm:"type:varchar(36);not null"`

	// Filename is the name of the uploaded file.
	Filename string `gorm:"type:varchar(255)"`

	// Snapshot is the JSON-encoded dataset.
	Snapshot []byte `gorm:"type:bytea;not null"`

	// UpdatedAt is the time of the last write or read of the session.
	// Expired sessions are purged by it.
	UpdatedAt time.Time `gorm:"index;not null"`
}

// TableName sets the table name used by GORM.
func (SessionSnapshot) TableName() string {
	return "sessions"
}
