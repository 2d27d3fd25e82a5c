package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// SessionSnapshot is the durable key-value record backing a session.
// One row per session key, last write wins.
type SessionSnapshot struct {
	Key       string         `json:"key" gorm:"primaryKey;column:key;type:text"`
	Payload   datatypes.JSON `json:"payload" gorm:"not null"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"not null"`
}

func (SessionSnapshot) TableName() string { return "session_snapshots" }

type Repository interface {
	Save(ctx context.Context, snap *SessionSnapshot) error
	Find(ctx context.Context, key string) (*SessionSnapshot, error)
	Delete(ctx context.Context, key string) error
}
