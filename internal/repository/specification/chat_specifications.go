package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.ChatSessionID)
}

// Chronological orders messages oldest first. Timestamps are strictly
// increasing within a session, id only breaks ties for legacy rows.
type Chronological struct{}

func (s Chronological) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("timestamp ASC").Order("id ASC")
}

// MostRecentlyActive orders sessions by last activity, newest first.
type MostRecentlyActive struct{}

func (s MostRecentlyActive) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("created_at DESC")
}
