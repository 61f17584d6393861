package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatSessionId uuid.UUID `gorm:"column:session_id;type:uuid;not null;index:idx_chat_messages_session_ts,priority:1"`
	Message       string    `gorm:"type:text;not null"`
	Sender        string    `gorm:"type:varchar(10);not null;check:chk_chat_messages_sender,sender IN ('user','bot')"`
	Timestamp     time.Time `gorm:"not null;index:idx_chat_messages_session_ts,priority:2"`

	// Messages go with their session.
	Session ChatSession `gorm:"foreignKey:ChatSessionId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
