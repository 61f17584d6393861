package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultChatSessionTitle = "New Chat"

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
