package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

func (s ChatSender) Valid() bool {
	return s == ChatSenderUser || s == ChatSenderBot
}

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Message       string
	Sender        ChatSender
	Timestamp     time.Time
}
