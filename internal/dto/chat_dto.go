package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"max=255"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=10000"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	SessionId uuid.UUID `json:"session_id"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type SendMessageResponse struct {
	UserMessage *ChatMessageResponse `json:"userMessage"`
	BotMessage  *ChatMessageResponse `json:"botMessage"`
}

type DeleteSessionResponse struct {
	Message string `json:"message"`
}
