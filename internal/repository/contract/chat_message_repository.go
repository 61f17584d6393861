package contract

import (
	"context"
	"time"

	"chatrelay-be/internal/entity"
	"chatrelay-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	// LatestTimestamp returns the newest message timestamp of a session, nil when it has none.
	LatestTimestamp(ctx context.Context, sessionId uuid.UUID) (*time.Time, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
