package contract

import (
	"context"
	"time"

	"chatrelay-be/internal/entity"
	"chatrelay-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// Touch sets updated_at and reports whether the session exists. Inside a
	// transaction it also takes the session's row lock.
	Touch(ctx context.Context, id uuid.UUID, updatedAt time.Time) (bool, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string, updatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
