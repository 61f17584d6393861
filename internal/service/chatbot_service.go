package service

import (
	"context"
	"strings"
	"time"

	"chatrelay-be/internal/dto"
	"chatrelay-be/internal/entity"
	"chatrelay-be/internal/mapper"
	"chatrelay-be/internal/pkg/apperror"
	"chatrelay-be/internal/pkg/logger"
	"chatrelay-be/internal/repository/specification"
	"chatrelay-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const chatbotModule = "CHATBOT"

const (
	msgSendFailed        = "failed to send message"
	msgEmptyMessage      = "message is required"
	msgSessionDeleted    = "Chat session deleted successfully"
	timestampGranularity = time.Microsecond
)

// Responder produces the bot reply for a user message. It never fails.
type Responder interface {
	Resolve(ctx context.Context, text string) string
}

type IChatbotService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.RenameSessionRequest) (*dto.ChatSessionResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	AppendMessage(ctx context.Context, sessionId uuid.UUID, text string, sender entity.ChatSender) (*dto.ChatMessageResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.DeleteSessionResponse, error)
}

type chatbotService struct {
	uowFactory unitofwork.RepositoryFactory
	responder  Responder
	logger     logger.ILogger
	mapper     *mapper.ChatMapper
	now        func() time.Time
}

func NewChatbotService(uowFactory unitofwork.RepositoryFactory, responder Responder, log logger.ILogger) IChatbotService {
	return &chatbotService{
		uowFactory: uowFactory,
		responder:  responder,
		logger:     log,
		mapper:     mapper.NewChatMapper(),
		now:        time.Now,
	}
}

func (cs *chatbotService) clock() time.Time {
	return cs.now().UTC().Truncate(timestampGranularity)
}

// findOwnedSession treats a foreign session exactly like a missing one.
func (cs *chatbotService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	return session, nil
}

func (cs *chatbotService) CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error) {
	title := ""
	if request != nil {
		title = strings.TrimSpace(request.Title)
	}
	if title == "" {
		title = entity.DefaultChatSessionTitle
	}

	now := cs.clock()
	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		cs.logger.Error(chatbotModule, "Failed to create session", map[string]interface{}{"error": err, "user_id": userId.String()})
		return nil, apperror.Internal(err)
	}

	return cs.mapper.ChatSessionToResponse(session), nil
}

func (cs *chatbotService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.MostRecentlyActive{},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, cs.mapper.ChatSessionToResponse(s))
	}
	return res, nil
}

func (cs *chatbotService) RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.RenameSessionRequest) (*dto.ChatSessionResponse, error) {
	title := strings.TrimSpace(request.Title)
	if title == "" {
		return nil, apperror.Validation("title is required")
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	session, err := cs.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	updatedAt := cs.clock()
	if !updatedAt.After(session.UpdatedAt) {
		updatedAt = session.UpdatedAt
	}

	if err := uow.ChatSessionRepository().UpdateTitle(ctx, sessionId, title, updatedAt); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	session.Title = title
	session.UpdatedAt = updatedAt
	return cs.mapper.ChatSessionToResponse(session), nil
}

func (cs *chatbotService) GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if _, err := cs.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.Chronological{},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	res := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, cs.mapper.ChatMessageToResponse(m))
	}
	return res, nil
}

// AppendMessage stores one message and bumps the session's updated_at in a
// single transaction. Timestamps within a session strictly increase.
func (cs *chatbotService) AppendMessage(ctx context.Context, sessionId uuid.UUID, text string, sender entity.ChatSender) (*dto.ChatMessageResponse, error) {
	if !sender.Valid() {
		return nil, apperror.Validation("sender must be 'user' or 'bot'")
	}
	if text == "" {
		return nil, apperror.Validation(msgEmptyMessage)
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	sessionRepo := uow.ChatSessionRepository()
	messageRepo := uow.ChatMessageRepository()

	now := cs.clock()

	// the write takes the session lock before the latest timestamp is read
	found, err := sessionRepo.Touch(ctx, sessionId, now)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !found {
		return nil, apperror.ErrSessionNotFound
	}

	session, err := sessionRepo.FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}

	latest, err := messageRepo.LatestTimestamp(ctx, sessionId)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	message := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Message:       text,
		Sender:        sender,
		Timestamp:     nextTimestamp(now, session.CreatedAt, latest),
	}

	if err := messageRepo.Create(ctx, message); err != nil {
		return nil, apperror.Internal(err)
	}
	if _, err := sessionRepo.Touch(ctx, sessionId, message.Timestamp); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	return cs.mapper.ChatMessageToResponse(message), nil
}

// nextTimestamp is max(now, createdAt+1µs, latest+1µs).
func nextTimestamp(now, createdAt time.Time, latest *time.Time) time.Time {
	ts := now.UTC().Truncate(timestampGranularity)
	if floor := createdAt.UTC().Truncate(timestampGranularity).Add(timestampGranularity); ts.Before(floor) {
		ts = floor
	}
	if latest != nil {
		if floor := latest.UTC().Truncate(timestampGranularity).Add(timestampGranularity); ts.Before(floor) {
			ts = floor
		}
	}
	return ts
}

func (cs *chatbotService) SendMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if request.Message == "" {
		return nil, apperror.Validation(msgEmptyMessage)
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if _, err := cs.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	userMessage, err := cs.AppendMessage(ctx, sessionId, request.Message, entity.ChatSenderUser)
	if err != nil {
		return nil, cs.sendFailure("Failed to store user message", sessionId, err)
	}

	// the reply is generated and stored even if the caller disconnects
	detached := context.WithoutCancel(ctx)
	reply := cs.responder.Resolve(detached, request.Message)

	botMessage, err := cs.AppendMessage(detached, sessionId, reply, entity.ChatSenderBot)
	if err != nil {
		return nil, cs.sendFailure("Failed to store bot message", sessionId, err)
	}

	return &dto.SendMessageResponse{
		UserMessage: userMessage,
		BotMessage:  botMessage,
	}, nil
}

func (cs *chatbotService) sendFailure(msg string, sessionId uuid.UUID, err error) error {
	if apperror.Is(err, apperror.KindNotFound) {
		return err
	}
	cs.logger.Error(chatbotModule, msg, map[string]interface{}{"error": err, "session_id": sessionId.String()})
	return apperror.Wrap(apperror.KindInternal, msgSendFailed, err)
}

func (cs *chatbotService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.DeleteSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	if _, err := cs.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	cs.logger.Info(chatbotModule, "Session deleted", map[string]interface{}{"session_id": sessionId.String()})

	return &dto.DeleteSessionResponse{Message: msgSessionDeleted}, nil
}
