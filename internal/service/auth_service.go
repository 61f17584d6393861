package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"chatrelay-be/internal/dto"
	"chatrelay-be/internal/entity"
	"chatrelay-be/internal/mapper"
	"chatrelay-be/internal/pkg/apperror"
	"chatrelay-be/internal/pkg/logger"
	"chatrelay-be/internal/repository/contract"
	"chatrelay-be/internal/repository/specification"
	"chatrelay-be/internal/repository/unitofwork"
	"chatrelay-be/pkg/password"
	"chatrelay-be/pkg/token"

	"github.com/google/uuid"
)

const authModule = "AUTH"

const (
	msgInvalidCredentials = "invalid credentials"
	msgUserExists         = "username or email already exists"
	msgMissingFields      = "username, email and password are required"
	msgUserNotFound       = "user not found"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	hasher     password.Hasher
	issuer     token.Issuer
	logger     logger.ILogger
	mapper     *mapper.UserMapper
	now        func() time.Time
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, hasher password.Hasher, issuer token.Issuer, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		hasher:     hasher,
		issuer:     issuer,
		logger:     log,
		mapper:     mapper.NewUserMapper(),
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, apperror.Validation(msgMissingFields)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsernameOrEmail{Username: username, Email: email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict(msgUserExists)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error(authModule, "Failed to hash password", map[string]interface{}{"error": err})
		return nil, apperror.Internal(err)
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, apperror.Conflict(msgUserExists)
		}
		s.logger.Error(authModule, "Failed to create user", map[string]interface{}{"error": err})
		return nil, apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, apperror.Conflict(msgUserExists)
		}
		return nil, apperror.Internal(err)
	}

	s.logger.Info(authModule, "User registered", map[string]interface{}{"user_id": user.Id.String()})

	res := s.mapper.ToResponse(user)
	return &res, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperror.Validation("email and password are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// unknown email and wrong password are indistinguishable
	if user == nil || !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.logger.Warn(authModule, "Login rejected", map[string]interface{}{"email": email})
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	signed, expiresAt, err := s.issuer.Issue(token.Claims{
		UserID:   user.Id.String(),
		Username: user.Username,
	})
	if err != nil {
		s.logger.Error(authModule, "Failed to issue token", map[string]interface{}{"error": err})
		return nil, apperror.Internal(err)
	}

	return &dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      s.mapper.ToResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	res := s.mapper.ToResponse(user)
	return &res, nil
}
