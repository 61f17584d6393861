package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"chatrelay-be/internal/dto"
	"chatrelay-be/internal/pkg/logger"
	"chatrelay-be/internal/repository/unitofwork"
	"chatrelay-be/internal/testutil"
	"chatrelay-be/pkg/password"
	"chatrelay-be/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeResponder struct {
	mu     sync.Mutex
	reply  string
	inputs []string
	ctxErr error
	// onResolve runs before the reply is returned
	onResolve func()
}

func (f *fakeResponder) Resolve(ctx context.Context, text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, text)
	if f.onResolve != nil {
		f.onResolve()
	}
	f.ctxErr = ctx.Err()
	return f.reply
}

// frozenClock always returns the same instant.
func frozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type fixture struct {
	db        *gorm.DB
	auth      IAuthService
	chat      *chatbotService
	responder *fakeResponder
	tokens    *token.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	uow := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()

	tokens, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	responder := &fakeResponder{reply: "bot says hi"}

	return &fixture{
		db:        db,
		auth:      NewAuthService(uow, password.NewBcryptHasher(bcrypt.MinCost), tokens, log),
		chat:      NewChatbotService(uow, responder, log).(*chatbotService),
		responder: responder,
		tokens:    tokens,
	}
}

func (f *fixture) register(t *testing.T, username string) uuid.UUID {
	t.Helper()
	u, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw-" + username,
	})
	require.NoError(t, err)
	return u.Id
}
