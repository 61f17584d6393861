package unitofwork

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"chatrelay-be/internal/entity"
	"chatrelay-be/internal/model"
	"chatrelay-be/internal/repository/specification"
	"chatrelay-be/internal/testutil"
	"chatrelay-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUser(name string) *entity.User {
	return &entity.User{
		Id:           uuid.New(),
		Username:     name + "-" + uuid.NewString()[:8],
		Email:        name + "-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
}

func exerciseUnitOfWork(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	factory := NewRepositoryFactory(db)

	t.Run("commit persists", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		u := newUser("commit")
		require.NoError(t, uow.UserRepository().Create(ctx, u))
		require.NoError(t, uow.Commit())

		found, err := factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: u.Id})
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("rollback discards", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))

		u := newUser("rollback")
		require.NoError(t, uow.UserRepository().Create(ctx, u))
		require.NoError(t, uow.Rollback())

		found, err := factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: u.Id})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("state errors", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		assert.Error(t, uow.Commit())
		assert.Error(t, uow.Rollback())

		require.NoError(t, uow.Begin(ctx))
		assert.Error(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit())
		assert.Error(t, uow.Rollback())
	})
}

func TestUnitOfWork_SQLite(t *testing.T) {
	exerciseUnitOfWork(t, testutil.NewSQLiteDB(t))
}

func TestUnitOfWork_Postgres(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_POSTGRES_DSN not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, db.AutoMigrate(model.All()...))
	exerciseUnitOfWork(t, db)
}
