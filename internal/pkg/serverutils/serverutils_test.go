package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"chatrelay-be/internal/pkg/apperror"
	"chatrelay-be/internal/pkg/logger"
	"chatrelay-be/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, verifier token.Verifier) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware(logger.NewNopLogger())})
	app.Get("/private", JwtMiddleware(verifier), func(ctx *fiber.Ctx) error {
		userId, err := UserID(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", fiber.Map{
			"user_id":  userId.String(),
			"username": ctx.Locals(LocalUsername),
		}))
	})
	return app
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestJwtMiddleware(t *testing.T) {
	m, err := token.NewManager("secret", time.Hour)
	require.NoError(t, err)

	userId := uuid.New()
	valid, _, err := m.Issue(token.Claims{UserID: userId.String(), Username: "alice"})
	require.NoError(t, err)

	notUUID, _, err := m.Issue(token.Claims{UserID: "42", Username: "alice"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"missing header", "", 401, "no token provided"},
		{"wrong scheme", "Basic abc", 401, "no token provided"},
		{"empty bearer", "Bearer ", 401, "no token provided"},
		{"garbage token", "Bearer abc.def.ghi", 401, "invalid token"},
		{"non uuid subject", "Bearer " + notUUID, 401, "invalid token"},
		{"valid", "Bearer " + valid, 200, "ok"},
	}

	app := newTestApp(t, m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.wantStatus == 200 {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, userId.String(), data["user_id"])
				assert.Equal(t, "alice", data["username"])
			}
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperror.Validation("title is required"), 400, "title is required"},
		{"conflict", apperror.Conflict("username or email already exists"), 400, "username or email already exists"},
		{"unauthorized", apperror.Unauthorized("invalid credentials"), 401, "invalid credentials"},
		{"session access", apperror.ErrSessionNotFound, 403, "chat session not found or access denied"},
		{"not found", apperror.NotFound("user not found"), 404, "user not found"},
		{"raw error hidden", errors.New("pq: connection refused"), 500, "internal server error"},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), 405, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware(logger.NewNopLogger())})
			app.Get("/", func(ctx *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(tt.wantStatus), body["code"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

type sample struct {
	Title string `validate:"required,max=5"`
	Email string `validate:"omitempty,email"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Title: "ok"}))

	err := ValidateRequest(sample{})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "title is required")

	err = ValidateRequest(sample{Title: "too long", Email: "nope"})
	assert.Contains(t, err.Error(), "title must be at most 5 characters")
	assert.Contains(t, err.Error(), "email must be a valid email address")
}
