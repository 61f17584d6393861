package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"wrapped not found", fmt.Errorf("ctx: %w", NotFound("missing")), KindNotFound},
		{"conflict", Conflict("dup"), KindConflict},
		{"unauthorized", Unauthorized("nope"), KindUnauthorized},
		{"plain error", errors.New("db down"), KindInternal},
		{"internal", Internal(errors.New("db down")), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error", err.Message)
	assert.False(t, Is(nil, KindInternal))
}
