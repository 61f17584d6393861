// Package resolver turns a user message into a bot reply by walking an ordered
// chain of providers. Resolve never fails: when every provider is unusable the
// caller gets a canned reply that quotes the message back.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"chatrelay-be/internal/pkg/logger"
)

const module = "RESOLVER"

// Attempt is one link of the chain. A reply is usable when err is nil and the
// text is not blank.
type Attempt struct {
	Name string
	Run  func(ctx context.Context, text string) (string, error)
}

type Resolver struct {
	attempts []Attempt
	logger   logger.ILogger
}

func New(log logger.ILogger, attempts ...Attempt) *Resolver {
	return &Resolver{attempts: attempts, logger: log}
}

// Names lists the attempts in the order they run.
func (r *Resolver) Names() []string {
	names := make([]string, len(r.attempts))
	for i, a := range r.attempts {
		names[i] = a.Name
	}
	return names
}

func (r *Resolver) Resolve(ctx context.Context, text string) string {
	// the reply is persisted even if the client goes away
	ctx = context.WithoutCancel(ctx)

	for _, attempt := range r.attempts {
		reply, err := r.run(ctx, attempt, text)
		if err != nil {
			r.logger.Warn(module, "Attempt failed", map[string]interface{}{
				"attempt": attempt.Name,
				"error":   err.Error(),
			})
			continue
		}
		if strings.TrimSpace(reply) == "" {
			r.logger.Warn(module, "Attempt returned empty reply", map[string]interface{}{
				"attempt": attempt.Name,
			})
			continue
		}

		r.logger.Debug(module, "Reply resolved", map[string]interface{}{"attempt": attempt.Name})
		return reply
	}

	r.logger.Error(module, "All attempts failed, using degraded reply", map[string]interface{}{
		"attempts": len(r.attempts),
	})
	return DegradedReply(text)
}

func (r *Resolver) run(ctx context.Context, attempt Attempt, text string) (reply string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reply = ""
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return attempt.Run(ctx, text)
}

// DegradedReply is the last-resort reply. text is embedded verbatim.
func DegradedReply(text string) string {
	return `I'm a helpful AI assistant! I received your message: "` + text +
		`". However, I'm currently experiencing some technical difficulties with my AI service. ` +
		`Please try again in a moment, or feel free to ask me anything else!`
}
