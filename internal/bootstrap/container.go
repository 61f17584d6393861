package bootstrap

import (
	"context"
	"fmt"

	"chatrelay-be/internal/config"
	"chatrelay-be/internal/controller"
	"chatrelay-be/internal/pkg/logger"
	"chatrelay-be/internal/repository/unitofwork"
	"chatrelay-be/internal/service"
	"chatrelay-be/pkg/ai/resolver"
	"chatrelay-be/pkg/llm/gemini"
	"chatrelay-be/pkg/llm/relay"
	"chatrelay-be/pkg/password"
	"chatrelay-be/pkg/token"

	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	HealthController  controller.IHealthController
	AuthController    controller.IAuthController
	ChatbotController controller.IChatbotController
}

// NewContainer wires every dependency. cfg must already be validated.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}

	tokens, err := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	// 2. Response chain
	responder, err := NewResolver(ctx, cfg.Ai, sysLogger)
	if err != nil {
		return nil, err
	}

	// 3. Services
	authService := service.NewAuthService(uowFactory, password.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, sysLogger)
	chatbotService := service.NewChatbotService(uowFactory, responder, sysLogger)

	// 4. Controllers
	return &Container{
		Logger:            sysLogger,
		HealthController:  controller.NewHealthController(sqlDB),
		AuthController:    controller.NewAuthController(authService, tokens),
		ChatbotController: controller.NewChatbotController(chatbotService, tokens),
	}, nil
}

// NewResolver builds the provider chain in the configured order. Gemini is
// only part of the chain when an API key is set.
func NewResolver(ctx context.Context, cfg config.AIConfig, sysLogger logger.ILogger) (*resolver.Resolver, error) {
	order, err := resolver.ParseOrder(cfg.ProviderOrder)
	if err != nil {
		return nil, fmt.Errorf("AI_PROVIDER_ORDER: %w", err)
	}

	providers := resolver.Providers{
		Relay: relay.NewRelayProvider(cfg.RelayURL, cfg.RelayTimeout),
	}

	if cfg.GoogleAPIKey != "" {
		geminiProvider, err := gemini.NewGeminiProvider(ctx, cfg.GoogleAPIKey, cfg.GoogleModel)
		if err != nil {
			return nil, err
		}
		providers.Gemini = geminiProvider
		providers.GeminiModels = gemini.ModelVariants(cfg.GoogleModel)
	} else {
		sysLogger.Warn("BOOTSTRAP", "GOOGLE_API_KEY not set, gemini fallback disabled", nil)
	}

	attempts, err := resolver.BuildChain(order, providers)
	if err != nil {
		return nil, err
	}

	r := resolver.New(sysLogger, attempts...)
	sysLogger.Info("BOOTSTRAP", "Response chain ready", map[string]interface{}{"attempts": r.Names()})
	return r, nil
}
