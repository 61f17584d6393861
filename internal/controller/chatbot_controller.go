package controller

import (
	"chatrelay-be/internal/dto"
	"chatrelay-be/internal/pkg/apperror"
	"chatrelay-be/internal/pkg/serverutils"
	"chatrelay-be/internal/service"
	"chatrelay-be/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service  service.IChatbotService
	verifier token.Verifier
}

func NewChatbotController(service service.IChatbotService, verifier token.Verifier) IChatbotController {
	return &chatbotController{service: service, verifier: verifier}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/sessions")
	h.Use(serverutils.JwtMiddleware(c.verifier))
	h.Post("/", c.CreateSession)
	h.Get("/", c.ListSessions)
	h.Patch("/:sessionId", c.RenameSession)
	h.Delete("/:sessionId", c.DeleteSession)
	h.Get("/:sessionId/messages", c.GetMessages)
	h.Post("/:sessionId/messages", c.SendMessage)
}

// caller returns the authenticated user and, when the route has one, the session id.
func caller(ctx *fiber.Ctx, withSession bool) (uuid.UUID, uuid.UUID, error) {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if !withSession {
		return userId, uuid.Nil, nil
	}

	// a malformed id cannot name an owned session
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.ErrSessionNotFound
	}
	return userId, sessionId, nil
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	userId, _, err := caller(ctx, false)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Chat session created", res))
}

func (c *chatbotController) ListSessions(ctx *fiber.Ctx) error {
	userId, _, err := caller(ctx, false)
	if err != nil {
		return err
	}

	res, err := c.service.ListSessions(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat sessions", res))
}

func (c *chatbotController) RenameSession(ctx *fiber.Ctx) error {
	userId, sessionId, err := caller(ctx, true)
	if err != nil {
		return err
	}

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RenameSession(ctx.UserContext(), userId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat session renamed", res))
}

func (c *chatbotController) GetMessages(ctx *fiber.Ctx) error {
	userId, sessionId, err := caller(ctx, true)
	if err != nil {
		return err
	}

	res, err := c.service.GetMessages(ctx.UserContext(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat messages", res))
}

func (c *chatbotController) SendMessage(ctx *fiber.Ctx) error {
	userId, sessionId, err := caller(ctx, true)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), userId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	userId, sessionId, err := caller(ctx, true)
	if err != nil {
		return err
	}

	res, err := c.service.DeleteSession(ctx.UserContext(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}
