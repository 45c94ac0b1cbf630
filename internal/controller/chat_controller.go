package controller

import (
	"postcare-ai-be/internal/dto"
	"postcare-ai-be/internal/pkg/serverutils"
	"postcare-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.SendChat)
	h.Get(":session_id/status", c.Status)
	h.Get(":session_id/history", c.History)
	h.Post(":session_id/reset", c.Reset)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) Status(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetStatus(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session status", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetHistory(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

func (c *chatController) Reset(ctx *fiber.Ctx) error {
	if err := c.chatService.ResetSession(ctx.Context(), ctx.Params("session_id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset session", nil))
}
