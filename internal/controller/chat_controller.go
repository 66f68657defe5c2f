package controller

import (
	"llamadesk-be/internal/dto"
	"llamadesk-be/internal/pkg/serverutils"
	"llamadesk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	SendChatStream(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Get("/status", c.Status)
	r.Post("/chat", c.SendChat)
	r.Post("/chat/stream", c.SendChatStream)
}

func (c *chatController) Status(ctx *fiber.Ctx) error {
	res := c.service.Status(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get status", res))
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

// SendChatStream is reserved. Token streaming needs SSE plumbing this
// minimal backend does not carry; the route answers with an explicit
// not-implemented payload instead of a protocol-level stream.
func (c *chatController) SendChatStream(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotImplemented).
		JSON(serverutils.ErrorResponse(fiber.StatusNotImplemented, "streaming is not implemented in this minimal version"))
}
