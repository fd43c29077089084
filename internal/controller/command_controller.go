package controller

import (
	"catalog-command-be/internal/dto"
	"catalog-command-be/internal/pkg/serverutils"
	"catalog-command-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICommandController interface {
	RegisterRoutes(r fiber.Router)
	Execute(ctx *fiber.Ctx) error
	ListTools(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type commandController struct {
	service service.ICommandService
}

func NewCommandController(service service.ICommandService) ICommandController {
	return &commandController{service: service}
}

func (c *commandController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/command/v1")
	h.Post("", c.Execute)
	h.Get("/tools", c.ListTools)
	h.Get("/health", c.Health)
}

func (c *commandController) Execute(ctx *fiber.Ctx) error {
	var req dto.CommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Execute(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success execute command", res))
}

func (c *commandController) ListTools(ctx *fiber.Ctx) error {
	res, err := c.service.ListTools(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tools", res))
}

func (c *commandController) Health(ctx *fiber.Ctx) error {
	if err := c.service.Health(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Backend is healthy", nil))
}
