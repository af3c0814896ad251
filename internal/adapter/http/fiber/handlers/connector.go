package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type ConnectorHandler struct {
	service ports.ConnectorService
	log     *zap.Logger
}

func NewConnectorHandler(service ports.ConnectorService, log *zap.Logger) *ConnectorHandler {
	return &ConnectorHandler{
		service: service,
		log:     log,
	}
}

type CreateConnectorRequest struct {
	Type       string  `json:"type"`
	MaxPowerKW float64 `json:"max_power_kw"`
}

func (h *ConnectorHandler) Create(c *fiber.Ctx) error {
	var req CreateConnectorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	vendorID := c.Locals("user_id").(string)
	connector, err := h.service.Create(c.Context(), vendorID, c.Params("id"), domain.ConnectorType(req.Type), req.MaxPowerKW)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(connector)
}

type UpdateConnectorStatusRequest struct {
	Status string `json:"status"`
}

func (h *ConnectorHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateConnectorStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	vendorID := c.Locals("user_id").(string)
	connector, err := h.service.UpdateStatus(c.Context(), vendorID, c.Params("id"), domain.ConnectorStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(connector)
}

func (h *ConnectorHandler) Delete(c *fiber.Ctx) error {
	vendorID := c.Locals("user_id").(string)
	if err := h.service.Delete(c.Context(), vendorID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ConnectorHandler) ListByPole(c *fiber.Ctx) error {
	connectors, err := h.service.ListByPole(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(connectors)
}
