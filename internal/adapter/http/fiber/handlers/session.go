package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type SessionHandler struct {
	service ports.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service ports.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

type StartSessionRequest struct {
	ConnectorID string `json:"connector_id"`
	VehicleID   string `json:"vehicle_id"`
}

func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var req StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ConnectorID == "" || req.VehicleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "connector_id and vehicle_id are required"})
	}

	customerID := c.Locals("user_id").(string)
	session, err := h.service.Start(c.Context(), customerID, req.ConnectorID, req.VehicleID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *SessionHandler) Stop(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	session, err := h.service.Stop(c.Context(), customerID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(session)
}

func (h *SessionHandler) GetCurrent(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	session, err := h.service.GetCurrent(c.Context(), customerID)
	if err != nil {
		return err
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active charging session"})
	}
	return c.JSON(session)
}

func (h *SessionHandler) GetHistory(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	page := domain.PageRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	history, err := h.service.GetHistory(c.Context(), customerID, page)
	if err != nil {
		return err
	}
	return c.JSON(history)
}
