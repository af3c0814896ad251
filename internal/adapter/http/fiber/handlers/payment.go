package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service ports.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

type SettleSessionRequest struct {
	SessionID string `json:"session_id"`
	Method    string `json:"method"`
}

func (h *PaymentHandler) Settle(c *fiber.Ctx) error {
	var req SettleSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_id is required"})
	}

	customerID := c.Locals("user_id").(string)
	tx, err := h.service.SettleSession(c.Context(), customerID, req.SessionID, domain.PaymentMethod(req.Method))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	tx, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if tx == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}
	return c.JSON(tx)
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	page := domain.PageRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	payments, err := h.service.ListByCustomer(c.Context(), customerID, page)
	if err != nil {
		return err
	}
	return c.JSON(payments)
}
