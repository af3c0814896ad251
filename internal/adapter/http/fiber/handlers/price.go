package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type PriceHandler struct {
	service ports.PricingService
	log     *zap.Logger
}

func NewPriceHandler(service ports.PricingService, log *zap.Logger) *PriceHandler {
	return &PriceHandler{
		service: service,
		log:     log,
	}
}

type CreatePriceRuleRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
}

func (h *PriceHandler) Create(c *fiber.Ctx) error {
	var req CreatePriceRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid effective_from, expected YYYY-MM-DD"})
	}
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		parsed, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid effective_to, expected YYYY-MM-DD"})
		}
		effectiveTo = &parsed
	}
	startMinute, err := domain.ParseClock(req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_time, expected HH:MM"})
	}
	endMinute, err := domain.ParseClock(req.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_time, expected HH:MM"})
	}

	vendorID := c.Locals("user_id").(string)
	rule, err := h.service.Create(c.Context(), vendorID, ports.CreatePriceRuleInput{
		PoleID:        c.Params("id"),
		Name:          domain.PriceName(req.Name),
		Price:         req.Price,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		StartMinute:   startMinute,
		EndMinute:     endMinute,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

type UpdatePriceRuleRequest struct {
	Price         *float64 `json:"price"`
	EffectiveFrom *string  `json:"effective_from"`
	// EffectiveTo distinguishes absent (keep), null (clear) and a date.
	// It must be a value field: encoding/json sets a pointer field to nil
	// on null without calling UnmarshalJSON, which would make null
	// indistinguishable from absent.
	EffectiveTo ClearableDate `json:"effective_to"`
	StartTime   *string       `json:"start_time"`
	EndTime     *string       `json:"end_time"`
}

// ClearableDate unmarshals either null or "YYYY-MM-DD". Set records
// whether the key appeared in the request body at all.
type ClearableDate struct {
	Set   bool
	Value *time.Time
}

func (d *ClearableDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	if string(data) == "null" {
		d.Value = nil
		return nil
	}
	parsed, err := time.Parse(`"2006-01-02"`, string(data))
	if err != nil {
		return err
	}
	d.Value = &parsed
	return nil
}

func (h *PriceHandler) Update(c *fiber.Ctx) error {
	var req UpdatePriceRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	in := ports.UpdatePriceRuleInput{
		Price: req.Price,
	}
	if req.EffectiveFrom != nil {
		parsed, err := time.Parse("2006-01-02", *req.EffectiveFrom)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid effective_from, expected YYYY-MM-DD"})
		}
		in.EffectiveFrom = &parsed
	}
	if req.EffectiveTo.Set {
		in.EffectiveTo = &req.EffectiveTo.Value
	}
	if req.StartTime != nil {
		parsed, err := domain.ParseClock(*req.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_time, expected HH:MM"})
		}
		in.StartMinute = &parsed
	}
	if req.EndTime != nil {
		parsed, err := domain.ParseClock(*req.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_time, expected HH:MM"})
		}
		in.EndMinute = &parsed
	}

	vendorID := c.Locals("user_id").(string)
	rule, err := h.service.Update(c.Context(), vendorID, c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(rule)
}

func (h *PriceHandler) Delete(c *fiber.Ctx) error {
	vendorID := c.Locals("user_id").(string)
	if err := h.service.Delete(c.Context(), vendorID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PriceHandler) ListByPole(c *fiber.Ctx) error {
	rules, err := h.service.ListByPole(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(rules)
}
