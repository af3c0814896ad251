package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type VehicleHandler struct {
	service ports.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service ports.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log,
	}
}

type VehicleRequest struct {
	Plate              string  `json:"plate"`
	Brand              string  `json:"brand"`
	Model              string  `json:"model"`
	BatteryCapacityKwh float64 `json:"battery_capacity_kwh"`
}

func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var req VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	customerID := c.Locals("user_id").(string)
	vehicle, err := h.service.Create(c.Context(), customerID, &domain.Vehicle{
		Plate:              req.Plate,
		Brand:              req.Brand,
		Model:              req.Model,
		BatteryCapacityKwh: req.BatteryCapacityKwh,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	vehicle, err := h.service.Get(c.Context(), customerID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(vehicle)
}

func (h *VehicleHandler) List(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	vehicles, err := h.service.ListByCustomer(c.Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(vehicles)
}

func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	var req VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	customerID := c.Locals("user_id").(string)
	vehicle, err := h.service.Update(c.Context(), customerID, &domain.Vehicle{
		ID:                 c.Params("id"),
		Plate:              req.Plate,
		Brand:              req.Brand,
		Model:              req.Model,
		BatteryCapacityKwh: req.BatteryCapacityKwh,
	})
	if err != nil {
		return err
	}
	return c.JSON(vehicle)
}

func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	if err := h.service.Delete(c.Context(), customerID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
