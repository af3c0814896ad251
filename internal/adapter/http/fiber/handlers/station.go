package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type StationHandler struct {
	service ports.StationService
	log     *zap.Logger
}

func NewStationHandler(service ports.StationService, log *zap.Logger) *StationHandler {
	return &StationHandler{
		service: service,
		log:     log,
	}
}

type CreateStationRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *StationHandler) Create(c *fiber.Ctx) error {
	var req CreateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	vendorID := c.Locals("user_id").(string)
	station, err := h.service.Create(c.Context(), vendorID, &domain.Station{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(station)
}

func (h *StationHandler) Get(c *fiber.Ctx) error {
	station, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if station == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Station not found"})
	}
	return c.JSON(station)
}

func (h *StationHandler) List(c *fiber.Ctx) error {
	vendorID := c.Locals("user_id").(string)
	stations, err := h.service.ListByVendor(c.Context(), vendorID)
	if err != nil {
		return err
	}
	return c.JSON(stations)
}

type UpdateStationRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    string  `json:"status"`
}

func (h *StationHandler) Update(c *fiber.Ctx) error {
	var req UpdateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	vendorID := c.Locals("user_id").(string)
	station, err := h.service.Update(c.Context(), vendorID, &domain.Station{
		ID:        c.Params("id"),
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    domain.StationStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(station)
}

func (h *StationHandler) Delete(c *fiber.Ctx) error {
	vendorID := c.Locals("user_id").(string)
	if err := h.service.Delete(c.Context(), vendorID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type CreatePoleRequest struct {
	Manufacturer string  `json:"manufacturer"`
	MaxPowerKW   float64 `json:"max_power_kw"`
	InstallDate  string  `json:"install_date"`
}

func (h *StationHandler) CreatePole(c *fiber.Ctx) error {
	var req CreatePoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	installDate := time.Now()
	if req.InstallDate != "" {
		parsed, err := time.Parse("2006-01-02", req.InstallDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid install_date, expected YYYY-MM-DD"})
		}
		installDate = parsed
	}

	vendorID := c.Locals("user_id").(string)
	pole, err := h.service.CreatePole(c.Context(), vendorID, &domain.Pole{
		StationID:    c.Params("id"),
		Manufacturer: req.Manufacturer,
		MaxPowerKW:   req.MaxPowerKW,
		InstallDate:  installDate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(pole)
}

func (h *StationHandler) GetPole(c *fiber.Ctx) error {
	pole, err := h.service.GetPole(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if pole == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pole not found"})
	}
	return c.JSON(pole)
}

func (h *StationHandler) ListPoles(c *fiber.Ctx) error {
	poles, err := h.service.ListPoles(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(poles)
}

func (h *StationHandler) DeletePole(c *fiber.Ctx) error {
	vendorID := c.Locals("user_id").(string)
	if err := h.service.DeletePole(c.Context(), vendorID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
