package handler

import (
	"context"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type GeofenceService interface {
	List(ctx context.Context, orgID uint) ([]model.Geofence, error)
	Create(ctx context.Context, orgID uint, in usecase.GeofenceInput) (*model.Geofence, error)
	Update(ctx context.Context, orgID, id uint, in usecase.GeofenceInput) (*model.Geofence, error)
	Deactivate(ctx context.Context, orgID, id uint) error
}

type GeofenceHandler struct {
	svc GeofenceService
}

func NewGeofenceHandler(svc GeofenceService) *GeofenceHandler {
	return &GeofenceHandler{svc: svc}
}

func (h *GeofenceHandler) GetAll(c *fiber.Ctx) error {
	geofences, err := h.svc.List(c.UserContext(), middleware.OrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": geofences})
}

func (h *GeofenceHandler) Create(c *fiber.Ctx) error {
	var in usecase.GeofenceInput
	if err := c.BodyParser(&in); err != nil {
		return invalid(c, "Datos inválidos")
	}

	geofence, err := h.svc.Create(c.UserContext(), middleware.OrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Geocerca creada", "data": geofence})
}

func (h *GeofenceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in usecase.GeofenceInput
	if err := c.BodyParser(&in); err != nil {
		return invalid(c, "Datos inválidos")
	}

	geofence, err := h.svc.Update(c.UserContext(), middleware.OrganizationID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Geocerca actualizada", "data": geofence})
}

func (h *GeofenceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Deactivate(c.UserContext(), middleware.OrganizationID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Geocerca desactivada"})
}
