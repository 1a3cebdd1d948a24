package handler

import (
	"context"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ShiftService interface {
	CurrentShift(ctx context.Context, orgID uint, at time.Time) (*model.Shift, error)
	List(ctx context.Context, orgID uint) ([]model.Shift, error)
	Create(ctx context.Context, orgID uint, in usecase.ShiftInput) (*model.Shift, error)
	Update(ctx context.Context, orgID, id uint, in usecase.ShiftInput) (*model.Shift, error)
	Delete(ctx context.Context, orgID, id uint) error
}

type ShiftHandler struct {
	svc ShiftService
}

func NewShiftHandler(svc ShiftService) *ShiftHandler {
	return &ShiftHandler{svc: svc}
}

// Current answers which shift is in force for ?organization_id=, now or at
// the RFC 3339 instant given in ?at=.
func (h *ShiftHandler) Current(c *fiber.Ctx) error {
	orgID, err := queryUint(c, "organization_id")
	if err != nil {
		return writeError(c, err)
	}
	if orgID == 0 {
		return invalid(c, "organization_id es requerido")
	}
	var at time.Time
	if raw := c.Query("at"); raw != "" {
		if at, err = time.Parse(time.RFC3339, raw); err != nil {
			return writeError(c, apperror.Validation(apperror.CodeInvalidInput, "at inválido, use RFC 3339"))
		}
	}

	shift, err := h.svc.CurrentShift(c.UserContext(), orgID, at)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"active": shift != nil, "data": shift})
}

func (h *ShiftHandler) GetAll(c *fiber.Ctx) error {
	shifts, err := h.svc.List(c.UserContext(), middleware.OrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": shifts})
}

func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var in usecase.ShiftInput
	if err := c.BodyParser(&in); err != nil {
		return invalid(c, "Datos inválidos")
	}

	shift, err := h.svc.Create(c.UserContext(), middleware.OrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Turno creado", "data": shift})
}

func (h *ShiftHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in usecase.ShiftInput
	if err := c.BodyParser(&in); err != nil {
		return invalid(c, "Datos inválidos")
	}

	shift, err := h.svc.Update(c.UserContext(), middleware.OrganizationID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Turno actualizado", "data": shift})
}

func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Delete(c.UserContext(), middleware.OrganizationID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Turno eliminado"})
}
