package handler

import (
	"context"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"github.com/gofiber/fiber/v2"
)

type OrganizationService interface {
	Validate(ctx context.Context, code string) (*model.Organization, error)
	Departments(ctx context.Context, orgID uint) ([]model.Department, error)
	RegisterSupervisor(ctx context.Context, orgID uint, dni, name string) (*model.Supervisor, bool, error)
	Supervisors(ctx context.Context, orgID uint) ([]model.Supervisor, error)
	Dashboard(ctx context.Context, orgID uint) (map[string]interface{}, error)
}

type OrganizationHandler struct {
	svc OrganizationService
}

func NewOrganizationHandler(svc OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

// Validate resolves the access code typed on a device into an organization.
func (h *OrganizationHandler) Validate(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "Datos inválidos")
	}

	org, err := h.svc.Validate(c.UserContext(), req.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": org.ID, "name": org.Name, "code": org.Code}})
}

func (h *OrganizationHandler) Departments(c *fiber.Ctx) error {
	orgID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	departments, err := h.svc.Departments(c.UserContext(), orgID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": departments})
}

func (h *OrganizationHandler) RegisterSupervisor(c *fiber.Ctx) error {
	var req struct {
		OrganizationID uint   `json:"organization_id"`
		DNI            string `json:"dni"`
		Name           string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, "Datos inválidos")
	}
	if req.OrganizationID == 0 {
		return invalid(c, "organization_id es requerido")
	}

	supervisor, created, err := h.svc.RegisterSupervisor(c.UserContext(), req.OrganizationID, req.DNI, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"created": created, "data": supervisor})
}

func (h *OrganizationHandler) Supervisors(c *fiber.Ctx) error {
	supervisors, err := h.svc.Supervisors(c.UserContext(), middleware.OrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": supervisors})
}
