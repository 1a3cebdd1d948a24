package handler

import (
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	svc OrganizationService
}

func NewDashboardHandler(svc OrganizationService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.svc.Dashboard(c.UserContext(), middleware.OrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Resumen del día",
		"data":    stats,
	})
}
