package handler

import (
	"context"
	"strconv"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AttendanceService interface {
	Record(ctx context.Context, ev usecase.AttendanceEvent) (*usecase.MarkResult, error)
	LastMark(ctx context.Context, dni string) (*usecase.LastMark, error)
	List(ctx context.Context, filter repository.MarkFilter) ([]model.AttendanceMark, int64, error)
	Recap(ctx context.Context, orgID uint, date string) (string, []repository.RecapRow, error)
}

type AttendanceHandler struct {
	svc AttendanceService
}

func NewAttendanceHandler(svc AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// Record handles a badge scan from a field device.
func (h *AttendanceHandler) Record(c *fiber.Ctx) error {
	var ev usecase.AttendanceEvent
	if err := c.BodyParser(&ev); err != nil {
		return invalid(c, "Datos inválidos")
	}

	result, err := h.svc.Record(c.UserContext(), ev)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Marcación registrada", "data": result})
}

func (h *AttendanceHandler) Last(c *fiber.Ctx) error {
	last, err := h.svc.LastMark(c.UserContext(), c.Params("dni"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(last)
}

func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	filter := repository.MarkFilter{
		OrganizationID: middleware.OrganizationID(c),
		DNI:            c.Query("dni"),
		From:           c.Query("from"),
		To:             c.Query("to"),
		Limit:          limit,
		Offset:         offset,
	}

	marks, total, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": marks, "total": total})
}

func (h *AttendanceHandler) Recap(c *fiber.Ctx) error {
	day, rows, err := h.svc.Recap(c.UserContext(), middleware.OrganizationID(c), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"date": day, "data": rows})
}
