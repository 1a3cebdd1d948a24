package handler

import (
	"context"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"
)

type PatrolService interface {
	RecordPing(ctx context.Context, ev usecase.PingEvent) (*usecase.PingResult, error)
	ActiveSupervisors(ctx context.Context, orgID uint, status usecase.SupervisorStatus) ([]usecase.SupervisorSnapshot, error)
	SupervisorTrack(ctx context.Context, orgID uint, dni, day string) (*usecase.Track, error)
}

type PatrolHandler struct {
	svc PatrolService
}

func NewPatrolHandler(svc PatrolService) *PatrolHandler {
	return &PatrolHandler{svc: svc}
}

func (h *PatrolHandler) Ping(c *fiber.Ctx) error {
	var ev usecase.PingEvent
	if err := c.BodyParser(&ev); err != nil {
		return invalid(c, "Datos inválidos")
	}

	result, err := h.svc.RecordPing(c.UserContext(), ev)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": result})
}

// Supervisors lists the last position of each supervisor, filtered by
// ?status=active|stale|all (default active).
func (h *PatrolHandler) Supervisors(c *fiber.Ctx) error {
	status, err := usecase.ParseSupervisorStatus(c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}

	snapshots, err := h.svc.ActiveSupervisors(c.UserContext(), middleware.OrganizationID(c), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": snapshots, "total": len(snapshots)})
}

func (h *PatrolHandler) Track(c *fiber.Ctx) error {
	track, err := h.svc.SupervisorTrack(c.UserContext(), middleware.OrganizationID(c), c.Params("dni"), c.Query("day"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": track})
}

// TrackGeoJSON exports the same track as a FeatureCollection holding one
// LineString feature.
func (h *PatrolHandler) TrackGeoJSON(c *fiber.Ctx) error {
	track, err := h.svc.SupervisorTrack(c.UserContext(), middleware.OrganizationID(c), c.Params("dni"), c.Query("day"))
	if err != nil {
		return writeError(c, err)
	}

	feature := geojson.NewFeature(track.LineString())
	feature.Properties["dni"] = track.DNI
	feature.Properties["name"] = track.Name
	feature.Properties["day"] = track.Day
	times := make([]string, 0, len(track.Points))
	for _, p := range track.Points {
		times = append(times, p.At.UTC().Format(time.RFC3339))
	}
	feature.Properties["times"] = times

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	body, err := fc.MarshalJSON()
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(body)
}
