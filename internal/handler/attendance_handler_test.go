package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendance struct {
	recorded   []usecase.AttendanceEvent
	recordErr  error
	lastFilter repository.MarkFilter
}

func (f *fakeAttendance) Record(_ context.Context, ev usecase.AttendanceEvent) (*usecase.MarkResult, error) {
	f.recorded = append(f.recorded, ev)
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	sector := "Zone A"
	return &usecase.MarkResult{
		MarkID:    1,
		ShiftCode: "morning",
		Sector:    &sector,
		CreatedAt: time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
		Date:      "2026-03-02",
		Time:      "08:00:00",
	}, nil
}

func (f *fakeAttendance) LastMark(_ context.Context, dni string) (*usecase.LastMark, error) {
	if dni == "00000000" {
		return &usecase.LastMark{}, nil
	}
	return &usecase.LastMark{Exists: true, Date: "2026-03-02", Time: "08:00:00"}, nil
}

func (f *fakeAttendance) List(_ context.Context, filter repository.MarkFilter) ([]model.AttendanceMark, int64, error) {
	f.lastFilter = filter
	return []model.AttendanceMark{{ID: 1, PersonDNI: "12345678"}}, 1, nil
}

func (f *fakeAttendance) Recap(_ context.Context, _ uint, date string) (string, []repository.RecapRow, error) {
	if date == "bad" {
		return "", nil, apperror.Validation(apperror.CodeInvalidInput, "fecha inválida")
	}
	return "2026-03-02", []repository.RecapRow{{ShiftCode: "morning", Department: "Serenazgo", Count: 3}}, nil
}

func newAttendanceApp(svc AttendanceService) *fiber.App {
	h := NewAttendanceHandler(svc)
	app := fiber.New()
	app.Post("/marks", h.Record)
	app.Get("/last/:dni", h.Last)
	app.Get("/marks", asCaller(1, 9), h.List)
	app.Get("/recap", asCaller(1, 9), h.Recap)
	return app
}

func TestAttendanceHandler_Record(t *testing.T) {
	svc := &fakeAttendance{}
	app := newAttendanceApp(svc)

	resp, raw := call(t, app, http.MethodPost, "/marks", map[string]interface{}{
		"organization_id": 1, "dni": "12345678", "name": "Ana", "lat": -12.046, "lng": -77.029,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := decode(t, raw)["data"].(map[string]interface{})
	assert.Equal(t, "morning", data["shift"])
	assert.Equal(t, "Zone A", data["sector"])
	require.Len(t, svc.recorded, 1)
	assert.Equal(t, uint(1), svc.recorded[0].OrganizationID)
	assert.Equal(t, -77.029, svc.recorded[0].Lng)

	svc.recordErr = apperror.TooSoon(120)
	resp, raw = call(t, app, http.MethodPost, "/marks", map[string]interface{}{"organization_id": 1, "dni": "12345678"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "120", resp.Header.Get("Retry-After"))
	assert.Equal(t, apperror.CodeTooSoon, decode(t, raw)["code"])

	resp, _ = call(t, app, http.MethodPost, "/marks", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAttendanceHandler_Queries(t *testing.T) {
	svc := &fakeAttendance{}
	app := newAttendanceApp(svc)

	_, raw := call(t, app, http.MethodGet, "/last/12345678", nil)
	assert.Equal(t, map[string]interface{}{"exists": true, "date": "2026-03-02", "time": "08:00:00"}, decode(t, raw))
	_, raw = call(t, app, http.MethodGet, "/last/00000000", nil)
	assert.Equal(t, map[string]interface{}{"exists": false}, decode(t, raw))

	resp, raw := call(t, app, http.MethodGet, "/marks?from=2026-03-01&to=2026-03-02&limit=10&offset=20&dni=123", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decode(t, raw)["total"])
	assert.Equal(t, repository.MarkFilter{OrganizationID: 1, DNI: "123", From: "2026-03-01", To: "2026-03-02", Limit: 10, Offset: 20}, svc.lastFilter)

	_, raw = call(t, app, http.MethodGet, "/recap", nil)
	assert.Equal(t, "2026-03-02", decode(t, raw)["date"])
	resp, _ = call(t, app, http.MethodGet, "/recap?date=bad", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
