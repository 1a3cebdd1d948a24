package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/lock"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/testutil"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/gofiber/fiber/v2"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var secret = []byte("routes-secret")

type env struct {
	app   *fiber.App
	clock *testutil.Clock
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	clock := testutil.NewClock(testutil.Lima, 2026, time.March, 2, 8, 0, 0)
	log, _ := logtest.NewNullLogger()

	org := model.Organization{Code: "MUNI01", Name: "Municipalidad de Prueba", Active: true}
	require.NoError(t, db.Create(&org).Error)
	require.NoError(t, db.Create(&model.Shift{OrganizationID: org.ID, Code: "morning", StartTime: "06:00", EndTime: "14:00", Active: true}).Error)

	auth := usecase.NewAuthUsecase(store, clock, secret, time.Hour).WithBcryptCost(bcrypt.MinCost)
	_, err := auth.CreateUser(t.Context(), org.ID, usecase.UserInput{Name: "Admin", Email: "admin@muni.pe", Password: "secreto1", Role: model.RoleAdmin})
	require.NoError(t, err)

	app := fiber.New()
	Setup(app, Deps{
		Attendance:     usecase.NewAttendanceUsecase(store, clock, lock.NewKeyed(), usecase.DebounceGuard{}, log),
		Patrol:         usecase.NewPatrolUsecase(store, clock, 0, log),
		Shifts:         usecase.NewShiftUsecase(store, clock),
		Geofences:      usecase.NewGeofenceUsecase(store),
		Organizations:  usecase.NewOrganizationUsecase(store, clock, 0),
		Auth:           auth,
		DB:             store,
		JWTSecret:      secret,
		Now:            clock.Now,
		RequestTimeout: 5 * time.Second,
	})
	return &env{app: app, clock: clock}
}

func (e *env) do(t *testing.T, method, target, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (e *env) login(t *testing.T) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/web/login", "", map[string]string{"code": "MUNI01", "email": "admin@muni.pe", "password": "secreto1"})
	require.Equal(t, http.StatusOK, status)
	return body["data"].(map[string]interface{})["token"].(string)
}

func TestDeviceFlow(t *testing.T) {
	e := newEnv(t)

	status, body := e.do(t, http.MethodPost, "/api/organizations/validate", "", map[string]string{"code": "MUNI01"})
	require.Equal(t, http.StatusOK, status)
	orgID := body["data"].(map[string]interface{})["id"]

	status, body = e.do(t, http.MethodGet, "/api/shifts/current?organization_id=1", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["active"])

	scan := map[string]interface{}{"organization_id": orgID, "dni": "12345678", "name": "Ana Quispe", "lat": -12.046, "lng": -77.029}
	status, body = e.do(t, http.MethodPost, "/api/attendance/marks", "", scan)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "morning", body["data"].(map[string]interface{})["shift"])

	e.clock.Advance(time.Minute)
	status, body = e.do(t, http.MethodPost, "/api/attendance/marks", "", scan)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, float64(120), body["retry_after"])

	status, body = e.do(t, http.MethodGet, "/api/attendance/last/12345678", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "08:00:00", body["time"])

	status, _ = e.do(t, http.MethodPost, "/api/supervisors", "", map[string]interface{}{"organization_id": 1, "dni": "87654321", "name": "Luis Rojas"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = e.do(t, http.MethodPost, "/api/patrol/pings", "", map[string]interface{}{"organization_id": 1, "supervisor_dni": "87654321", "lat": -12.05, "lng": -77.03})
	require.Equal(t, http.StatusCreated, status)
}

func TestPanelRequiresToken(t *testing.T) {
	e := newEnv(t)

	for _, target := range []string{"/api/attendance/marks", "/api/patrol/supervisors", "/api/shifts", "/api/geofences", "/api/web/users", "/api/dashboard"} {
		status, _ := e.do(t, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, target)
	}

	token := e.login(t)
	for _, target := range []string{"/api/attendance/marks", "/api/patrol/supervisors?status=all", "/api/shifts", "/api/geofences", "/api/web/users", "/api/dashboard", "/api/health"} {
		status, _ := e.do(t, http.MethodGet, target, token, nil)
		assert.Equal(t, http.StatusOK, status, target)
	}
}

func TestSupervisorAccountCannotAdminister(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	status, _ := e.do(t, http.MethodPost, "/api/web/users", token, map[string]string{"name": "Sup", "email": "sup@muni.pe", "password": "secreto1", "role": "SUPERVISOR"})
	require.Equal(t, http.StatusCreated, status)

	status, body := e.do(t, http.MethodPost, "/api/web/login", "", map[string]string{"code": "MUNI01", "email": "sup@muni.pe", "password": "secreto1"})
	require.Equal(t, http.StatusOK, status)
	supToken := body["data"].(map[string]interface{})["token"].(string)

	status, _ = e.do(t, http.MethodGet, "/api/patrol/supervisors", supToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = e.do(t, http.MethodPost, "/api/shifts", supToken, map[string]string{"code": "night", "start_time": "22:00", "end_time": "06:00"})
	assert.Equal(t, http.StatusForbidden, status)
}
