package handler

import (
	"context"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/middleware"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthService interface {
	Login(ctx context.Context, code, email, password string) (*usecase.LoginResult, error)
	CreateUser(ctx context.Context, orgID uint, in usecase.UserInput) (*model.WebUser, error)
	ListUsers(ctx context.Context, orgID uint, role string) ([]model.WebUser, error)
	DeactivateUser(ctx context.Context, orgID, id uint) error
	ChangePassword(ctx context.Context, orgID, id uint, password string) error
}

type UserHandler struct {
	svc AuthService
}

func NewUserHandler(svc AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Code     string `json:"code"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalid(c, "Datos inválidos")
	}

	res, err := h.svc.Login(c.UserContext(), input.Code, input.Email, input.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Login exitoso", "data": res})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in usecase.UserInput
	if err := c.BodyParser(&in); err != nil {
		return invalid(c, "Datos inválidos")
	}

	user, err := h.svc.CreateUser(c.UserContext(), middleware.OrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Usuario creado", "data": user})
}

// GetAll lists active users; ?role= narrows to ADMIN or SUPERVISOR.
func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.svc.ListUsers(c.UserContext(), middleware.OrganizationID(c), c.Query("role"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": users})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if id == middleware.UserID(c) {
		return invalid(c, "No puede desactivar su propia cuenta")
	}
	if err := h.svc.DeactivateUser(c.UserContext(), middleware.OrganizationID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Usuario desactivado"})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var input struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalid(c, "Datos inválidos")
	}

	if err := h.svc.ChangePassword(c.UserContext(), middleware.OrganizationID(c), id, input.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Contraseña actualizada"})
}
