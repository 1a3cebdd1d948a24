package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type LoginResult struct {
	Token        string              `json:"token"`
	ExpiresAt    time.Time           `json:"expires_at"`
	User         *model.WebUser      `json:"user"`
	Organization *model.Organization `json:"organization"`
}

type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthUsecase handles the web panel accounts.
type AuthUsecase struct {
	store  repository.Store
	clock  Clock
	secret []byte
	ttl    time.Duration
	cost   int
}

func NewAuthUsecase(store repository.Store, clock Clock, secret []byte, ttl time.Duration) *AuthUsecase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthUsecase{store: store, clock: clock, secret: secret, ttl: ttl, cost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func (u *AuthUsecase) WithBcryptCost(cost int) *AuthUsecase {
	u.cost = cost
	return u
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *AuthUsecase) Login(ctx context.Context, code, email, password string) (*LoginResult, error) {
	if cleanText(code) == "" || normalizeEmail(email) == "" || password == "" {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "datos incompletos")
	}

	// 1. Organization by access code
	org, err := u.store.Organizations().GetActiveByCode(ctx, cleanText(code))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(apperror.CodeUnknownOrg, "municipalidad no encontrada")
	}
	if err != nil {
		return nil, apperror.FromDB("no se pudo validar la municipalidad", err)
	}

	// 2. Active user of that organization
	user, err := u.store.Users().FindActiveByEmail(ctx, org.ID, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Reject(apperror.CodeBadCredentials, "credenciales incorrectas")
	}
	if err != nil {
		return nil, apperror.FromDB("no se pudo leer el usuario", err)
	}

	// 3. Password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Reject(apperror.CodeBadCredentials, "credenciales incorrectas")
	}

	// 4. Token
	now := u.clock.Now()
	expires := now.Add(u.ttl)
	claims := jwt.MapClaims{
		"jti":             uuid.NewString(),
		"user_id":         user.ID,
		"organization_id": org.ID,
		"role":            user.Role,
		"email":           user.Email,
		"iat":             now.Unix(),
		"exp":             expires.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expires, User: user, Organization: org}, nil
}

func (u *AuthUsecase) CreateUser(ctx context.Context, orgID uint, in UserInput) (*model.WebUser, error) {
	in.Name = cleanText(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	switch {
	case in.Name == "" || in.Email == "" || in.Password == "":
		return nil, apperror.Validation(apperror.CodeInvalidInput, "datos incompletos")
	case !strings.Contains(in.Email, "@"):
		return nil, apperror.Validation(apperror.CodeInvalidInput, "correo inválido")
	case in.Role != model.RoleAdmin && in.Role != model.RoleSupervisor:
		return nil, apperror.Validation(apperror.CodeInvalidInput, "rol debe ser ADMIN o SUPERVISOR")
	case len(in.Password) < minPasswordLength:
		return nil, apperror.Validation(apperror.CodeInvalidInput, "la contraseña debe tener al menos 6 caracteres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, err
	}
	user := &model.WebUser{
		OrganizationID: orgID,
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Role:           in.Role,
		Active:         true,
	}
	if err := u.store.Users().Create(ctx, user); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, apperror.Conflict(apperror.CodeEmailTaken, "correo ya registrado", err)
		}
		return nil, apperror.FromDB("no se pudo crear el usuario", err)
	}
	return user, nil
}

func (u *AuthUsecase) ListUsers(ctx context.Context, orgID uint, role string) ([]model.WebUser, error) {
	users, err := u.store.Users().List(ctx, orgID, strings.ToUpper(strings.TrimSpace(role)))
	if err != nil {
		return nil, apperror.FromDB("no se pudo listar los usuarios", err)
	}
	return users, nil
}

func (u *AuthUsecase) DeactivateUser(ctx context.Context, orgID, id uint) error {
	err := u.store.Users().Deactivate(ctx, orgID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(apperror.CodeUnknownUser, "usuario no encontrado")
	}
	return apperror.FromDB("no se pudo desactivar el usuario", err)
}

// ChangePassword resets the password of a supervisor account belonging to
// the caller's organization. Admin passwords cannot be changed this way.
func (u *AuthUsecase) ChangePassword(ctx context.Context, orgID, id uint, password string) error {
	if len(password) < minPasswordLength {
		return apperror.Validation(apperror.CodeInvalidInput, "la contraseña debe tener al menos 6 caracteres")
	}
	user, err := u.store.Users().GetActiveByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(apperror.CodeUnknownUser, "usuario no encontrado")
	}
	if err != nil {
		return apperror.FromDB("no se pudo leer el usuario", err)
	}
	if user.OrganizationID != orgID {
		return apperror.Reject(apperror.CodeForbidden, "no autorizado")
	}
	if user.Role != model.RoleSupervisor {
		return apperror.Reject(apperror.CodeForbidden, "solo supervisores")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return err
	}
	return apperror.FromDB("no se pudo cambiar la contraseña", u.store.Users().UpdatePassword(ctx, id, string(hash)))
}
