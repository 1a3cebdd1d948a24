package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps an apperror to its HTTP status.
func statusFor(e *apperror.Error) int {
	switch e.Kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindPersistence:
		return fiber.StatusServiceUnavailable
	case apperror.KindRejected:
		switch e.Code {
		case apperror.CodeTooSoon:
			return fiber.StatusTooManyRequests
		case apperror.CodeBadCredentials:
			return fiber.StatusUnauthorized
		case apperror.CodeForbidden:
			return fiber.StatusForbidden
		}
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	e, ok := apperror.As(err)
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			e = apperror.Persistence("tiempo de espera agotado", err)
		} else {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error interno del servidor"})
		}
	}

	body := fiber.Map{
		"error":     e.Message,
		"code":      e.Code,
		"retryable": e.Retryable(),
	}
	if e.RetryAfter > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(e.RetryAfter))
		body["retry_after"] = e.RetryAfter
	}
	return c.Status(statusFor(e)).JSON(body)
}

func invalid(c *fiber.Ctx, msg string) error {
	return writeError(c, apperror.Validation(apperror.CodeInvalidInput, msg))
}

// paramID parses a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation(apperror.CodeInvalidInput, name+" inválido")
	}
	return uint(id), nil
}

func queryUint(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation(apperror.CodeInvalidInput, name+" inválido")
	}
	return uint(v), nil
}
