package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/campus-placement-api/internal/application/dto"
	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/pkg/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar los campos con su nombre JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldError error de validación con la lista de campos inválidos.
type fieldError struct {
	fields []string
}

func (e *fieldError) Error() string {
	return "campos inválidos: " + strings.Join(e.fields, ", ")
}

func (e *fieldError) Unwrap() error { return domain.ErrValidation }

// bind parsea el cuerpo JSON y valida los tags `validate`.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &fieldError{fields: []string{"body"}}
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fe := &fieldError{}
			for _, v := range verrs {
				fe.fields = append(fe.fields, v.Field())
			}
			return fe
		}
		return err
	}
	return nil
}

// NewErrorHandler traduce los errores de dominio a códigos HTTP y dto.ErrorResponse.
// Los errores no tipados se registran y se responden como 500 sin detalle.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx, err error) error {
		status, code := statusFor(err)
		body := dto.ErrorResponse{Code: code, Message: err.Error()}

		var fe *fieldError
		if errors.As(err, &fe) {
			body.Fields = fe.fields
		}
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			status, body.Message = ferr.Code, ferr.Message
		}
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
			body.Message = "error interno"
		}
		return c.Status(status).JSON(body)
	}
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusBadRequest, "INVALID_STATE"
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code, strings.ToUpper(strings.ReplaceAll(fiber.NewError(ferr.Code).Message, " ", "_"))
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}
