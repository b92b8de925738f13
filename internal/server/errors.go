package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	anamnesisdomain "github.com/TwinexTecnologia/bodybrothers/internal/anamnesis/domain"
	authdomain "github.com/TwinexTecnologia/bodybrothers/internal/auth/domain"
	dietdomain "github.com/TwinexTecnologia/bodybrothers/internal/diet/domain"
	financedomain "github.com/TwinexTecnologia/bodybrothers/internal/finance/domain"
	paymentdomain "github.com/TwinexTecnologia/bodybrothers/internal/payment/domain"
	plandomain "github.com/TwinexTecnologia/bodybrothers/internal/plan/domain"
	studentdomain "github.com/TwinexTecnologia/bodybrothers/internal/student/domain"
	workoutdomain "github.com/TwinexTecnologia/bodybrothers/internal/workout/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, studentdomain.ErrStudentOverdue):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "student has overdue charges on the current plan",
		}
	case errors.Is(err, studentdomain.ErrEmailTaken):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isPlanValidationError(err),
		isStudentValidationError(err),
		isPaymentValidationError(err),
		isProtocolValidationError(err),
		errors.Is(err, financedomain.ErrInvalidMonth):
		return true
	default:
		return false
	}
}

func isPlanValidationError(err error) bool {
	switch {
	case errors.Is(err, plandomain.ErrInvalidName),
		errors.Is(err, plandomain.ErrInvalidPrice),
		errors.Is(err, plandomain.ErrInvalidFrequency),
		errors.Is(err, plandomain.ErrInvalidDueDay):
		return true
	default:
		return false
	}
}

func isStudentValidationError(err error) bool {
	switch {
	case errors.Is(err, studentdomain.ErrInvalidName),
		errors.Is(err, studentdomain.ErrInvalidEmail),
		errors.Is(err, studentdomain.ErrInvalidBirthDate),
		errors.Is(err, studentdomain.ErrInvalidStartDate),
		errors.Is(err, studentdomain.ErrInvalidDueDay):
		return true
	default:
		return false
	}
}

func isPaymentValidationError(err error) bool {
	switch {
	case errors.Is(err, paymentdomain.ErrInvalidStudent),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidDueDate),
		errors.Is(err, paymentdomain.ErrInvalidMonthRef),
		errors.Is(err, paymentdomain.ErrMissingChargeRef),
		errors.Is(err, paymentdomain.ErrInvalidPageToken):
		return true
	default:
		return false
	}
}

func isProtocolValidationError(err error) bool {
	switch {
	case errors.Is(err, workoutdomain.ErrInvalidName),
		errors.Is(err, workoutdomain.ErrInvalidStudent),
		errors.Is(err, workoutdomain.ErrInvalidPeriod),
		errors.Is(err, dietdomain.ErrInvalidName),
		errors.Is(err, dietdomain.ErrInvalidStudent),
		errors.Is(err, dietdomain.ErrInvalidPeriod),
		errors.Is(err, anamnesisdomain.ErrInvalidName),
		errors.Is(err, anamnesisdomain.ErrInvalidStudent):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, plandomain.ErrNotFound),
		errors.Is(err, studentdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, workoutdomain.ErrNotFound),
		errors.Is(err, dietdomain.ErrNotFound),
		errors.Is(err, anamnesisdomain.ErrModelNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
