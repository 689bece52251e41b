package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/alimgiray/kickfarter/internal/models"
	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	errUnauthenticated = errors.New("authentication required")
	errInvalidBody     = errors.New("the request body is invalid")
)

// APIError is the body of every error response
type APIError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a field-level validation error
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func init() {
	// report json field names in validation errors
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON decodes and validates the request body, writing an error response
// when it fails
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			respondError(c, validationErrs)
		} else {
			respondError(c, errInvalidBody)
		}
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	status, apiErr := mapError(err)
	if status >= http.StatusInternalServerError {
		c.Error(err)
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apiErr})
}

func mapError(err error) (int, APIError) {
	var backingErr *models.BackingError
	if errors.As(err, &backingErr) {
		status := http.StatusUnprocessableEntity
		if backingErr.Kind == models.BackingKindDuplicate {
			status = http.StatusConflict
		}
		return status, APIError{Code: string(backingErr.Kind), Message: backingErr.Message}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, FieldError{Field: fe.Field(), Message: describeTag(fe)})
		}
		return http.StatusBadRequest, APIError{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: details,
		}
	}

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, APIError{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: []FieldError{{Field: validationErr.Field, Message: validationErr.Message}},
		}
	}

	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, APIError{Code: "invalid_input", Message: "The request body is invalid"}
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized, APIError{Code: "unauthorized", Message: "Authentication required"}
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, APIError{Code: "invalid_credentials", Message: "Invalid email or password"}
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, APIError{Code: "forbidden", Message: "You do not have permission to perform this action"}
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "The requested resource was not found"}
	case errors.Is(err, models.ErrEmailTaken):
		return http.StatusConflict, APIError{Code: "email_taken", Message: "This email is already registered"}
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict, APIError{Code: "invalid_transition", Message: err.Error()}
	default:
		return http.StatusInternalServerError, APIError{Code: "internal_error", Message: "An unexpected error occurred"}
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "max":
		return "Ensure this value has at most " + fe.Param() + " characters"
	case "oneof":
		return "Select one of: " + fe.Param()
	case "uuid":
		return "Enter a valid identifier"
	default:
		return "Invalid value"
	}
}
