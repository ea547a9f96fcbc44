package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmdelacruz/sis-backend/internal/app/models/dto"
	"github.com/jmdelacruz/sis-backend/internal/pkg/apperrors"
)

// HandleAPIError translates service errors into HTTP responses at the
// controller boundary. Nothing is retried here; unknown errors surface as a
// bare 500 with no internal detail.
func HandleAPIError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message:        "Missing required fields",
			RequiredFields: validationErr.RequiredFields,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email already in use"))
	case errors.Is(err, apperrors.ErrUserIDExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("User ID already exists"))
	case errors.Is(err, apperrors.ErrStudentIDExists):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Student profile already exists"))
	case errors.Is(err, apperrors.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Role must be one of admin, teacher or student"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Validation failed"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("User not found"))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Student profile not found"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid credentials"))
	case apperrors.Is(err, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid or expired token"))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal Server Error"))
	}
}
