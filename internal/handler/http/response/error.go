package response

import (
	"errors"
	"net/http"

	"github.com/absensia/absensi-backend-go/internal/domain/employee"
	"github.com/absensia/absensi-backend-go/internal/domain/punch"
	"github.com/absensia/absensi-backend-go/internal/pkg/facematch"
	"github.com/absensia/absensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Face service errors pass the upstream diagnostic through
	var upstreamErr *facematch.UpstreamError
	if errors.As(err, &upstreamErr) {
		BadGateway(w, upstreamErr.Message)
		return
	}

	switch {
	// Punch domain errors
	case errors.Is(err, punch.ErrUnknownFace):
		NotFound(w, "Face not recognized")
	case errors.Is(err, punch.ErrNotCheckedIn):
		Conflict(w, "No check-in recorded for today")
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Attendance row not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
