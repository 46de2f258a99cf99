package http

import (
	"encoding/json"
	"net/http"

	"github.com/absensia/absensi-backend-go/internal/domain/punch"
	"github.com/absensia/absensi-backend-go/internal/domain/report"
	"github.com/absensia/absensi-backend-go/internal/handler/http/response"
)

type AdminHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	punchService  punch.Service
	reportService report.Service
}

func NewAdminHandler(punchService punch.Service, reportService report.Service) AdminHandler {
	return &adminHandlerImpl{
		punchService:  punchService,
		reportService: reportService,
	}
}

// Today implements AdminHandler.
func (h *adminHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	recap, err := h.reportService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, recap)
}

// Update implements AdminHandler.
func (h *adminHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req punch.AdminUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.punchService.AdminUpdate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", punch.MapPunchToResponse(updated))
}
