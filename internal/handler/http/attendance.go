package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/absensia/absensi-backend-go/internal/domain/punch"
	"github.com/absensia/absensi-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	FaceVerify(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.Service
}

func NewPunchHandler(punchService punch.Service) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

type punchResult struct {
	Result     string              `json:"result"`
	Phase      string              `json:"phase"`
	Attendance punch.PunchResponse `json:"attendance"`
}

// Record implements PunchHandler. The device pipeline posts here after it
// has already identified the face, so the phase is stated explicitly.
func (h *punchHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req punch.PunchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PhaseRequired = true

	outcome, err := h.punchService.RecordPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeOutcome(w, outcome)
}

// FaceVerify implements PunchHandler.
func (h *punchHandlerImpl) FaceVerify(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'image' is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	phase := strings.ToUpper(strings.TrimSpace(r.FormValue("type")))
	if phase != "" && phase != punch.PhaseIn && phase != punch.PhaseOut {
		response.BadRequest(w, "Field 'type' must be IN or OUT when provided", nil)
		return
	}

	req := punch.FaceVerifyRequest{
		Image:       file,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Phase:       phase,
	}

	outcome, err := h.punchService.VerifyFace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeOutcome(w, outcome)
}

func (h *punchHandlerImpl) writeOutcome(w http.ResponseWriter, outcome punch.Outcome) {
	result := punchResult{
		Result:     outcome.Status,
		Phase:      outcome.Phase,
		Attendance: punch.MapPunchToResponse(outcome.Punch),
	}

	if outcome.Status == punch.OutcomeAlready {
		response.SuccessWithMessage(w, outcome.Message, result)
		return
	}

	response.Created(w, outcome.Message, result)
}
