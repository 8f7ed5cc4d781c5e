package get_patient_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	appointmentsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/appointments"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/appointments/models"
)

const (
	msgInvalidPatientID = "некорректный ID пациента"
	msgUnauthorized     = "не удалось определить пользователя"
	msgAccessDenied     = "доступ запрещен"
	msgInvalidStatus    = "недопустимый статус приема"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patients/{patientId}/appointments?status=scheduled
//
// Пациент видит только свою историю, персонал - историю любого пациента.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseInt(vars["patientId"], 10, 64)
	if err != nil || patientID <= 0 {
		h.logger.Warn("GET /patients/{id}/appointments - Invalid patient ID: %s", vars["patientId"])
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /patients/{id}/appointments - Missing user ID in context")
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if requesterID != patientID && !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /patients/{id}/appointments - Access denied: patient_id=%d, requester=%d",
			patientID, requesterID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetPatientAppointmentsRequest{PatientID: patientID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetPatientAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /patients/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /patients/{id}/appointments - Failed to get appointments: patient_id=%d, error=%v",
				patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{id}/appointments - Fetched %d appointments: patient_id=%d",
		len(result.Appointments), patientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
