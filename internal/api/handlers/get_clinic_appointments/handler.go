package get_clinic_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	appointmentsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/appointments"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/appointments/models"
)

const (
	msgInvalidClinicID = "некорректный ID клиники"
	msgStaffOnly       = "операция доступна только персоналу клиники"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/clinics/{clinicId}/appointments
//
// Query параметры (все опциональные):
// - practitionerId: фильтр по врачу
// - patientId: фильтр по пациенту
// - startDate, endDate: период YYYY-MM-DD (одинаковые даты = один день)
// - status: фильтр по статусу
// - includeInactive=true: включить отмененные приемы и неявки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicID, err := strconv.ParseInt(vars["clinicId"], 10, 64)
	if err != nil || clinicID <= 0 {
		h.logger.Warn("GET /clinics/{id}/appointments - Invalid clinic ID: %s", vars["clinicId"])
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /clinics/{id}/appointments - Staff-only operation: clinic_id=%d", clinicID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	req, err := parseFilter(r, clinicID)
	if err != nil {
		h.logger.Warn("GET /clinics/{id}/appointments - Invalid filter: clinic_id=%d, error=%v", clinicID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetClinicAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /clinics/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /clinics/{id}/appointments - Failed to get appointments: clinic_id=%d, error=%v",
				clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinics/{id}/appointments - Fetched %d appointments: clinic_id=%d",
		len(result.Appointments), clinicID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseFilter разбирает query параметры в запрос сервиса
func parseFilter(r *http.Request, clinicID int64) (*models.GetClinicAppointmentsRequest, error) {
	query := r.URL.Query()

	req := &models.GetClinicAppointmentsRequest{
		ClinicID:        clinicID,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if raw := query.Get("practitionerId"); raw != "" {
		practitionerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.PractitionerID = &practitionerID
	}

	if raw := query.Get("patientId"); raw != "" {
		patientID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.PatientID = &patientID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
