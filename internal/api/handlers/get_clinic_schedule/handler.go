package get_clinic_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	scheduleService "github.com/m04kA/SMC-ClinicScheduler/internal/service/schedule"
)

const (
	msgInvalidClinicID = "некорректный ID клиники"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clinics/{clinicId}/schedule
//
// Публичный маршрут - расписание клиники видно всем.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicID, err := strconv.ParseInt(vars["clinicId"], 10, 64)
	if err != nil || clinicID <= 0 {
		h.logger.Warn("GET /clinics/{id}/schedule - Invalid clinic ID: %s", vars["clinicId"])
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	weekly, holidays, err := h.service.GetWeeklySchedule(r.Context(), clinicID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("GET /clinics/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClinicID)

		default:
			h.logger.Error("GET /clinics/{id}/schedule - Failed to get schedule: clinic_id=%d, error=%v",
				clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clinics/{id}/schedule - Schedule fetched: clinic_id=%d", clinicID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(clinicID, weekly, holidays))
}
