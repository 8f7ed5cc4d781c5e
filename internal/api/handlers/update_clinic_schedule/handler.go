package update_clinic_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	getSchedule "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_clinic_schedule"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	scheduleService "github.com/m04kA/SMC-ClinicScheduler/internal/service/schedule"
)

const (
	msgInvalidClinicID = "некорректный ID клиники"
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidSchedule = "некорректное расписание"
	msgStaffOnly       = "операция доступна только персоналу клиники"
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

// Handle PUT /api/v1/clinics/{clinicId}/schedule
//
// Только для персонала. Недельное расписание заменяется целиком,
// праздники из тела добавляются к уже настроенным.
// В ответе - актуальное расписание после обновления.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicID, err := strconv.ParseInt(vars["clinicId"], 10, 64)
	if err != nil || clinicID <= 0 {
		h.logger.Warn("PUT /clinics/{id}/schedule - Invalid clinic ID: %s", vars["clinicId"])
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("PUT /clinics/{id}/schedule - Staff-only operation: clinic_id=%d", clinicID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /clinics/{id}/schedule - Invalid request body: clinic_id=%d, error=%v", clinicID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	hours, err := req.ToDomainWorkingHours()
	if err != nil {
		h.logger.Warn("PUT /clinics/{id}/schedule - Invalid working hours: clinic_id=%d, error=%v", clinicID, err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)
		return
	}

	if err := h.service.UpdateWorkingHours(r.Context(), clinicID, hours); err != nil {
		h.respondServiceError(w, clinicID, err)
		return
	}

	for _, holiday := range req.ToDomainHolidays() {
		if err := h.service.AddHoliday(r.Context(), clinicID, holiday); err != nil {
			h.respondServiceError(w, clinicID, err)
			return
		}
	}

	weekly, holidays, err := h.service.GetWeeklySchedule(r.Context(), clinicID)
	if err != nil {
		h.logger.Error("PUT /clinics/{id}/schedule - Failed to read back schedule: clinic_id=%d, error=%v",
			clinicID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /clinics/{id}/schedule - Schedule updated: clinic_id=%d, days=%d, holidays_added=%d",
		clinicID, len(hours), len(req.Holidays))
	handlers.RespondJSON(w, http.StatusOK, getSchedule.FromDomain(clinicID, weekly, holidays))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, clinicID int64, err error) {
	switch {
	case errors.Is(err, scheduleService.ErrInvalidSchedule),
		errors.Is(err, scheduleService.ErrInvalidHoliday),
		errors.Is(err, scheduleService.ErrInvalidInput):
		h.logger.Warn("PUT /clinics/{id}/schedule - Validation failed: clinic_id=%d, error=%v", clinicID, err)
		handlers.RespondBadRequest(w, msgInvalidSchedule)

	default:
		h.logger.Error("PUT /clinics/{id}/schedule - Failed to update schedule: clinic_id=%d, error=%v",
			clinicID, err)
		handlers.RespondInternalError(w)
	}
}
