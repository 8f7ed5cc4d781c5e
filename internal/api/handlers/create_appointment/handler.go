package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
//
// Статусы ответа:
// - 201 прием создан
// - 409 пересечение с существующим приемом (практик или пациент заняты)
// - 400 нарушение правил записи (рабочие часы, праздник, длительность...)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: patient_id=%d, error=%v",
				req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.IsValid {
		// Конфликт расписания - 409, прочие нарушения правил - 400
		status := http.StatusBadRequest
		if len(result.Conflicts) > 0 {
			status = http.StatusConflict
		}

		h.logger.Warn("POST /appointments - Candidate rejected: patient_id=%d, errors=%d, conflicts=%d",
			req.PatientID, len(result.Errors), len(result.Conflicts))
		handlers.RespondJSON(w, status, FromRejectedResponse(result))
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, patient_id=%d",
		result.Appointment.ID, req.PatientID)
	handlers.RespondJSON(w, http.StatusCreated, FromCreatedResponse(result))
}
