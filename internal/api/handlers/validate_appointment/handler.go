package validate_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	validateAppointment "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/validate_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ValidateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ValidateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/validate
//
// Всегда отвечает 200 с агрегированным результатом - отказ по правилам
// это содержимое ответа, а не HTTP ошибка.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments/validate - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/validate - Failed to validate: patient_id=%d, error=%v",
				req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/validate - Validated: patient_id=%d, is_valid=%t, errors=%d",
		req.PatientID, result.IsValid, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
