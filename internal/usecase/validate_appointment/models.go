package validate_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// Request модель запроса на валидацию приема
type Request struct {
	PatientID       int64                // ID пациента
	PractitionerID  int64                // ID врача
	ClinicID        int64                // ID клиники
	Date            time.Time            // Дата приема (без времени)
	StartTime       types.TimeString     // Время начала (например, "10:00")
	EndTime         types.TimeString     // Время окончания (например, "11:00")
	DurationMinutes int                  // Заявленная длительность в минутах
	ProcedureType   domain.ProcedureType // Тип процедуры

	// ExcludeAppointmentID исключает прием из проверки пересечений
	// (используется при переносе существующего приема)
	ExcludeAppointmentID int64
}

// Response результат валидации: все нарушения собраны вместе,
// предупреждения не влияют на итоговый вердикт
type Response struct {
	IsValid   bool                     `json:"is_valid"`
	Errors    []domain.ValidationError `json:"errors"`
	Warnings  []string                 `json:"warnings"`
	Conflicts []domain.Conflict        `json:"conflicts,omitempty"`
}

// toResponse конвертирует результат валидации в response
func toResponse(result *domain.ValidationResult) *Response {
	return &Response{
		IsValid:   result.IsValid(),
		Errors:    result.Errors,
		Warnings:  result.Warnings,
		Conflicts: result.Conflicts,
	}
}
