package validate_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/practitionerservice"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// AppointmentRepository интерфейс репозитория приемов
type AppointmentRepository interface {
	GetOverlapCandidates(ctx context.Context, practitionerID, patientID int64, date time.Time) ([]*domain.Appointment, error)
}

// ScheduleService интерфейс календаря рабочих часов и праздников
type ScheduleService interface {
	ValidateWorkingHours(ctx context.Context, clinicID int64, date time.Time, startTime, endTime types.TimeString) *domain.ValidationResult
	CheckHoliday(ctx context.Context, clinicID int64, date time.Time) *domain.ValidationResult
}

// DurationPolicy интерфейс политики длительностей процедур
type DurationPolicy interface {
	Validate(procedureType domain.ProcedureType, durationMinutes int) *domain.ValidationResult
}

// ConflictDetector интерфейс детектора пересечений
type ConflictDetector interface {
	FindConflicts(candidate conflicts.Candidate, existing []*domain.Appointment) []domain.Conflict
}

// PractitionerServiceClient интерфейс клиента справочника врачей
type PractitionerServiceClient interface {
	GetPractitioner(ctx context.Context, practitionerID int64) (*practitionerservice.Practitioner, error)
	GetDayOverride(ctx context.Context, practitionerID int64, date string) (*practitionerservice.DayOverride, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
