package schedule

import (
	"context"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний клиник
type ScheduleRepository interface {
	// GetWorkingHours возвращает настроенные рабочие часы клиники
	// (по одной записи на день недели) или storage.ErrNotConfigured
	GetWorkingHours(ctx context.Context, clinicID int64) ([]domain.WorkingHours, error)
	// GetHolidays возвращает праздники/закрытия, настроенные для клиники
	GetHolidays(ctx context.Context, clinicID int64) ([]domain.Holiday, error)
	// ReplaceWorkingHours заменяет недельное расписание клиники целиком
	ReplaceWorkingHours(ctx context.Context, clinicID int64, hours []domain.WorkingHours) error
	// AddHoliday добавляет праздник/закрытие клиники
	AddHoliday(ctx context.Context, clinicID int64, holiday domain.Holiday) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
