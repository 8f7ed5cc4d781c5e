package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/usecase/validate_appointment"
)

// AppointmentRepository интерфейс репозитория приемов
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// Validator интерфейс пайплайна валидации кандидата.
// Вызывается дважды: до транзакции (быстрый отказ без блокировок)
// и внутри сериализуемой транзакции (повторная проверка под FOR UPDATE).
type Validator interface {
	Validate(ctx context.Context, req *validate_appointment.Request) (*domain.ValidationResult, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
