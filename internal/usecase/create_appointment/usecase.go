package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/usecase/validate_appointment"
)

// UseCase use case создания приема.
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два параллельных запроса на один слот не могут пройти проверку
// пересечений одновременно.
type UseCase struct {
	appointmentRepo AppointmentRepository
	validator       Validator
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	validator Validator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		validator:       validator,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания приема
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, practitioner=%d, clinic=%d, date=%s, time=%s-%s",
		req.PatientID, req.PractitionerID, req.ClinicID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: request validation failed: %v", err)
		return nil, err
	}

	validateReq := &validate_appointment.Request{
		PatientID:       req.PatientID,
		PractitionerID:  req.PractitionerID,
		ClinicID:        req.ClinicID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
		ProcedureType:   req.ProcedureType,
	}

	// 2. Быстрая проверка до транзакции - отказ по правилам не требует блокировок
	result, err := uc.validator.Validate(ctx, validateReq)
	if err != nil {
		uc.logger.Error("CreateAppointment: validation pipeline failed: %v", err)
		return nil, fmt.Errorf("%w: validation pipeline failed: %v", ErrInternal, err)
	}

	if !result.IsValid() {
		uc.logger.Warn("CreateAppointment: candidate rejected with %d error(s)", len(result.Errors))
		return toRejectedResponse(result), nil
	}

	var created *domain.Appointment

	// 3. Повторная проверка и вставка в сериализуемой транзакции.
	// Внутри транзакции чтение приемов получает FOR UPDATE, поэтому
	// конкурирующая запись на тот же слот дождется коммита и увидит конфликт.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		txResult, err := uc.validator.Validate(txCtx, validateReq)
		if err != nil {
			uc.logger.Error("CreateAppointment: validation inside transaction failed: %v", err)
			return fmt.Errorf("%w: validation inside transaction failed: %v", ErrInternal, err)
		}

		if !txResult.IsValid() {
			// Слот заняли между первой проверкой и транзакцией
			result = txResult
			return errValidationFailed
		}

		result = txResult

		appointment := &domain.Appointment{
			PatientID:       req.PatientID,
			PractitionerID:  req.PractitionerID,
			ClinicID:        req.ClinicID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			DurationMinutes: req.DurationMinutes,
			ProcedureType:   req.ProcedureType,
			Status:          domain.StatusScheduled,
			Notes:           req.Notes,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if errors.Is(err, errValidationFailed) {
		uc.logger.Warn("CreateAppointment: candidate rejected inside transaction with %d error(s)", len(result.Errors))
		return toRejectedResponse(result), nil
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", created.ID)

	return toCreatedResponse(created, result), nil
}
