package validate_appointment

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	practitionerClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/practitionerservice"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts"
)

// UseCase use case валидации кандидата на прием.
//
// Все семь проверок выполняются без раннего выхода: результат
// агрегирует все нарушения сразу, чтобы регистратура могла исправить
// форму за один проход, а не получать ошибки по одной.
type UseCase struct {
	appointmentRepo    AppointmentRepository
	scheduleService    ScheduleService
	durationPolicy     DurationPolicy
	conflictDetector   ConflictDetector
	practitionerClient PractitionerServiceClient
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleService ScheduleService,
	durationPolicy DurationPolicy,
	conflictDetector ConflictDetector,
	practitionerClient PractitionerServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		scheduleService:    scheduleService,
		durationPolicy:     durationPolicy,
		conflictDetector:   conflictDetector,
		practitionerClient: practitionerClient,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет валидацию кандидата на прием
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateAppointment: patient=%d, practitioner=%d, clinic=%d, date=%s, time=%s-%s",
		req.PatientID, req.PractitionerID, req.ClinicID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateAppointment: request validation failed: %v", err)
		return nil, err
	}

	result, err := uc.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	if result.IsValid() {
		uc.logger.Info("ValidateAppointment: candidate is valid, %d warning(s)", len(result.Warnings))
	} else {
		uc.logger.Info("ValidateAppointment: candidate rejected with %d error(s)", len(result.Errors))
	}

	return toResponse(result), nil
}

// Validate прогоняет кандидата через все проверки и возвращает
// агрегированный результат. Используется и при создании приема -
// там он вызывается повторно внутри транзакции.
func (uc *UseCase) Validate(ctx context.Context, req *Request) (*domain.ValidationResult, error) {
	result := domain.NewValidationResult()
	now := uc.timeProvider.Now()

	// 1. Формат и порядок времен, согласованность длительности.
	// Остальные проверки по времени имеют смысл только при корректных временах.
	timesOK := checkTimes(req, result)

	// 2. Дата строго в будущем, предупреждение о записи впритык
	if timesOK {
		checkDate(req, now, result)
	}

	// 3. Политика длительности процедуры
	result.Merge(uc.durationPolicy.Validate(req.ProcedureType, req.DurationMinutes))

	// 4. Рабочие часы клиники
	if timesOK {
		result.Merge(uc.scheduleService.ValidateWorkingHours(ctx, req.ClinicID, req.Date, req.StartTime, req.EndTime))
	}

	// 5. Праздники (клиники + национальные)
	result.Merge(uc.scheduleService.CheckHoliday(ctx, req.ClinicID, req.Date))

	// 6. Доступность врача
	uc.checkPractitioner(ctx, req, result)

	// 7. Пересечения с существующими приемами
	if timesOK {
		uc.checkConflicts(ctx, req, result)
	}

	return result, nil
}

// checkPractitioner проверяет врача по справочнику: принадлежность клинике,
// активность и переопределения доступности на дату.
// Справочник - источник истины, поэтому его недоступность блокирует
// проверку жесткой ошибкой (fail-closed).
func (uc *UseCase) checkPractitioner(ctx context.Context, req *Request, result *domain.ValidationResult) {
	practitioner, err := uc.practitionerClient.GetPractitioner(ctx, req.PractitionerID)
	if err != nil {
		if errors.Is(err, practitionerClient.ErrPractitionerNotFound) {
			result.AddError(domain.KindPractitionerNotInClinic,
				"practitioner %d is not found in the directory", req.PractitionerID)
			return
		}

		uc.logger.Error("ValidateAppointment: practitioner directory unavailable for id=%d: %v", req.PractitionerID, err)
		result.AddError(domain.KindDirectoryUnavailable,
			"practitioner directory is unavailable, cannot verify practitioner %d", req.PractitionerID)
		return
	}

	if !practitioner.WorksAt(req.ClinicID) {
		result.AddError(domain.KindPractitionerNotInClinic,
			"practitioner %d does not work at clinic %d", req.PractitionerID, req.ClinicID)
	}

	if !practitioner.IsActive {
		result.AddError(domain.KindPractitionerInactive,
			"practitioner %d is not active", req.PractitionerID)
	}

	override, err := uc.practitionerClient.GetDayOverride(ctx, req.PractitionerID, req.Date.Format(domain.DateFormat))
	if err != nil {
		if errors.Is(err, practitionerClient.ErrNoOverride) {
			return
		}

		uc.logger.Error("ValidateAppointment: failed to get day override for practitioner id=%d: %v", req.PractitionerID, err)
		result.AddError(domain.KindDirectoryUnavailable,
			"practitioner directory is unavailable, cannot verify availability of practitioner %d", req.PractitionerID)
		return
	}

	if !override.Available {
		result.AddError(domain.KindPractitionerUnavailable,
			"practitioner %d is unavailable on %s: %s", req.PractitionerID, req.Date.Format(domain.DateFormat), override.Reason)
	}
}

// checkConflicts ищет пересечения кандидата с активными приемами врача
// и пациента на эту дату. Ошибка чтения блокирует проверку (fail-closed):
// молча пропущенная двойная запись хуже отказа в обслуживании.
func (uc *UseCase) checkConflicts(ctx context.Context, req *Request, result *domain.ValidationResult) {
	existing, err := uc.appointmentRepo.GetOverlapCandidates(ctx, req.PractitionerID, req.PatientID, req.Date)
	if err != nil {
		uc.logger.Error("ValidateAppointment: failed to load appointments for conflict check: %v", err)
		result.AddError(domain.KindConflictCheckUnavailable,
			"cannot verify scheduling conflicts for %s", req.Date.Format(domain.DateFormat))
		return
	}

	candidate := conflicts.Candidate{
		PractitionerID:       req.PractitionerID,
		PatientID:            req.PatientID,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	}

	for _, conflict := range uc.conflictDetector.FindConflicts(candidate, existing) {
		result.AddConflict(conflict)
	}
}
