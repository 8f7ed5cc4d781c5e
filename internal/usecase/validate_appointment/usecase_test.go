package validate_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/practitionerservice"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/durationpolicy"
	scheduleService "github.com/m04kA/SMC-ClinicScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// --- фейки коллабораторов ---

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetOverlapCandidates(_ context.Context, _, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

type fakeScheduleRepo struct {
	holidays []domain.Holiday
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64) ([]domain.WorkingHours, error) {
	return nil, schedule.ErrNotConfigured
}

func (f *fakeScheduleRepo) GetHolidays(_ context.Context, _ int64) ([]domain.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeScheduleRepo) ReplaceWorkingHours(_ context.Context, _ int64, _ []domain.WorkingHours) error {
	return nil
}

func (f *fakeScheduleRepo) AddHoliday(_ context.Context, _ int64, _ domain.Holiday) error {
	return nil
}

type fakePractitionerClient struct {
	practitioner    *practitionerservice.Practitioner
	practitionerErr error
	override        *practitionerservice.DayOverride
	overrideErr     error
}

func (f *fakePractitionerClient) GetPractitioner(_ context.Context, _ int64) (*practitionerservice.Practitioner, error) {
	if f.practitionerErr != nil {
		return nil, f.practitionerErr
	}
	return f.practitioner, nil
}

func (f *fakePractitionerClient) GetDayOverride(_ context.Context, _ int64, _ string) (*practitionerservice.DayOverride, error) {
	if f.overrideErr != nil {
		return nil, f.overrideErr
	}
	return f.override, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- сборка usecase с дефолтными фейками ---

type fixture struct {
	appointmentRepo    *fakeAppointmentRepo
	scheduleRepo       *fakeScheduleRepo
	practitionerClient *fakePractitionerClient
	uc                 *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		appointmentRepo: &fakeAppointmentRepo{},
		scheduleRepo:    &fakeScheduleRepo{},
		practitionerClient: &fakePractitionerClient{
			practitioner: &practitionerservice.Practitioner{
				ID:        7,
				ClinicIDs: []int64{1},
				IsActive:  true,
			},
			overrideErr: practitionerservice.ErrNoOverride,
		},
	}

	schedSvc := scheduleService.NewService(
		f.scheduleRepo,
		domain.DefaultWeeklySchedule(),
		domain.NationalHolidays(),
		nopLogger{},
	)

	f.uc = NewUseCase(
		f.appointmentRepo,
		schedSvc,
		durationpolicy.NewPolicy(domain.DefaultDurationRules()),
		conflicts.NewDetector(),
		f.practitionerClient,
		nopLogger{},
	)
	// Фиксированное "сейчас", чтобы даты сценариев оставались в будущем
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}

	return f
}

func request(date, start, end string, duration int, procedure domain.ProcedureType) *Request {
	d, _ := time.Parse(domain.DateFormat, date)
	return &Request{
		PatientID:       100,
		PractitionerID:  7,
		ClinicID:        1,
		Date:            d,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		DurationMinutes: duration,
		ProcedureType:   procedure,
	}
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture()

	// Понедельник, клиника открывается в 08:00
	resp, err := f.uc.Execute(context.Background(), request("2024-01-15", "07:30", "08:30", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindOutsideWorkingHours)
}

func TestExecute_NationalHoliday(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("2024-12-25", "10:00", "10:30", 30, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindHoliday)
}

func TestExecute_ValidCandidate(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "10:45", 45, domain.ProcedureCleaning))
	require.NoError(t, err)

	assert.True(t, resp.IsValid)
	assert.Empty(t, resp.Errors)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_PractitionerBusyConflict(t *testing.T) {
	f := newFixture()

	// Прием A уже существует: 10:00-11:00 у того же врача
	f.appointmentRepo.appointments = []*domain.Appointment{
		{
			ID:             55,
			PatientID:      200,
			PractitionerID: 7,
			StartTime:      types.TimeString("10:00"),
			EndTime:        types.TimeString("11:00"),
			Status:         domain.StatusScheduled,
		},
	}

	// Запрос B пересекается: 10:30-11:30
	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:30", "11:30", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindSchedulingConflict)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictPractitionerBusy, resp.Conflicts[0].Kind)
	assert.Equal(t, int64(55), resp.Conflicts[0].AppointmentID)
}

func TestExecute_StartEqualsEnd(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "10:00", 0, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindInvalidTimeSequence)
}

func TestExecute_DurationMismatch(t *testing.T) {
	f := newFixture()

	// Интервал 10:00-11:00 (60 минут), заявлено 45
	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "11:00", 45, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindInvalidDuration)
}

func TestExecute_DurationOutOfRange(t *testing.T) {
	f := newFixture()

	// Чистка минимум 45 минут
	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "10:30", 30, domain.ProcedureCleaning))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindDurationOutOfRange)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("2024-01-09", "10:00", "11:00", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindPastDate)
}

func TestExecute_ShortNoticeWarning(t *testing.T) {
	f := newFixture()

	// "Сейчас" 09:00, прием в 10:00 того же дня - меньше двух часов
	resp, err := f.uc.Execute(context.Background(), request("2024-01-10", "10:00", "11:00", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.True(t, resp.IsValid)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "less than 2 hours")
}

func TestExecute_PractitionerNotInClinic(t *testing.T) {
	f := newFixture()
	f.practitionerClient.practitioner.ClinicIDs = []int64{99}

	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "11:00", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindPractitionerNotInClinic)
}

func TestExecute_PractitionerInactive(t *testing.T) {
	f := newFixture()
	f.practitionerClient.practitioner.IsActive = false

	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "11:00", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindPractitionerInactive)
}

func TestExecute_PractitionerDayOverride(t *testing.T) {
	f := newFixture()
	f.practitionerClient.overrideErr = nil
	f.practitionerClient.override = &practitionerservice.DayOverride{
		Date:      "2024-01-16",
		Available: false,
		Reason:    "vacation",
	}

	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "11:00", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindPractitionerUnavailable)
}

func TestExecute_DirectoryUnavailableIsFailClosed(t *testing.T) {
	f := newFixture()
	f.practitionerClient.practitionerErr = practitionerservice.ErrServiceUnavailable

	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "11:00", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindDirectoryUnavailable)
}

func TestExecute_ConflictCheckUnavailableIsFailClosed(t *testing.T) {
	f := newFixture()
	f.appointmentRepo.err = errors.New("connection refused")

	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "11:00", 60, domain.ProcedureConsultation))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindConflictCheckUnavailable)
}

func TestExecute_AggregatesAllViolations(t *testing.T) {
	f := newFixture()
	f.practitionerClient.practitioner.IsActive = false

	// Воскресенье + чистка 30 минут + неактивный врач:
	// все нарушения должны попасть в один результат
	resp, err := f.uc.Execute(context.Background(), request("2024-01-14", "10:00", "10:30", 30, domain.ProcedureCleaning))
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assertHasKind(t, resp.Errors, domain.KindNonWorkingDay)
	assertHasKind(t, resp.Errors, domain.KindDurationOutOfRange)
	assertHasKind(t, resp.Errors, domain.KindPractitionerInactive)
}

func TestExecute_WarningsDoNotAffectValidity(t *testing.T) {
	f := newFixture()

	// 50 минут не входит в рекомендованные слоты чистки (45/60/90),
	// но в пределах min/max - только предупреждение
	resp, err := f.uc.Execute(context.Background(), request("2024-01-16", "10:00", "10:50", 50, domain.ProcedureCleaning))
	require.NoError(t, err)

	assert.True(t, resp.IsValid)
	assert.NotEmpty(t, resp.Warnings)
}

func TestExecute_ExcludesOwnAppointmentOnReschedule(t *testing.T) {
	f := newFixture()
	f.appointmentRepo.appointments = []*domain.Appointment{
		{
			ID:             55,
			PatientID:      100,
			PractitionerID: 7,
			StartTime:      types.TimeString("10:00"),
			EndTime:        types.TimeString("11:00"),
			Status:         domain.StatusConfirmed,
		},
	}

	req := request("2024-01-16", "10:30", "11:30", 60, domain.ProcedureConsultation)
	req.ExcludeAppointmentID = 55

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.IsValid)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	req := request("2024-01-16", "10:00", "11:00", 60, domain.ProcedureConsultation)
	req.PatientID = 0

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func assertHasKind(t *testing.T, errs []domain.ValidationError, kind domain.ErrorKind) {
	t.Helper()
	for _, e := range errs {
		if e.Kind == kind {
			return
		}
	}
	t.Errorf("expected error kind %q, got %v", kind, errs)
}
