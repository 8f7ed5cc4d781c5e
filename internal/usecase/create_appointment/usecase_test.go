package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/usecase/validate_appointment"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

type fakeRepo struct {
	created   *domain.Appointment
	createErr error
}

func (f *fakeRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	appointment.ID = 42
	appointment.CreatedAt = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	appointment.UpdatedAt = appointment.CreatedAt
	f.created = appointment
	return appointment, nil
}

// fakeValidator отдает заранее подготовленные результаты по порядку вызовов:
// первый - проверка до транзакции, второй - внутри транзакции
type fakeValidator struct {
	results []*domain.ValidationResult
	err     error
	calls   int
}

func (f *fakeValidator) Validate(_ context.Context, _ *validate_appointment.Request) (*domain.ValidationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := f.results[f.calls]
	f.calls++
	return result, nil
}

// fakeTxManager выполняет fn без реальной транзакции
type fakeTxManager struct {
	began      bool
	rolledBack bool
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.began = true
	if err := fn(ctx); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validResult() *domain.ValidationResult {
	return domain.NewValidationResult()
}

func conflictResult() *domain.ValidationResult {
	result := domain.NewValidationResult()
	result.AddConflict(domain.Conflict{Kind: domain.ConflictPractitionerBusy, AppointmentID: 55})
	return result
}

func request() *Request {
	return &Request{
		PatientID:       100,
		PractitionerID:  7,
		ClinicID:        1,
		Date:            time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		DurationMinutes: 60,
		ProcedureType:   domain.ProcedureConsultation,
	}
}

func TestExecute_CreatesAppointment(t *testing.T) {
	repo := &fakeRepo{}
	validator := &fakeValidator{results: []*domain.ValidationResult{validResult(), validResult()}}
	txManager := &fakeTxManager{}

	uc := NewUseCase(repo, validator, txManager, nopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.NotNil(t, resp.Appointment)
	assert.True(t, resp.IsValid)
	assert.Equal(t, int64(42), resp.Appointment.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Appointment.Status)

	// Проверка выполняется дважды: до транзакции и под блокировкой
	assert.Equal(t, 2, validator.calls)
	assert.True(t, txManager.began)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusScheduled, repo.created.Status)
}

func TestExecute_RejectedBeforeTransaction(t *testing.T) {
	repo := &fakeRepo{}
	validator := &fakeValidator{results: []*domain.ValidationResult{conflictResult()}}
	txManager := &fakeTxManager{}

	uc := NewUseCase(repo, validator, txManager, nopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Nil(t, resp.Appointment)
	assert.False(t, resp.IsValid)
	require.Len(t, resp.Conflicts, 1)

	// Отказ по правилам не должен открывать транзакцию
	assert.False(t, txManager.began)
	assert.Nil(t, repo.created)
}

func TestExecute_SlotTakenInsideTransaction(t *testing.T) {
	repo := &fakeRepo{}
	// Первая проверка проходит, вторая (под блокировкой) находит конфликт -
	// слот заняли между проверкой и транзакцией
	validator := &fakeValidator{results: []*domain.ValidationResult{validResult(), conflictResult()}}
	txManager := &fakeTxManager{}

	uc := NewUseCase(repo, validator, txManager, nopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Nil(t, resp.Appointment)
	assert.False(t, resp.IsValid)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictPractitionerBusy, resp.Conflicts[0].Kind)

	assert.True(t, txManager.rolledBack)
	assert.Nil(t, repo.created)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("unique violation")}
	validator := &fakeValidator{results: []*domain.ValidationResult{validResult(), validResult()}}
	txManager := &fakeTxManager{}

	uc := NewUseCase(repo, validator, txManager, nopLogger{})

	_, err := uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrInternal)
	assert.True(t, txManager.rolledBack)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeValidator{}, &fakeTxManager{}, nopLogger{})

	cases := map[string]func(*Request){
		"zero patient":      func(r *Request) { r.PatientID = 0 },
		"zero practitioner": func(r *Request) { r.PractitionerID = 0 },
		"zero clinic":       func(r *Request) { r.ClinicID = 0 },
		"zero date":         func(r *Request) { r.Date = time.Time{} },
		"unknown procedure": func(r *Request) { r.ProcedureType = "tarot_reading" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := request()
			mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
