package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

type fakeRepo struct {
	byID map[int64]*domain.Appointment

	updatedStatus  *domain.AppointmentStatus
	cancelledWith  string
	cancelledValue domain.AppointmentStatus
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetByPatientID(_ context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.byID {
		if a.PatientID != patientID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeRepo) GetByClinicWithFilter(_ context.Context, filter domain.ClinicAppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.byID {
		if a.ClinicID != filter.ClinicID {
			continue
		}
		if filter.PractitionerID != nil && a.PractitionerID != *filter.PractitionerID {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && !a.IsActive() {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.updatedStatus = &status
	f.byID[id].Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.cancelledValue = status
	f.cancelledWith = reason
	f.byID[id].Status = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func appointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		PatientID:       100,
		PractitionerID:  7,
		ClinicID:        1,
		Date:            time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		DurationMinutes: 60,
		ProcedureType:   domain.ProcedureConsultation,
		Status:          status,
	}
}

func newService(appointments ...*domain.Appointment) (*Service, *fakeRepo) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{}}
	for _, a := range appointments {
		repo.byID[a.ID] = a
	}
	return NewService(repo, nopLogger{}), repo
}

func TestGetByID_AccessControl(t *testing.T) {
	svc, _ := newService(appointment(1, domain.StatusScheduled))

	// Пациент видит свой прием
	resp, err := svc.GetByID(context.Background(), 1, 100, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Чужой пациент не видит
	_, err = svc.GetByID(context.Background(), 1, 200, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Персонал видит любой прием
	resp, err = svc.GetByID(context.Background(), 1, 200, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetByID(context.Background(), 999, 100, true)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetPatientAppointments(t *testing.T) {
	first := appointment(1, domain.StatusScheduled)
	second := appointment(2, domain.StatusCompleted)
	other := appointment(3, domain.StatusScheduled)
	other.PatientID = 200

	svc, _ := newService(first, second, other)

	resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{PatientID: 100})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)

	resp, err = svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID: 100,
		Status:    ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(2), resp.Appointments[0].ID)

	_, err = svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID: 100,
		Status:    ptr.Ptr("teleported"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetClinicAppointments(t *testing.T) {
	active := appointment(1, domain.StatusConfirmed)
	cancelled := appointment(2, domain.StatusCancelled)
	otherPractitioner := appointment(3, domain.StatusScheduled)
	otherPractitioner.PractitionerID = 8

	svc, _ := newService(active, cancelled, otherPractitioner)

	// По умолчанию неактивные исключены
	resp, err := svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{ClinicID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)

	// Фильтр по врачу
	resp, err = svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{
		ClinicID:       1,
		PractitionerID: ptr.Ptr(int64(8)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(3), resp.Appointments[0].ID)

	// С неактивными
	resp, err = svc.GetClinicAppointments(context.Background(), &models.GetClinicAppointmentsRequest{
		ClinicID:        1,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 3)
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	svc, repo := newService(appointment(1, domain.StatusScheduled))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "in_progress"})
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
}

func TestUpdateStatus_RejectedTransitions(t *testing.T) {
	svc, _ := newService(appointment(1, domain.StatusScheduled))

	// Из scheduled сразу в completed нельзя
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Неявка возможна только из confirmed
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "no_show"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Неизвестный статус
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "paused"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_CancellationRequiresReason(t *testing.T) {
	svc, _ := newService(appointment(1, domain.StatusScheduled))

	// Отмена через смену статуса запрещена - причина обязательна
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_NoShowFromConfirmed(t *testing.T) {
	svc, repo := newService(appointment(1, domain.StatusConfirmed))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "no_show"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, *repo.updatedStatus)
}

func TestCancel(t *testing.T) {
	svc, repo := newService(appointment(1, domain.StatusScheduled))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		RequesterID:        100,
		CancellationReason: "patient request",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.cancelledValue)
	assert.Equal(t, "patient request", repo.cancelledWith)
}

func TestCancel_ReasonRequired(t *testing.T) {
	svc, _ := newService(appointment(1, domain.StatusScheduled))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		RequesterID:        100,
		CancellationReason: "   ",
	})
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestCancel_AccessControl(t *testing.T) {
	svc, _ := newService(appointment(1, domain.StatusScheduled))

	// Чужой пациент не может отменить
	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		RequesterID:        200,
		CancellationReason: "not mine",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Персонал может
	err = svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		RequesterID:        200,
		IsStaff:            true,
		CancellationReason: "clinic closed unexpectedly",
	})
	require.NoError(t, err)
}

func TestCancel_OnlyBeforeVisit(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	} {
		svc, _ := newService(appointment(1, status))

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			RequesterID:        100,
			CancellationReason: "too late",
		})
		assert.ErrorIs(t, err, ErrCannotCancel, string(status))
	}
}
