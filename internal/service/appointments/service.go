package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/appointments/models"
)

// Service сервис для работы с приемами после их создания:
// чтение, движение по статусам и отмена
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса приемов
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает прием по ID.
// Пациент видит только свои приемы, персонал клиники - любые.
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64, isStaff bool) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for requester=%d", id, requesterID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isStaff && appointment.PatientID != requesterID {
		s.logger.Warn("GetByID: access denied for requester=%d to appointment id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetPatientAppointments получает историю приемов пациента
// Опционально фильтрует по статусу
func (s *Service) GetPatientAppointments(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetPatientAppointments: fetching appointments for patient=%d, status=%v", req.PatientID, req.Status)

	if req.PatientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientAppointments: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByPatientID(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientAppointments: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientAppointments: successfully fetched %d appointments for patient=%d",
		len(appointments), req.PatientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetClinicAppointments получает приемы клиники с гибкой фильтрацией.
// Поддерживает фильтрацию по врачу, пациенту, периоду, статусу
// и включению неактивных приемов. Доступно только персоналу.
func (s *Service) GetClinicAppointments(ctx context.Context, req *models.GetClinicAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClinicAppointments: fetching appointments for clinic=%d", req.ClinicID)

	if req.ClinicID <= 0 {
		return nil, fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClinicAppointments: invalid filter for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByClinicWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClinicAppointments: repository error for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: GetClinicAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClinicAppointments: successfully fetched %d appointments for clinic=%d",
		len(appointments), req.ClinicID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus двигает прием по статусной цепочке:
// scheduled -> confirmed -> in_progress -> completed, неявка из confirmed.
// Отмена через UpdateStatus запрещена - у отмены обязательна причина,
// используйте Cancel.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", appointmentID, req.Status)

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation attempted without reason for appointment id=%d", appointmentID)
		return fmt.Errorf("%w: use cancel endpoint with a reason", ErrInvalidTransition)
	}

	if !appointment.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%d",
			appointment.Status, newStatus, appointmentID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Cancel отменяет прием с обязательной причиной.
// Пациент может отменить только свой прием, персонал - любой.
// Отмена допустима только из статусов scheduled и confirmed.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by requester=%d", appointmentID, req.RequesterID)

	if strings.TrimSpace(req.CancellationReason) == "" {
		s.logger.Warn("Cancel: empty cancellation reason for appointment id=%d", appointmentID)
		return ErrReasonRequired
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !req.IsStaff && appointment.PatientID != req.RequesterID {
		s.logger.Warn("Cancel: access denied for requester=%d to appointment id=%d", req.RequesterID, appointmentID)
		return ErrAccessDenied
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, domain.StatusCancelled, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}
