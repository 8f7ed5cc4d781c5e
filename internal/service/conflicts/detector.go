package conflicts

import (
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

// Candidate - кандидат на запись, проверяемый на пересечения
type Candidate struct {
	PractitionerID int64
	PatientID      int64
	StartTime      types.TimeString
	EndTime        types.TimeString

	// ExcludeAppointmentID - ID записи, исключаемой из проверки
	// (используется при переносе существующей записи). 0 = ничего не исключать.
	ExcludeAppointmentID int64
}

// Detector ищет пересечения кандидата с существующими записями
type Detector struct{}

// NewDetector создает новый экземпляр детектора конфликтов
func NewDetector() *Detector {
	return &Detector{}
}

// FindConflicts сканирует записи на дату кандидата и возвращает по одному
// конфликту на каждое пересечение по врачу (practitioner_busy) или по
// пациенту (patient_busy). Для одного кандидата возможно несколько конфликтов.
//
// Интервалы полуоткрытые [start, end): запись, заканчивающаяся ровно в момент
// начала другой, НЕ считается пересечением.
//
// Примеры:
// - Кандидат 10:30-11:30, запись 10:00-11:00 → ЕСТЬ пересечение (10:30-11:00)
// - Кандидат 10:00-11:00, запись 09:00-10:00 → НЕТ пересечения (граничат)
// - Кандидат 10:00-11:00, запись 11:00-12:00 → НЕТ пересечения (граничат)
func (d *Detector) FindConflicts(candidate Candidate, existing []*domain.Appointment) []domain.Conflict {
	found := make([]domain.Conflict, 0)

	for _, appointment := range existing {
		// Пропускаем отмененные записи и неявки - они не занимают слот
		if !appointment.IsActive() {
			continue
		}

		if candidate.ExcludeAppointmentID != 0 && appointment.ID == candidate.ExcludeAppointmentID {
			continue
		}

		if !intervalsOverlap(candidate.StartTime, candidate.EndTime, appointment.StartTime, appointment.EndTime) {
			continue
		}

		if appointment.PractitionerID == candidate.PractitionerID {
			found = append(found, domain.Conflict{
				Kind:          domain.ConflictPractitionerBusy,
				AppointmentID: appointment.ID,
			})
		}

		if appointment.PatientID == candidate.PatientID {
			found = append(found, domain.Conflict{
				Kind:          domain.ConflictPatientBusy,
				AppointmentID: appointment.ID,
			})
		}
	}

	return found
}

// intervalsOverlap проверяет РЕАЛЬНОЕ пересечение полуоткрытых интервалов.
// Пересечение есть, только если:
// - начало первого СТРОГО раньше конца второго И
// - начало второго СТРОГО раньше конца первого
//
// Используем строгие неравенства (IsBefore), чтобы граничные случаи
// не считались пересечением.
func intervalsOverlap(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}
