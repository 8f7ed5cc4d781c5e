package practitionerservice

// Practitioner модель врача из справочника
type Practitioner struct {
	ID        int64   `json:"id"`
	FullName  string  `json:"full_name"`
	Specialty string  `json:"specialty"`
	ClinicIDs []int64 `json:"clinic_ids"`
	IsActive  bool    `json:"is_active"`
}

// DayOverride переопределение доступности врача на конкретную дату
// (отпуск, больничный, конференция)
type DayOverride struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WorksAt проверяет, принимает ли врач в указанной клинике
func (p *Practitioner) WorksAt(clinicID int64) bool {
	for _, id := range p.ClinicIDs {
		if id == clinicID {
			return true
		}
	}
	return false
}
