package durationpolicy

import (
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Policy проверяет длительность приема по правилам для типа процедуры.
// Таблица правил передается при создании и не изменяется после.
type Policy struct {
	rules map[domain.ProcedureType]domain.DurationRule
}

// NewPolicy создает политику длительностей с переданной таблицей правил
func NewPolicy(rules map[domain.ProcedureType]domain.DurationRule) *Policy {
	return &Policy{rules: rules}
}

// Validate проверяет длительность для типа процедуры.
//
// Для неизвестного типа правило отсутствует - фиксируется только
// предупреждение, длительность считается допустимой.
// Выход за [min, max] - жесткая ошибка с указанием границ.
// Длительность вне рекомендованных слотов - только предупреждение.
func (p *Policy) Validate(procedureType domain.ProcedureType, durationMinutes int) *domain.ValidationResult {
	result := domain.NewValidationResult()

	rule, ok := p.rules[procedureType]
	if !ok {
		result.AddWarning("no duration rule for procedure type %q, using generic validation", string(procedureType))
		return result
	}

	if durationMinutes < rule.MinMinutes || durationMinutes > rule.MaxMinutes {
		result.AddError(domain.KindDurationOutOfRange,
			"duration %d minutes is outside the allowed range [%d, %d] for %s",
			durationMinutes, rule.MinMinutes, rule.MaxMinutes, string(procedureType))
		return result
	}

	if !rule.IsRecommended(durationMinutes) {
		result.AddWarning("duration %d minutes is not a recommended slot for %s",
			durationMinutes, string(procedureType))
	}

	return result
}

// DefaultFor возвращает длительность по умолчанию для типа процедуры.
// Для неизвестного типа возвращает fallback.
func (p *Policy) DefaultFor(procedureType domain.ProcedureType, fallback int) int {
	if rule, ok := p.rules[procedureType]; ok {
		return rule.DefaultMinutes
	}
	return fallback
}
