package domain

// ProcedureType represents the kind of dental procedure being booked
type ProcedureType string

const (
	ProcedureConsultation ProcedureType = "consultation"
	ProcedureCleaning     ProcedureType = "cleaning"
	ProcedureFilling      ProcedureType = "filling"
	ProcedureExtraction   ProcedureType = "extraction"
	ProcedureRootCanal    ProcedureType = "root_canal"
	ProcedureOrthodontics ProcedureType = "orthodontics"
	ProcedureSurgery      ProcedureType = "surgery"
	ProcedureEmergency    ProcedureType = "emergency"
	ProcedureFollowUp     ProcedureType = "follow_up"
)

// KnownProcedureTypes lists every procedure type accepted at the API boundary
var KnownProcedureTypes = []ProcedureType{
	ProcedureConsultation,
	ProcedureCleaning,
	ProcedureFilling,
	ProcedureExtraction,
	ProcedureRootCanal,
	ProcedureOrthodontics,
	ProcedureSurgery,
	ProcedureEmergency,
	ProcedureFollowUp,
}

// IsKnownProcedureType reports whether t is one of the enumerated procedure types
func IsKnownProcedureType(t ProcedureType) bool {
	for _, known := range KnownProcedureTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DurationRule holds the duration policy for one procedure type.
// RecommendedSlots are the advised granular durations, all multiples of 15 minutes.
// A duration outside [MinMinutes, MaxMinutes] is a hard violation; a duration
// merely missing from RecommendedSlots is advisory only.
type DurationRule struct {
	MinMinutes       int
	MaxMinutes       int
	DefaultMinutes   int
	RecommendedSlots []int
}

// IsRecommended reports whether the duration is one of the recommended slots
func (r DurationRule) IsRecommended(minutes int) bool {
	for _, slot := range r.RecommendedSlots {
		if slot == minutes {
			return true
		}
	}
	return false
}

// DefaultDurationRules returns the built-in duration policy table.
// A fresh map is returned on every call so callers cannot mutate shared state.
func DefaultDurationRules() map[ProcedureType]DurationRule {
	return map[ProcedureType]DurationRule{
		ProcedureConsultation: {MinMinutes: 15, MaxMinutes: 60, DefaultMinutes: 30, RecommendedSlots: []int{15, 30, 45, 60}},
		ProcedureCleaning:     {MinMinutes: 45, MaxMinutes: 90, DefaultMinutes: 60, RecommendedSlots: []int{45, 60, 90}},
		ProcedureFilling:      {MinMinutes: 30, MaxMinutes: 120, DefaultMinutes: 60, RecommendedSlots: []int{30, 45, 60, 90, 120}},
		ProcedureExtraction:   {MinMinutes: 30, MaxMinutes: 90, DefaultMinutes: 45, RecommendedSlots: []int{30, 45, 60, 90}},
		ProcedureRootCanal:    {MinMinutes: 60, MaxMinutes: 180, DefaultMinutes: 90, RecommendedSlots: []int{60, 90, 120, 150, 180}},
		ProcedureOrthodontics: {MinMinutes: 30, MaxMinutes: 90, DefaultMinutes: 45, RecommendedSlots: []int{30, 45, 60, 90}},
		ProcedureSurgery:      {MinMinutes: 60, MaxMinutes: 240, DefaultMinutes: 120, RecommendedSlots: []int{60, 90, 120, 180, 240}},
		ProcedureEmergency:    {MinMinutes: 15, MaxMinutes: 120, DefaultMinutes: 30, RecommendedSlots: []int{15, 30, 45, 60, 90, 120}},
		ProcedureFollowUp:     {MinMinutes: 15, MaxMinutes: 45, DefaultMinutes: 30, RecommendedSlots: []int{15, 30, 45}},
	}
}
