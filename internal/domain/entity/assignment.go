package entity

// AssignmentSource identifies which rule produced a resolved assignment
type AssignmentSource string

const (
	AssignmentSourceOverride AssignmentSource = "override"
	AssignmentSourcePattern  AssignmentSource = "pattern"
	AssignmentSourceNone     AssignmentSource = "none"
)

// ResolvedAssignment is the answer to "which doctor, if any, is on duty on
// date D" after applying override-then-pattern precedence. It is derived
// fresh per query and never persisted.
type ResolvedAssignment struct {
	Date   string           `json:"date"` // Format: YYYY-MM-DD
	Doctor *DoctorProfile   `json:"doctor,omitempty"`
	Source AssignmentSource `json:"source"`
}

// HasDoctor reports whether a doctor resolved for the date.
func (r *ResolvedAssignment) HasDoctor() bool {
	return r.Doctor != nil
}

// TimeSlotOption is a bookable slot projection for appointment forms.
// Value is the 24-hour HH:MM time, Label its 12-hour display form.
type TimeSlotOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
