package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateKeyFormat is the ISO calendar-date layout used to key overrides and to
// address schedule queries. All date strings in the scheduling core use it.
const DateKeyFormat = "2006-01-02"

// ScheduleOverride is a manual, date-specific exception that replaces the
// pattern-derived doctor for exactly one calendar date. At most one override
// exists per date.
type ScheduleOverride struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date             time.Time  `gorm:"type:date;not null;uniqueIndex" json:"date"`
	AssignedDoctorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"assigned_doctor_id"`
	OriginalDoctorID *uuid.UUID `gorm:"type:uuid" json:"original_doctor_id,omitempty"`
	Reason           string     `gorm:"type:varchar(255)" json:"reason,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	AssignedDoctor DoctorProfile `gorm:"foreignKey:AssignedDoctorID" json:"assigned_doctor,omitempty"`
}

func (ScheduleOverride) TableName() string {
	return "schedule_overrides"
}

// DateKey returns the ISO YYYY-MM-DD key this override is indexed under.
func (o *ScheduleOverride) DateKey() string {
	return o.Date.Format(DateKeyFormat)
}
