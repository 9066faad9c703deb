package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents a roster entry for a clinic doctor
type DoctorProfile struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName        string           `gorm:"type:varchar(150);not null" json:"full_name"`
	Specialization  string           `gorm:"type:varchar(100);not null;index" json:"specialization"`
	SchedulePattern *SchedulePattern `gorm:"type:varchar(10)" json:"schedule_pattern,omitempty"`
	ConsultationFee decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	IsActive        bool             `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsOnDuty reports whether this doctor's recurring pattern covers the weekday.
// Doctors without a pattern are never placed on duty by pattern resolution.
func (d *DoctorProfile) IsOnDuty(day time.Weekday) bool {
	if d.SchedulePattern == nil {
		return false
	}
	return d.SchedulePattern.IsOnDuty(day)
}

// DisplayName returns the UI form "<full name> - <specialization>"
func (d *DoctorProfile) DisplayName() string {
	return d.FullName + " - " + d.Specialization
}
