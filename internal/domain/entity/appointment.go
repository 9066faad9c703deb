package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a booked clinic appointment at a fixed time slot
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date        time.Time         `gorm:"type:date;not null;index" json:"date"`
	Time        string            `gorm:"type:time;not null" json:"time"` // Format: HH:MM
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DoctorName  string            `gorm:"type:varchar(150)" json:"doctor_name"`
	PatientName string            `gorm:"type:varchar(150)" json:"patient_name"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'confirmed';index" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// DateKey returns the ISO YYYY-MM-DD key for this appointment's date.
func (a *Appointment) DateKey() string {
	return a.Date.Format(DateKeyFormat)
}

// IsConfirmed checks if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// BlocksSlot reports whether this appointment makes its time slot unavailable.
// Only confirmed appointments block; a cancellation frees the slot immediately
// and a completed appointment's time has already passed.
func (a *Appointment) BlocksSlot() bool {
	return a.Status == AppointmentStatusConfirmed
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// Complete changes appointment status to completed
func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}
