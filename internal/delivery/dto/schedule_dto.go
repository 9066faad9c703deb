package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ApplyOverrideRequest struct {
	Date             string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	AssignedDoctorID uuid.UUID `json:"assigned_doctor_id" validate:"required"`
	Reason           string    `json:"reason" validate:"omitempty,max=255"`
}

// Response DTOs

type AssignmentResponse struct {
	Date        string          `json:"date"`
	Source      string          `json:"source"` // override | pattern | none
	Doctor      *DoctorResponse `json:"doctor,omitempty"`
	DisplayName string          `json:"display_name"`
}

type TimeSlotResponse struct {
	Value string `json:"value"` // Format: HH:MM (24-hour)
	Label string `json:"label"` // 12-hour display, e.g. "9:00 AM"
}

type SlotListResponse struct {
	Date  string             `json:"date"`
	Slots []TimeSlotResponse `json:"slots"`
	Total int                `json:"total"`
}

type OverrideResponse struct {
	ID               uuid.UUID  `json:"id"`
	Date             string     `json:"date"`
	AssignedDoctorID uuid.UUID  `json:"assigned_doctor_id"`
	OriginalDoctorID *uuid.UUID `json:"original_doctor_id,omitempty"`
	Reason           string     `json:"reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ApplyOverrideResponse struct {
	Action   string           `json:"action"` // created | updated
	Override OverrideResponse `json:"override"`
}

type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
	Total     int                `json:"total"`
}
