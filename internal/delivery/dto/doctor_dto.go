package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	FullName        string          `json:"full_name"`
	Specialization  string          `json:"specialization"`
	SchedulePattern string          `json:"schedule_pattern,omitempty"` // MWF | TTH
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	IsActive        bool            `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
