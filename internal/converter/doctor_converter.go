package converter

import (
	"clinic-schedule-service/internal/delivery/dto"
	"clinic-schedule-service/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(doctor *entity.DoctorProfile) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:              doctor.ID,
		FullName:        doctor.FullName,
		Specialization:  doctor.Specialization,
		ConsultationFee: doctor.ConsultationFee,
		IsActive:        doctor.IsActive,
	}

	if doctor.SchedulePattern != nil {
		response.SchedulePattern = string(*doctor.SchedulePattern)
	}

	return response
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to DoctorResponse DTOs
func DoctorProfilesToResponses(doctors []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorProfileToResponse(&doctors[i])
	}
	return responses
}
