package converter

import (
	"clinic-schedule-service/internal/delivery/dto"
	"clinic-schedule-service/internal/domain/entity"
)

// AssignmentToResponse converts a ResolvedAssignment to its response DTO.
// The display name mirrors the resolver's UI rule: doctor display form when
// resolved, placeholder otherwise.
func AssignmentToResponse(assignment *entity.ResolvedAssignment, displayName string) *dto.AssignmentResponse {
	if assignment == nil {
		return nil
	}

	return &dto.AssignmentResponse{
		Date:        assignment.Date,
		Source:      string(assignment.Source),
		Doctor:      DoctorProfileToResponse(assignment.Doctor),
		DisplayName: displayName,
	}
}

// OverrideToResponse converts a ScheduleOverride entity to OverrideResponse DTO
func OverrideToResponse(override *entity.ScheduleOverride) *dto.OverrideResponse {
	if override == nil {
		return nil
	}

	return &dto.OverrideResponse{
		ID:               override.ID,
		Date:             override.DateKey(),
		AssignedDoctorID: override.AssignedDoctorID,
		OriginalDoctorID: override.OriginalDoctorID,
		Reason:           override.Reason,
		CreatedAt:        override.CreatedAt,
		UpdatedAt:        override.UpdatedAt,
	}
}

// OverridesToResponses converts a slice of ScheduleOverride entities to OverrideResponse DTOs
func OverridesToResponses(overrides []entity.ScheduleOverride) []dto.OverrideResponse {
	responses := make([]dto.OverrideResponse, len(overrides))
	for i := range overrides {
		responses[i] = *OverrideToResponse(&overrides[i])
	}
	return responses
}

// SlotsToResponses converts slot options to their response DTOs
func SlotsToResponses(slots []entity.TimeSlotOption) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.TimeSlotResponse{
			Value: slot.Value,
			Label: slot.Label,
		}
	}
	return responses
}
