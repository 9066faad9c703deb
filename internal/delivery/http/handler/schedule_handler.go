package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-schedule-service/internal/delivery/dto"
	"clinic-schedule-service/internal/service"
	"clinic-schedule-service/internal/usecase"
	"clinic-schedule-service/pkg/response"
	"clinic-schedule-service/pkg/validator"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	overrideUsecase usecase.ScheduleOverrideUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(
	scheduleUsecase usecase.ScheduleUsecase,
	overrideUsecase usecase.ScheduleOverrideUsecase,
	validator *validator.CustomValidator,
) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		overrideUsecase: overrideUsecase,
		validator:       validator,
	}
}

func (h *ScheduleHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	assignment, err := h.scheduleUsecase.GetDailyAssignment(r.Context(), date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to resolve doctor assignment")
		return
	}

	response.Success(w, http.StatusOK, "Assignment resolved successfully", assignment)
}

func (h *ScheduleHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	excludeAppointmentID := r.URL.Query().Get("exclude_appointment_id")

	slots, err := h.scheduleUsecase.GetAvailableSlots(r.Context(), date, excludeAppointmentID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

func (h *ScheduleHandler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.scheduleUsecase.GetOverrides(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get overrides")
		return
	}

	response.Success(w, http.StatusOK, "Overrides retrieved successfully", overrides)
}

func (h *ScheduleHandler) ApplyOverride(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.overrideUsecase.ApplyOverride(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrOverrideLocked):
			response.Conflict(w, "Another override write for this date is in progress")
		case errors.Is(err, usecase.ErrOverrideWrite):
			response.Error(w, http.StatusUnprocessableEntity, "Override write rejected", nil)
		default:
			response.InternalServerError(w, "Failed to apply override")
		}
		return
	}

	status := http.StatusOK
	if result.Action == usecase.OverrideActionCreated {
		status = http.StatusCreated
	}

	response.Success(w, status, "Override applied successfully", result)
}
