package handler

import (
	"net/http"

	"clinic-schedule-service/internal/usecase"
	"clinic-schedule-service/pkg/response"
)

type DoctorHandler struct {
	rosterUsecase usecase.DoctorRosterUsecase
}

func NewDoctorHandler(rosterUsecase usecase.DoctorRosterUsecase) *DoctorHandler {
	return &DoctorHandler{
		rosterUsecase: rosterUsecase,
	}
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.rosterUsecase.GetActiveDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
