package usecase

import (
	"context"
	"time"

	"clinic-schedule-service/internal/converter"
	"clinic-schedule-service/internal/delivery/dto"
	"clinic-schedule-service/internal/domain/entity"
	"clinic-schedule-service/internal/domain/repository"
	"clinic-schedule-service/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleUsecase interface {
	GetDailyAssignment(ctx context.Context, date string) (*dto.AssignmentResponse, error)
	GetAvailableSlots(ctx context.Context, date string, excludeAppointmentID string) (*dto.SlotListResponse, error)
	GetOverrides(ctx context.Context) (*dto.OverrideListResponse, error)
}

type scheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	resolver     *service.ScheduleResolver
	slotEngine   *service.SlotAvailabilityEngine
	appointments repository.AppointmentFeed
	overrideRepo repository.ScheduleOverrideRepository
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	resolver *service.ScheduleResolver,
	slotEngine *service.SlotAvailabilityEngine,
	appointments repository.AppointmentFeed,
	overrideRepo repository.ScheduleOverrideRepository,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:           db,
		log:          log,
		resolver:     resolver,
		slotEngine:   slotEngine,
		appointments: appointments,
		overrideRepo: overrideRepo,
	}
}

func (u *scheduleUsecase) GetDailyAssignment(ctx context.Context, date string) (*dto.AssignmentResponse, error) {
	assignment, err := u.resolver.GetAssignedDoctor(ctx, date)
	if err != nil {
		u.log.Warnf("Failed to resolve assignment for %s: %+v", date, err)
		return nil, err
	}

	// Second call hits the snapshot the resolution above populated.
	displayName := u.resolver.GetAssignedDoctorDisplayName(ctx, date)

	return converter.AssignmentToResponse(assignment, displayName), nil
}

func (u *scheduleUsecase) GetAvailableSlots(ctx context.Context, date string, excludeAppointmentID string) (*dto.SlotListResponse, error) {
	if _, err := time.Parse(entity.DateKeyFormat, date); err != nil {
		return nil, service.ErrInvalidDate
	}

	appointments, err := u.appointments.FetchAppointments(ctx, date)
	if err != nil {
		u.log.Warnf("Failed to fetch appointments for %s: %+v", date, err)
		return nil, err
	}

	slots := u.slotEngine.GetAvailableSlots(date, appointments, excludeAppointmentID)

	return &dto.SlotListResponse{
		Date:  date,
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

func (u *scheduleUsecase) GetOverrides(ctx context.Context) (*dto.OverrideListResponse, error) {
	overrides, err := u.overrideRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find overrides: %+v", err)
		return nil, err
	}

	responses := converter.OverridesToResponses(overrides)

	return &dto.OverrideListResponse{
		Overrides: responses,
		Total:     len(responses),
	}, nil
}
