package repository

import (
	"context"
	"time"

	"clinic-schedule-service/internal/domain/entity"
	domainRepo "clinic-schedule-service/internal/domain/repository"

	"gorm.io/gorm"
)

// ScheduleFeeds adapts the gorm repositories to the feed contracts the
// schedule core consumes. It always requests the full active roster since
// resolution needs each doctor's schedule pattern.
type ScheduleFeeds struct {
	db              *gorm.DB
	doctorRepo      domainRepo.DoctorProfileRepository
	overrideRepo    domainRepo.ScheduleOverrideRepository
	appointmentRepo domainRepo.AppointmentRepository
}

func NewScheduleFeeds(
	db *gorm.DB,
	doctorRepo domainRepo.DoctorProfileRepository,
	overrideRepo domainRepo.ScheduleOverrideRepository,
	appointmentRepo domainRepo.AppointmentRepository,
) *ScheduleFeeds {
	return &ScheduleFeeds{
		db:              db,
		doctorRepo:      doctorRepo,
		overrideRepo:    overrideRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (f *ScheduleFeeds) FetchRoster(ctx context.Context) ([]entity.DoctorProfile, error) {
	return f.doctorRepo.FindAllActive(f.db.WithContext(ctx))
}

func (f *ScheduleFeeds) FetchOverrides(ctx context.Context) ([]entity.ScheduleOverride, error) {
	return f.overrideRepo.FindAll(f.db.WithContext(ctx))
}

func (f *ScheduleFeeds) FetchAppointments(ctx context.Context, dateKey string) ([]entity.Appointment, error) {
	date, err := time.Parse(entity.DateKeyFormat, dateKey)
	if err != nil {
		return nil, err
	}
	return f.appointmentRepo.FindByDate(f.db.WithContext(ctx), date)
}
