package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-schedule-service/internal/converter"
	"clinic-schedule-service/internal/delivery/dto"
	"clinic-schedule-service/internal/domain/entity"
	"clinic-schedule-service/internal/domain/repository"
	"clinic-schedule-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrOverrideLocked = errors.New("another override write for this date is in progress")
	ErrOverrideWrite  = errors.New("override write rejected")
)

// Upsert outcomes for an override write
const (
	OverrideActionCreated = "created"
	OverrideActionUpdated = "updated"
)

// OverrideLocker serializes override writes per calendar date.
type OverrideLocker interface {
	Acquire(ctx context.Context, dateKey string) (bool, error)
	Release(ctx context.Context, dateKey string) error
}

// ScheduleCacheInvalidator drops the resolver's roster/override snapshot so
// resolutions after a successful mutation see the new override.
type ScheduleCacheInvalidator interface {
	ClearCache()
}

type ScheduleOverrideUsecase interface {
	ApplyOverride(ctx context.Context, req *dto.ApplyOverrideRequest) (*dto.ApplyOverrideResponse, error)
}

type scheduleOverrideUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	overrideRepo repository.ScheduleOverrideRepository
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
	locker       OverrideLocker
	invalidator  ScheduleCacheInvalidator
}

func NewScheduleOverrideUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	overrideRepo repository.ScheduleOverrideRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	locker OverrideLocker,
	invalidator ScheduleCacheInvalidator,
) ScheduleOverrideUsecase {
	return &scheduleOverrideUsecase{
		db:           db,
		log:          log,
		overrideRepo: overrideRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		locker:       locker,
		invalidator:  invalidator,
	}
}

// ApplyOverride upserts the schedule override for a date. The backing store
// exposes separate create and update operations, so the write is selected by
// an existence check against the live override table, never the resolver
// cache. On success the resolver snapshot is invalidated.
func (u *scheduleOverrideUsecase) ApplyOverride(ctx context.Context, req *dto.ApplyOverrideRequest) (*dto.ApplyOverrideResponse, error) {
	date, err := time.Parse(entity.DateKeyFormat, req.Date)
	if err != nil {
		return nil, service.ErrInvalidDate
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.AssignedDoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.AssignedDoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	dateKey := date.Format(entity.DateKeyFormat)
	locked, err := u.locker.Acquire(ctx, dateKey)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrOverrideLocked
	}
	defer func() {
		if err := u.locker.Release(ctx, dateKey); err != nil {
			u.log.Warnf("Failed to release override lock for %s: %+v", dateKey, err)
		}
	}()

	existing, err := u.overrideRepo.FindByDate(u.db.WithContext(ctx), date)
	if err != nil {
		u.log.Warnf("Failed to find override for %s: %+v", dateKey, err)
		return nil, err
	}

	var (
		action   string
		override *entity.ScheduleOverride
	)
	if existing != nil {
		action = OverrideActionUpdated
		override, err = u.updateOverride(ctx, existing, req)
	} else {
		action = OverrideActionCreated
		override, err = u.createOverride(ctx, date, req)
	}
	if err != nil {
		u.log.Warnf("Failed to write override for %s: %+v", dateKey, err)
		return nil, fmt.Errorf("%w: %v", ErrOverrideWrite, err)
	}

	// Post-condition of a successful mutation: later resolutions must see
	// the new override instead of the cached snapshot.
	u.invalidator.ClearCache()

	return &dto.ApplyOverrideResponse{
		Action:   action,
		Override: *converter.OverrideToResponse(override),
	}, nil
}

func (u *scheduleOverrideUsecase) updateOverride(ctx context.Context, existing *entity.ScheduleOverride, req *dto.ApplyOverrideRequest) (*entity.ScheduleOverride, error) {
	oldValue := entity.JSON{
		"assigned_doctor_id": existing.AssignedDoctorID.String(),
		"reason":             existing.Reason,
	}

	existing.AssignedDoctorID = req.AssignedDoctorID
	existing.Reason = req.Reason

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.overrideRepo.Update(tx, existing); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, nil, entity.AuditActionOverrideUpdate, "schedule_override", existing.ID.String(), oldValue, existing)
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (u *scheduleOverrideUsecase) createOverride(ctx context.Context, date time.Time, req *dto.ApplyOverrideRequest) (*entity.ScheduleOverride, error) {
	override := &entity.ScheduleOverride{
		Date:             date,
		AssignedDoctorID: req.AssignedDoctorID,
		OriginalDoctorID: u.patternDoctorID(ctx, date),
		Reason:           req.Reason,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.overrideRepo.Create(tx, override); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, nil, entity.AuditActionOverrideCreate, "schedule_override", override.ID.String(), override)
	})
	if err != nil {
		return nil, err
	}
	return override, nil
}

// patternDoctorID snapshots which doctor the recurring pattern would have
// assigned, for the override's informational original_doctor_id field.
// Best effort: a roster fetch failure leaves the field empty.
func (u *scheduleOverrideUsecase) patternDoctorID(ctx context.Context, date time.Time) *uuid.UUID {
	roster, err := u.doctorRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to snapshot pattern doctor for %s: %+v", date.Format(entity.DateKeyFormat), err)
		return nil
	}
	day := date.Weekday()
	for i := range roster {
		if roster[i].IsOnDuty(day) {
			id := roster[i].ID
			return &id
		}
	}
	return nil
}
