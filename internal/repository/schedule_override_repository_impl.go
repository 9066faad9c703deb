package repository

import (
	"errors"
	"time"

	"clinic-schedule-service/internal/domain/entity"
	domainRepo "clinic-schedule-service/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduleOverrideRepository struct{}

func NewScheduleOverrideRepository() domainRepo.ScheduleOverrideRepository {
	return &scheduleOverrideRepository{}
}

func (r *scheduleOverrideRepository) Create(db *gorm.DB, override *entity.ScheduleOverride) error {
	return db.Create(override).Error
}

func (r *scheduleOverrideRepository) Update(db *gorm.DB, override *entity.ScheduleOverride) error {
	return db.Omit("AssignedDoctor").Save(override).Error
}

func (r *scheduleOverrideRepository) FindByDate(db *gorm.DB, date time.Time) (*entity.ScheduleOverride, error) {
	var override entity.ScheduleOverride
	err := db.Where("date = ?", date.Format(entity.DateKeyFormat)).First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}

func (r *scheduleOverrideRepository) FindAll(db *gorm.DB) ([]entity.ScheduleOverride, error) {
	var overrides []entity.ScheduleOverride
	err := db.Order("date ASC, updated_at ASC").Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}
