package repository

import (
	"time"

	"clinic-schedule-service/internal/domain/entity"

	"gorm.io/gorm"
)

type ScheduleOverrideRepository interface {
	Create(db *gorm.DB, override *entity.ScheduleOverride) error
	Update(db *gorm.DB, override *entity.ScheduleOverride) error
	FindByDate(db *gorm.DB, date time.Time) (*entity.ScheduleOverride, error)
	FindAll(db *gorm.DB) ([]entity.ScheduleOverride, error)
}
