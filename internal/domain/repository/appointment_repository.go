package repository

import (
	"time"

	"clinic-schedule-service/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	FindByDate(db *gorm.DB, date time.Time) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
}
