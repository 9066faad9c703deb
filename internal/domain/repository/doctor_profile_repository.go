package repository

import (
	"clinic-schedule-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(db *gorm.DB) ([]entity.DoctorProfile, error)
	FindAllActive(db *gorm.DB) ([]entity.DoctorProfile, error)
}
