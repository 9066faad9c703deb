package repository

import (
	"time"

	"clinic-schedule-service/internal/domain/entity"
	domainRepo "clinic-schedule-service/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) FindByDate(db *gorm.DB, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("date = ?", date.Format(entity.DateKeyFormat)).Order("time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Order("date ASC, time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
