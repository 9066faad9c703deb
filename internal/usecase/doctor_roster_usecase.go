package usecase

import (
	"context"

	"clinic-schedule-service/internal/converter"
	"clinic-schedule-service/internal/delivery/dto"
	"clinic-schedule-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorRosterUsecase interface {
	GetActiveDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
}

type doctorRosterUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorProfileRepository
}

func NewDoctorRosterUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorProfileRepository) DoctorRosterUsecase {
	return &doctorRosterUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
	}
}

func (u *doctorRosterUsecase) GetActiveDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	responses := converter.DoctorProfilesToResponses(doctors)

	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}
