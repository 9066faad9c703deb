package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"clinic-schedule-service/internal/delivery/dto"
	"clinic-schedule-service/internal/domain/entity"
	"clinic-schedule-service/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func mustDate(t *testing.T, key string) time.Time {
	t.Helper()
	date, err := time.Parse(entity.DateKeyFormat, key)
	require.NoError(t, err)
	return date
}

type fakeDoctorRepo struct {
	doctors []entity.DoctorProfile
}

func (f *fakeDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error) {
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			return &f.doctors[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	return f.doctors, nil
}

func (f *fakeDoctorRepo) FindAllActive(db *gorm.DB) ([]entity.DoctorProfile, error) {
	return f.doctors, nil
}

type fakeOverrideRepo struct {
	existing  *entity.ScheduleOverride
	createErr error
	created   *entity.ScheduleOverride
	updated   *entity.ScheduleOverride
}

func (f *fakeOverrideRepo) Create(db *gorm.DB, override *entity.ScheduleOverride) error {
	if f.createErr != nil {
		return f.createErr
	}
	if override.ID == uuid.Nil {
		override.ID = uuid.New()
	}
	f.created = override
	return nil
}

func (f *fakeOverrideRepo) Update(db *gorm.DB, override *entity.ScheduleOverride) error {
	f.updated = override
	return nil
}

func (f *fakeOverrideRepo) FindByDate(db *gorm.DB, date time.Time) (*entity.ScheduleOverride, error) {
	if f.existing != nil && f.existing.DateKey() == date.Format(entity.DateKeyFormat) {
		return f.existing, nil
	}
	return nil, nil
}

func (f *fakeOverrideRepo) FindAll(db *gorm.DB) ([]entity.ScheduleOverride, error) {
	if f.existing == nil {
		return nil, nil
	}
	return []entity.ScheduleOverride{*f.existing}, nil
}

type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

type fakeLocker struct {
	denied   bool
	acquires []string
	releases []string
}

func (f *fakeLocker) Acquire(ctx context.Context, dateKey string) (bool, error) {
	f.acquires = append(f.acquires, dateKey)
	return !f.denied, nil
}

func (f *fakeLocker) Release(ctx context.Context, dateKey string) error {
	f.releases = append(f.releases, dateKey)
	return nil
}

type fakeInvalidator struct {
	cleared int
}

func (f *fakeInvalidator) ClearCache() {
	f.cleared++
}

type overrideFixture struct {
	usecase     ScheduleOverrideUsecase
	mock        sqlmock.Sqlmock
	doctorRepo  *fakeDoctorRepo
	repo        *fakeOverrideRepo
	audit       *fakeAuditService
	locker      *fakeLocker
	invalidator *fakeInvalidator
}

func newOverrideFixture(t *testing.T, repo *fakeOverrideRepo, doctors ...entity.DoctorProfile) *overrideFixture {
	db, mock := newMockDB(t)
	f := &overrideFixture{
		mock:        mock,
		doctorRepo:  &fakeDoctorRepo{doctors: doctors},
		repo:        repo,
		audit:       &fakeAuditService{},
		locker:      &fakeLocker{},
		invalidator: &fakeInvalidator{},
	}
	f.usecase = NewScheduleOverrideUsecase(db, testLogger(), repo, f.doctorRepo, f.audit, f.locker, f.invalidator)
	return f
}

func TestApplyOverride_CreatesWhenNoneExists(t *testing.T) {
	pattern := entity.PatternMWF
	patternDoctor := entity.DoctorProfile{ID: uuid.New(), FullName: "Dr. Alice Chen", SchedulePattern: &pattern, IsActive: true}
	newDoctor := entity.DoctorProfile{ID: uuid.New(), FullName: "Dr. Bob Tan", IsActive: true}

	f := newOverrideFixture(t, &fakeOverrideRepo{}, patternDoctor, newDoctor)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	result, err := f.usecase.ApplyOverride(context.Background(), &dto.ApplyOverrideRequest{
		Date:             "2024-01-15", // a Monday
		AssignedDoctorID: newDoctor.ID,
		Reason:           "Dr. Chen on leave",
	})

	require.NoError(t, err)
	assert.Equal(t, OverrideActionCreated, result.Action)
	assert.Equal(t, "2024-01-15", result.Override.Date)
	assert.Equal(t, newDoctor.ID, result.Override.AssignedDoctorID)

	require.NotNil(t, f.repo.created)
	require.NotNil(t, f.repo.created.OriginalDoctorID)
	assert.Equal(t, patternDoctor.ID, *f.repo.created.OriginalDoctorID, "snapshots the pattern doctor being replaced")

	assert.Equal(t, []string{entity.AuditActionOverrideCreate}, f.audit.actions)
	assert.Equal(t, 1, f.invalidator.cleared, "successful mutation invalidates the resolver cache")
	assert.Equal(t, []string{"2024-01-15"}, f.locker.acquires)
	assert.Equal(t, []string{"2024-01-15"}, f.locker.releases)
}

func TestApplyOverride_UpdatesExisting(t *testing.T) {
	doctor := entity.DoctorProfile{ID: uuid.New(), FullName: "Dr. Bob Tan", IsActive: true}
	existing := &entity.ScheduleOverride{
		ID:               uuid.New(),
		Date:             mustDate(t, "2024-01-15"),
		AssignedDoctorID: uuid.New(),
		Reason:           "original reason",
	}

	f := newOverrideFixture(t, &fakeOverrideRepo{existing: existing}, doctor)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	result, err := f.usecase.ApplyOverride(context.Background(), &dto.ApplyOverrideRequest{
		Date:             "2024-01-15",
		AssignedDoctorID: doctor.ID,
		Reason:           "swapped again",
	})

	require.NoError(t, err)
	assert.Equal(t, OverrideActionUpdated, result.Action)
	assert.Equal(t, existing.ID, result.Override.ID, "update carries the existing override id")

	require.NotNil(t, f.repo.updated)
	assert.Equal(t, doctor.ID, f.repo.updated.AssignedDoctorID)
	assert.Equal(t, "swapped again", f.repo.updated.Reason)
	assert.Nil(t, f.repo.created)

	assert.Equal(t, []string{entity.AuditActionOverrideUpdate}, f.audit.actions)
	assert.Equal(t, 1, f.invalidator.cleared)
}

func TestApplyOverride_InvalidDate(t *testing.T) {
	f := newOverrideFixture(t, &fakeOverrideRepo{})

	_, err := f.usecase.ApplyOverride(context.Background(), &dto.ApplyOverrideRequest{
		Date:             "15/01/2024",
		AssignedDoctorID: uuid.New(),
	})

	assert.ErrorIs(t, err, service.ErrInvalidDate)
	assert.Empty(t, f.locker.acquires)
}

func TestApplyOverride_DoctorNotFound(t *testing.T) {
	f := newOverrideFixture(t, &fakeOverrideRepo{})

	_, err := f.usecase.ApplyOverride(context.Background(), &dto.ApplyOverrideRequest{
		Date:             "2024-01-15",
		AssignedDoctorID: uuid.New(),
	})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.Zero(t, f.invalidator.cleared)
}

func TestApplyOverride_LockedDateRejected(t *testing.T) {
	doctor := entity.DoctorProfile{ID: uuid.New(), FullName: "Dr. Bob Tan", IsActive: true}

	f := newOverrideFixture(t, &fakeOverrideRepo{}, doctor)
	f.locker.denied = true

	_, err := f.usecase.ApplyOverride(context.Background(), &dto.ApplyOverrideRequest{
		Date:             "2024-01-15",
		AssignedDoctorID: doctor.ID,
	})

	assert.ErrorIs(t, err, ErrOverrideLocked)
	assert.Nil(t, f.repo.created)
	assert.Zero(t, f.invalidator.cleared)
}

func TestApplyOverride_WriteFailure(t *testing.T) {
	doctor := entity.DoctorProfile{ID: uuid.New(), FullName: "Dr. Bob Tan", IsActive: true}

	f := newOverrideFixture(t, &fakeOverrideRepo{createErr: errors.New("constraint violation")}, doctor)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.ApplyOverride(context.Background(), &dto.ApplyOverrideRequest{
		Date:             "2024-01-15",
		AssignedDoctorID: doctor.ID,
	})

	assert.ErrorIs(t, err, ErrOverrideWrite)
	assert.Zero(t, f.invalidator.cleared, "failed write must not invalidate the cache")
	assert.Equal(t, []string{"2024-01-15"}, f.locker.releases, "lock released on failure")
}
