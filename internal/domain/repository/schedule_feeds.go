package repository

import (
	"context"

	"clinic-schedule-service/internal/domain/entity"
)

// The schedule core reads its source data through these narrow feed
// contracts rather than the gorm repositories directly, so that resolution
// logic stays independent of the backing store.

// RosterFeed supplies the active doctor roster in full format, including
// each doctor's recurring schedule pattern. Feed order is meaningful: when
// several doctors match the same weekday, the first entry wins.
type RosterFeed interface {
	FetchRoster(ctx context.Context) ([]entity.DoctorProfile, error)
}

// OverrideFeed supplies the full schedule-override snapshot, no date filter.
type OverrideFeed interface {
	FetchOverrides(ctx context.Context) ([]entity.ScheduleOverride, error)
}

// AppointmentFeed supplies appointments for a single calendar date.
type AppointmentFeed interface {
	FetchAppointments(ctx context.Context, dateKey string) ([]entity.Appointment, error)
}
