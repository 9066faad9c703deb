package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"clinic-schedule-service/internal/domain/entity"
	"clinic-schedule-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidDate is returned for malformed calendar-date input
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
)

// DisplayNoDoctor and DisplayLoadError are the UI fallback strings produced
// by GetAssignedDoctorDisplayName, which must always render something.
const (
	DisplayNoDoctor  = "No doctor assigned"
	DisplayLoadError = "Error loading doctor assignment"
)

// ScheduleResolver answers "who is the assigned doctor for date D" by
// combining date-specific overrides with recurring weekly patterns.
// Overrides always take precedence over patterns.
//
// The roster and override feeds are fetched together and cached as one
// snapshot with a single timestamp, so an override is never resolved against
// a roster from a different point in time. The snapshot stays valid for the
// configured TTL; concurrent callers past expiry share one refresh.
type ScheduleResolver struct {
	log       *logrus.Logger
	roster    repository.RosterFeed
	overrides repository.OverrideFeed
	ttl       time.Duration
	now       func() time.Time

	mu          sync.Mutex
	rosterCache []entity.DoctorProfile
	index       OverrideIndex
	fetchedAt   time.Time
	fresh       bool
}

// NewScheduleResolver creates a resolver over the given feeds. A nil clock
// defaults to time.Now; tests inject a fixed clock to control TTL expiry.
func NewScheduleResolver(
	log *logrus.Logger,
	roster repository.RosterFeed,
	overrides repository.OverrideFeed,
	ttl time.Duration,
	now func() time.Time,
) *ScheduleResolver {
	if now == nil {
		now = time.Now
	}
	return &ScheduleResolver{
		log:       log,
		roster:    roster,
		overrides: overrides,
		ttl:       ttl,
		now:       now,
	}
}

// GetAssignedDoctor resolves the on-duty doctor for an ISO YYYY-MM-DD date.
// Resolution order: override for the date, then pattern match in roster feed
// order, then none. Returns ErrInvalidDate for malformed input and propagates
// feed errors unretried.
func (s *ScheduleResolver) GetAssignedDoctor(ctx context.Context, dateKey string) (*entity.ResolvedAssignment, error) {
	date, err := time.Parse(entity.DateKeyFormat, dateKey)
	if err != nil {
		return nil, ErrInvalidDate
	}

	roster, index, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if override, ok := index.Find(dateKey); ok {
		for i := range roster {
			if roster[i].ID == override.AssignedDoctorID {
				return &entity.ResolvedAssignment{
					Date:   dateKey,
					Doctor: &roster[i],
					Source: entity.AssignmentSourceOverride,
				}, nil
			}
		}
		// Dangling reference: the override points at a doctor no longer on
		// the roster. Clinic operation must not halt on this, so fall
		// through to pattern resolution.
		s.log.Warnf("Schedule override %s for date %s references unknown doctor %s, falling back to pattern", override.ID, dateKey, override.AssignedDoctorID)
	}

	// First roster entry whose pattern covers the weekday wins. Patterns are
	// meant to be exclusively assigned, so this tie-break is deterministic
	// rather than operationally significant.
	day := date.Weekday()
	for i := range roster {
		if roster[i].IsOnDuty(day) {
			return &entity.ResolvedAssignment{
				Date:   dateKey,
				Doctor: &roster[i],
				Source: entity.AssignmentSourcePattern,
			}, nil
		}
	}

	return &entity.ResolvedAssignment{
		Date:   dateKey,
		Source: entity.AssignmentSourceNone,
	}, nil
}

// GetAssignedDoctorID is a thin projection of GetAssignedDoctor for callers
// that need only the identifier.
func (s *ScheduleResolver) GetAssignedDoctorID(ctx context.Context, dateKey string) (uuid.UUID, bool, error) {
	assignment, err := s.GetAssignedDoctor(ctx, dateKey)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !assignment.HasDoctor() {
		return uuid.Nil, false, nil
	}
	return assignment.Doctor.ID, true, nil
}

// GetAssignedDoctorDisplayName wraps GetAssignedDoctor for display fields
// that must always render. It never returns an error: resolution failures
// become a descriptive placeholder, distinguishing "no doctor" from
// "couldn't determine".
func (s *ScheduleResolver) GetAssignedDoctorDisplayName(ctx context.Context, dateKey string) string {
	assignment, err := s.GetAssignedDoctor(ctx, dateKey)
	if err != nil {
		s.log.Warnf("Failed to resolve doctor assignment for %s: %+v", dateKey, err)
		return DisplayLoadError
	}
	if !assignment.HasDoctor() {
		return DisplayNoDoctor
	}
	return assignment.Doctor.DisplayName()
}

// ClearCache forces the next resolution call to re-fetch both source feeds.
// Callers that mutate overrides must invoke this after a successful write.
func (s *ScheduleResolver) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fresh = false
}

// snapshot returns the cached roster/override pair, refreshing both feeds
// together when the cache is stale or cleared. The mutex is held across the
// refresh so overlapping callers see exactly one fetch per feed.
func (s *ScheduleResolver) snapshot(ctx context.Context) ([]entity.DoctorProfile, OverrideIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fresh && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.rosterCache, s.index, nil
	}

	roster, err := s.roster.FetchRoster(ctx)
	if err != nil {
		return nil, OverrideIndex{}, err
	}
	overrides, err := s.overrides.FetchOverrides(ctx)
	if err != nil {
		return nil, OverrideIndex{}, err
	}

	s.rosterCache = roster
	s.index = BuildOverrideIndex(s.log, overrides)
	s.fetchedAt = s.now()
	s.fresh = true

	return s.rosterCache, s.index, nil
}
