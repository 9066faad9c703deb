package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-schedule-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRosterFeed struct {
	roster []entity.DoctorProfile
	err    error
	calls  int
}

func (f *fakeRosterFeed) FetchRoster(ctx context.Context) ([]entity.DoctorProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

type fakeOverrideFeed struct {
	overrides []entity.ScheduleOverride
	err       error
	calls     int
}

func (f *fakeOverrideFeed) FetchOverrides(ctx context.Context) ([]entity.ScheduleOverride, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.overrides, nil
}

func makeDoctor(name, specialization string, pattern entity.SchedulePattern) entity.DoctorProfile {
	doctor := entity.DoctorProfile{
		ID:             uuid.New(),
		FullName:       name,
		Specialization: specialization,
		IsActive:       true,
	}
	if pattern.IsValid() {
		doctor.SchedulePattern = &pattern
	}
	return doctor
}

func newTestResolver(roster *fakeRosterFeed, overrides *fakeOverrideFeed, now func() time.Time) *ScheduleResolver {
	return NewScheduleResolver(testLogger(), roster, overrides, 5*time.Minute, now)
}

func TestScheduleResolver_EndToEnd(t *testing.T) {
	doc1 := makeDoctor("Dr. Alice Chen", "Pediatrics", entity.PatternMWF)
	doc2 := makeDoctor("Dr. Bob Tan", "Dermatology", entity.PatternTTH)
	roster := &fakeRosterFeed{roster: []entity.DoctorProfile{doc1, doc2}}
	overrides := &fakeOverrideFeed{overrides: []entity.ScheduleOverride{
		{ID: uuid.New(), Date: mustDate(t, "2024-01-15"), AssignedDoctorID: doc2.ID},
	}}

	resolver := newTestResolver(roster, overrides, nil)
	ctx := context.Background()

	// 2024-01-15 is a Monday, normally doc1; the override wins
	assignment, err := resolver.GetAssignedDoctor(ctx, "2024-01-15")
	require.NoError(t, err)
	require.True(t, assignment.HasDoctor())
	assert.Equal(t, doc2.ID, assignment.Doctor.ID)
	assert.Equal(t, entity.AssignmentSourceOverride, assignment.Source)

	// 2024-01-03 is a Wednesday with no override, pattern gives doc1
	assignment, err = resolver.GetAssignedDoctor(ctx, "2024-01-03")
	require.NoError(t, err)
	require.True(t, assignment.HasDoctor())
	assert.Equal(t, doc1.ID, assignment.Doctor.ID)
	assert.Equal(t, entity.AssignmentSourcePattern, assignment.Source)

	// 2024-01-06 is a Saturday, nobody is on duty
	assignment, err = resolver.GetAssignedDoctor(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.False(t, assignment.HasDoctor())
	assert.Equal(t, entity.AssignmentSourceNone, assignment.Source)
}

func TestScheduleResolver_InvalidDate(t *testing.T) {
	resolver := newTestResolver(&fakeRosterFeed{}, &fakeOverrideFeed{}, nil)

	for _, date := range []string{"", "not-a-date", "2024-13-45", "15/01/2024"} {
		_, err := resolver.GetAssignedDoctor(context.Background(), date)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
	}

	// Invalid input never touches the feeds
	roster := &fakeRosterFeed{}
	overrides := &fakeOverrideFeed{}
	resolver = newTestResolver(roster, overrides, nil)
	_, _ = resolver.GetAssignedDoctor(context.Background(), "garbage")
	assert.Zero(t, roster.calls)
	assert.Zero(t, overrides.calls)
}

func TestScheduleResolver_DanglingOverrideFallsBackToPattern(t *testing.T) {
	doc1 := makeDoctor("Dr. Alice Chen", "Pediatrics", entity.PatternMWF)
	roster := &fakeRosterFeed{roster: []entity.DoctorProfile{doc1}}
	overrides := &fakeOverrideFeed{overrides: []entity.ScheduleOverride{
		{ID: uuid.New(), Date: mustDate(t, "2024-01-15"), AssignedDoctorID: uuid.New()},
	}}

	resolver := newTestResolver(roster, overrides, nil)

	assignment, err := resolver.GetAssignedDoctor(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.True(t, assignment.HasDoctor())
	assert.Equal(t, doc1.ID, assignment.Doctor.ID)
	assert.Equal(t, entity.AssignmentSourcePattern, assignment.Source)
}

func TestScheduleResolver_PatternTieBreakFeedOrder(t *testing.T) {
	first := makeDoctor("Dr. Alice Chen", "Pediatrics", entity.PatternMWF)
	second := makeDoctor("Dr. Bob Tan", "Dermatology", entity.PatternMWF)
	roster := &fakeRosterFeed{roster: []entity.DoctorProfile{first, second}}

	resolver := newTestResolver(roster, &fakeOverrideFeed{}, nil)

	assignment, err := resolver.GetAssignedDoctor(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.True(t, assignment.HasDoctor())
	assert.Equal(t, first.ID, assignment.Doctor.ID)
}

func TestScheduleResolver_CacheWithinWindow(t *testing.T) {
	doc1 := makeDoctor("Dr. Alice Chen", "Pediatrics", entity.PatternMWF)
	roster := &fakeRosterFeed{roster: []entity.DoctorProfile{doc1}}
	overrides := &fakeOverrideFeed{}

	current := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	resolver := newTestResolver(roster, overrides, func() time.Time { return current })
	ctx := context.Background()

	_, err := resolver.GetAssignedDoctor(ctx, "2024-01-15")
	require.NoError(t, err)
	_, err = resolver.GetAssignedDoctor(ctx, "2024-01-16")
	require.NoError(t, err)

	// Both feeds fetched exactly once inside the window
	assert.Equal(t, 1, roster.calls)
	assert.Equal(t, 1, overrides.calls)

	// Past expiry both feeds are re-fetched together
	current = current.Add(6 * time.Minute)
	_, err = resolver.GetAssignedDoctor(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2, roster.calls)
	assert.Equal(t, 2, overrides.calls)
}

func TestScheduleResolver_ClearCacheForcesRefetch(t *testing.T) {
	roster := &fakeRosterFeed{}
	overrides := &fakeOverrideFeed{}

	resolver := newTestResolver(roster, overrides, nil)
	ctx := context.Background()

	_, err := resolver.GetAssignedDoctor(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 1, roster.calls)

	resolver.ClearCache()

	_, err = resolver.GetAssignedDoctor(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2, roster.calls)
	assert.Equal(t, 2, overrides.calls)
}

func TestScheduleResolver_FetchFailurePropagates(t *testing.T) {
	fetchErr := errors.New("roster feed down")
	roster := &fakeRosterFeed{err: fetchErr}
	resolver := newTestResolver(roster, &fakeOverrideFeed{}, nil)

	_, err := resolver.GetAssignedDoctor(context.Background(), "2024-01-15")
	assert.ErrorIs(t, err, fetchErr)

	// A failed refresh leaves the cache cold: the next call fetches again
	_, err = resolver.GetAssignedDoctor(context.Background(), "2024-01-15")
	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, 2, roster.calls)
}

func TestScheduleResolver_GetAssignedDoctorID(t *testing.T) {
	doc1 := makeDoctor("Dr. Alice Chen", "Pediatrics", entity.PatternMWF)
	resolver := newTestResolver(&fakeRosterFeed{roster: []entity.DoctorProfile{doc1}}, &fakeOverrideFeed{}, nil)
	ctx := context.Background()

	id, ok, err := resolver.GetAssignedDoctorID(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc1.ID, id)

	id, ok, err = resolver.GetAssignedDoctorID(ctx, "2024-01-06")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}

func TestScheduleResolver_GetAssignedDoctorDisplayName(t *testing.T) {
	doc1 := makeDoctor("Dr. Alice Chen", "Pediatrics", entity.PatternMWF)
	resolver := newTestResolver(&fakeRosterFeed{roster: []entity.DoctorProfile{doc1}}, &fakeOverrideFeed{}, nil)
	ctx := context.Background()

	assert.Equal(t, "Dr. Alice Chen - Pediatrics", resolver.GetAssignedDoctorDisplayName(ctx, "2024-01-15"))
	assert.Equal(t, DisplayNoDoctor, resolver.GetAssignedDoctorDisplayName(ctx, "2024-01-06"))

	// Fetch failure renders the placeholder instead of erroring
	broken := newTestResolver(&fakeRosterFeed{err: errors.New("down")}, &fakeOverrideFeed{}, nil)
	assert.Equal(t, DisplayLoadError, broken.GetAssignedDoctorDisplayName(ctx, "2024-01-15"))
}
