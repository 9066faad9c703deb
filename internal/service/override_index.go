package service

import (
	"clinic-schedule-service/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// OverrideIndex is a date-keyed lookup built from an override snapshot.
// It is rebuilt on every cache refresh and answers "is there an exception
// for date D" in O(1).
type OverrideIndex struct {
	byDate map[string]entity.ScheduleOverride
}

// BuildOverrideIndex indexes a snapshot by ISO date key. The store enforces
// one override per date, but a stale write can briefly produce duplicates;
// the last record in iteration order wins and the collision is logged as a
// data-quality anomaly, not treated as fatal.
func BuildOverrideIndex(log *logrus.Logger, overrides []entity.ScheduleOverride) OverrideIndex {
	byDate := make(map[string]entity.ScheduleOverride, len(overrides))
	for _, override := range overrides {
		key := override.DateKey()
		if prev, ok := byDate[key]; ok && log != nil {
			log.Warnf("Duplicate schedule override for date %s: replacing %s with %s", key, prev.ID, override.ID)
		}
		byDate[key] = override
	}
	return OverrideIndex{byDate: byDate}
}

// Find returns the override for the given ISO date key, if any.
func (idx OverrideIndex) Find(dateKey string) (entity.ScheduleOverride, bool) {
	override, ok := idx.byDate[dateKey]
	return override, ok
}

// Len returns the number of indexed dates.
func (idx OverrideIndex) Len() int {
	return len(idx.byDate)
}
