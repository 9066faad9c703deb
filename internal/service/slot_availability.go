package service

import (
	"fmt"
	"time"

	"clinic-schedule-service/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// Business window for bookable slots. The window is inclusive on both ends:
// 08:00 through 17:45 at 15-minute steps yields 40 candidate slots per day.
const (
	BusinessDayStartHour   = 8
	BusinessDayStartMinute = 0
	BusinessDayEndHour     = 17
	BusinessDayEndMinute   = 45
	SlotIntervalMinutes    = 15
)

// SlotAvailabilityEngine produces the ordered list of bookable time slots
// for a date, applying the today cut-off and conflict exclusion rules.
// It backs an interactive booking form, so it has no error conditions:
// malformed dates simply skip the today filter.
type SlotAvailabilityEngine struct {
	log *logrus.Logger
	now func() time.Time
}

// NewSlotAvailabilityEngine creates the engine. A nil clock defaults to
// time.Now; tests inject a fixed clock to pin the today cut-off.
func NewSlotAvailabilityEngine(log *logrus.Logger, now func() time.Time) *SlotAvailabilityEngine {
	if now == nil {
		now = time.Now
	}
	return &SlotAvailabilityEngine{log: log, now: now}
}

// GetAvailableSlots returns the bookable slots for the date in ascending
// time order.
//
// A candidate slot is dropped when:
//   - the date is today and the slot time is at or before the current
//     wall-clock time (other dates get no time-of-day filtering), or
//   - a confirmed appointment occupies the same date and time. Cancelled and
//     completed appointments never block.
//
// When excludeAppointmentID is non-empty, that appointment is ignored when
// computing conflicts, so re-saving an appointment at its own time does not
// report the slot as taken.
func (e *SlotAvailabilityEngine) GetAvailableSlots(dateKey string, existing []entity.Appointment, excludeAppointmentID string) []entity.TimeSlotOption {
	cutoff := e.todayCutoff(dateKey)

	blocked := make(map[string]struct{})
	for i := range existing {
		appointment := &existing[i]
		if excludeAppointmentID != "" && appointment.ID.String() == excludeAppointmentID {
			continue
		}
		if appointment.DateKey() != dateKey || !appointment.BlocksSlot() {
			continue
		}
		blocked[appointment.Time] = struct{}{}
	}

	slots := make([]entity.TimeSlotOption, 0, slotsPerDay())
	start := BusinessDayStartHour*60 + BusinessDayStartMinute
	end := BusinessDayEndHour*60 + BusinessDayEndMinute
	for minutes := start; minutes <= end; minutes += SlotIntervalMinutes {
		value := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
		if cutoff != "" && value <= cutoff {
			continue
		}
		if _, taken := blocked[value]; taken {
			continue
		}
		slots = append(slots, entity.TimeSlotOption{
			Value: value,
			Label: formatSlotLabel(minutes/60, minutes%60),
		})
	}

	return slots
}

// todayCutoff returns the current HH:MM wall-clock time when dateKey is the
// current calendar day, or "" when no cut-off applies. Malformed dates
// degrade to "not today" rather than erroring.
func (e *SlotAvailabilityEngine) todayCutoff(dateKey string) string {
	if _, err := time.Parse(entity.DateKeyFormat, dateKey); err != nil {
		e.log.Debugf("Malformed slot date %q, skipping today cut-off", dateKey)
		return ""
	}
	now := e.now()
	if dateKey != now.Format(entity.DateKeyFormat) {
		return ""
	}
	return now.Format("15:04")
}

// formatSlotLabel renders the 12-hour display form, e.g. "9:00 AM", "2:15 PM".
func formatSlotLabel(hour, minute int) string {
	meridiem := "AM"
	displayHour := hour
	switch {
	case hour == 0:
		displayHour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		displayHour = hour - 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, meridiem)
}

func slotsPerDay() int {
	start := BusinessDayStartHour*60 + BusinessDayStartMinute
	end := BusinessDayEndHour*60 + BusinessDayEndMinute
	return (end-start)/SlotIntervalMinutes + 1
}
