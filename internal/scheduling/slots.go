package scheduling

import (
	"fmt"
	"time"
)

// SlotDurationMinutes is the length of the interval an appointment occupies.
const SlotDurationMinutes = 60

const (
	gridOpenHour    = 8
	gridLastHour    = 18
	gridStepMinutes = 30
)

// TimeSlots returns the half-hour booking grid, 08:00 through 18:30.
func TimeSlots() []string {
	var slots []string
	for h := gridOpenHour; h <= gridLastHour; h++ {
		for m := 0; m < 60; m += gridStepMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

// NextFreeSlot returns the first grid slot at or after start that is not
// occupied, or "" when start is off-grid or the rest of the day is taken.
func NextFreeSlot(start string, occupied map[string]bool) string {
	slots := TimeSlots()
	from := -1
	for i, slot := range slots {
		if slot == start {
			from = i
			break
		}
	}
	if from == -1 {
		return ""
	}
	for i := from; i < len(slots); i++ {
		if !occupied[slots[i]] {
			return slots[i]
		}
	}
	return ""
}

// NormalizeClock pads a clock string to HH:MM ("9:00" -> "09:00").
func NormalizeClock(clock string) string {
	if len(clock) == 4 {
		return "0" + clock
	}
	return clock
}

// clockToMinutes converts an HH:MM string to minutes since midnight.
func clockToMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", NormalizeClock(clock))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
