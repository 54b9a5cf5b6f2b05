package scheduling

import "testing"

func TestTimeSlotsGrid(t *testing.T) {
	slots := TimeSlots()
	if len(slots) != 22 {
		t.Fatalf("expected 22 slots, got %d", len(slots))
	}
	if slots[0] != "08:00" {
		t.Fatalf("expected grid to open at 08:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "18:30" {
		t.Fatalf("expected grid to close at 18:30, got %s", slots[len(slots)-1])
	}
}

func TestNextFreeSlot(t *testing.T) {
	occupied := map[string]bool{"09:00": true, "09:30": true}

	if got := NextFreeSlot("09:00", occupied); got != "10:00" {
		t.Fatalf("expected 10:00, got %s", got)
	}
	if got := NextFreeSlot("10:00", occupied); got != "10:00" {
		t.Fatalf("expected 10:00 when start is free, got %s", got)
	}
}

func TestNextFreeSlotOffGrid(t *testing.T) {
	if got := NextFreeSlot("07:15", nil); got != "" {
		t.Fatalf("expected no slot for off-grid start, got %s", got)
	}
}

func TestNextFreeSlotDayFull(t *testing.T) {
	occupied := make(map[string]bool)
	for _, slot := range TimeSlots() {
		occupied[slot] = true
	}
	if got := NextFreeSlot("08:00", occupied); got != "" {
		t.Fatalf("expected no slot on a full day, got %s", got)
	}
}

func TestNormalizeClock(t *testing.T) {
	if got := NormalizeClock("9:00"); got != "09:00" {
		t.Fatalf("expected 09:00, got %s", got)
	}
	if got := NormalizeClock("14:30"); got != "14:30" {
		t.Fatalf("expected 14:30, got %s", got)
	}
}
