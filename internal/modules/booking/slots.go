package booking

import "fmt"

// The rental day is a fixed grid of half-hour slots from 09:00 to 17:30.
const (
	openHour    = 9
	closeHour   = 18
	slotMinutes = 30
	SlotsPerDay = (closeHour - openHour) * 60 / slotMinutes
)

var slotTimes = buildSlotTimes()

func buildSlotTimes() []string {
	out := make([]string, 0, SlotsPerDay)
	for h := openHour; h < closeHour; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return out
}

// SlotTimes returns the grid start times in order, "09:00" .. "17:30".
func SlotTimes() []string {
	out := make([]string, len(slotTimes))
	copy(out, slotTimes)
	return out
}

// ValidSlot reports whether t is one of the grid start times.
func ValidSlot(t string) bool {
	for _, s := range slotTimes {
		if s == t {
			return true
		}
	}
	return false
}
