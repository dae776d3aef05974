package booking

import "strconv"

// durationMultipliers maps a rental duration in minutes to the number of
// half-hour units billed. Only these durations are offered.
var durationMultipliers = map[int]int64{
	30:  1,
	60:  2,
	90:  3,
	120: 4,
	180: 6,
	240: 8,
	360: 12,
}

func ValidDuration(minutes int) bool {
	_, ok := durationMultipliers[minutes]
	return ok
}

// TotalPrice computes basePerHalfHour x the duration multiplier.
// Callers must validate the duration first; unknown durations price to 0.
func TotalPrice(basePerHalfHour int64, durationMinutes int) int64 {
	return basePerHalfHour * durationMultipliers[durationMinutes]
}

// FormatIDR renders whole rupiah with dot thousands separators, the way
// prices appear everywhere on the site: 120000 -> "Rp 120.000".
func FormatIDR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if neg {
		return "-Rp " + string(out)
	}
	return "Rp " + string(out)
}
