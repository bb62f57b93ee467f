package workload

import (
	"math"

	"github.com/inference-sim/warehouse-sim/sim"
)

// offHoursFraction scales the minimum user count outside business hours.
const offHoursFraction = 0.2

// ActivityCurve maps simulated time to a concurrent-user count.
// Within business hours the count follows a Gaussian kernel peaking at the
// window midpoint with sigma = window/4.
type ActivityCurve struct {
	MinUsers, MaxUsers int
	StartHour, EndHour int
}

// NewActivityCurve builds the curve from the interactive section.
func NewActivityCurve(cfg sim.InteractiveConfig) ActivityCurve {
	return ActivityCurve{
		MinUsers:  cfg.MinConcurrentUsers,
		MaxUsers:  cfg.MaxConcurrentUsers,
		StartHour: cfg.BusinessHoursStart,
		EndHour:   cfg.BusinessHoursEnd,
	}
}

// IsBusinessHours reports whether t (seconds) falls in [start, end) hour-of-day.
func (a ActivityCurve) IsBusinessHours(t float64) bool {
	hour := math.Mod(t/3600, 24)
	return float64(a.StartHour) <= hour && hour < float64(a.EndHour)
}

// Users returns the concurrent-user count at simulated time t.
func (a ActivityCurve) Users(t float64) int {
	if !a.IsBusinessHours(t) {
		users := int(float64(a.MinUsers) * offHoursFraction)
		if a.MinUsers > 0 && users < 1 {
			return 1
		}
		return users
	}
	hour := math.Mod(t/3600, 24)
	length := float64(a.EndHour - a.StartHour)
	offset := hour - float64(a.StartHour) - length/2
	width := length / 4
	factor := math.Exp(-(offset * offset) / (2 * width * width))
	return int(float64(a.MinUsers) + factor*float64(a.MaxUsers-a.MinUsers))
}
