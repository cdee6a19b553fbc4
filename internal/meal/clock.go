package meal

import "time"

// KST is Korea Standard Time. A fixed offset is enough because the region has
// no daylight saving time.
var KST = time.FixedZone("KST", 9*60*60)

// Cutoff is the KST time of day after which dinner is served.
const Cutoff = 13*time.Hour + 30*time.Minute

// CurrentPeriod returns the meal period in effect at now.
//
// Times of day up to and including 13:30:00 KST map to Lunch, anything later
// maps to Dinner. Breakfast is never returned.
func CurrentPeriod(now time.Time) Period {
	if timeOfDay(now.In(KST)) > Cutoff {
		return Dinner
	}
	return Lunch
}

// timeOfDay returns the elapsed wall-clock time since local midnight,
// including the sub-second part.
func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

// Clock supplies the current instant. The zero value uses time.Now.
type Clock struct {
	// Now overrides the time source when set.
	Now func() time.Time
}

// Current returns the instant reported by the clock.
func (c Clock) Current() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return Clock{Now: func() time.Time { return t }}
}
