package usage

import "time"

const (
	defaultPlan  = "free"
	defaultLimit = 10

	// usagePeriod is the rolling window after which counters reset.
	usagePeriod = 7 * 24 * time.Hour
)

func defaultUsage() Usage {
	return Usage{
		Plan:     defaultPlan,
		Limit:    defaultLimit,
		Used:     0,
		ResetsAt: time.Now().UTC().Add(usagePeriod),
	}
}
