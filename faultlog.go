package backplane

import (
	"time"

	catrate "github.com/joeycumines/go-catrate"
)

// faultLogLimiter caps how often a cascade-of-termination is logged per
// origin DeviceID. A single faulting dependency can take down a large fan
// of monitors within microseconds of each other; without a limiter, each
// of those downstream terminations would independently emit a
// Notice-level log line naming the same origin, flooding whatever sink
// the caller wired in.
var faultLogLimiter = catrate.NewLimiter(map[time.Duration]int{
	time.Second: 5,
	time.Minute: 60,
})

// allowFaultLog reports whether a cascade fault attributed to origin should
// be logged right now, rate-limited per origin so a fan-out of cascading
// terminations produces bounded log volume instead of one line per victim.
func allowFaultLog(origin DeviceID) bool {
	_, ok := faultLogLimiter.Allow(origin)
	return ok
}
