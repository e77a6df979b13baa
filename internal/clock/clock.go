package clock

import (
	"fmt"
	"time"

	"github.com/backyonatan-alt/launchboard/internal/country"
)

// Clock formats zone-local time labels from an injectable time source.
type Clock struct {
	now func() time.Time
}

// New returns a Clock reading the system wall clock.
func New() *Clock {
	return &Clock{now: time.Now}
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) *Clock {
	return &Clock{now: func() time.Time { return t }}
}

// CurrentTimeAt returns the label for the current instant in c's zone.
func (c *Clock) CurrentTimeAt(ct country.Country) string {
	return TimeAt(ct.Name, ct.Location, c.now())
}

// TimeAt converts now into loc and formats it as
// "The time in {name} is {h}:{m}:{s}". Components are not zero padded.
func TimeAt(name string, loc *time.Location, now time.Time) string {
	local := now.In(loc)
	return fmt.Sprintf("The time in %s is %d:%d:%d", name, local.Hour(), local.Minute(), local.Second())
}
