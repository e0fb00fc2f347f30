// Package clock centralizes "current time" and "current local day" so that
// every component derives dates from the configured timezone rather than
// recomputing its own calendar arithmetic.
package clock

import (
	"time"

	"github.com/lucasmonteiro/lingohabit/internal/constants"
	"github.com/lucasmonteiro/lingohabit/internal/utils"
)

// Clock supplies the current instant and the current local day.
type Clock interface {
	Now() time.Time
	// Today returns the current date (YYYY-MM-DD) in the clock's timezone.
	Today() string
	Location() *time.Location
}

type realClock struct {
	loc *time.Location
}

// New returns a Clock pinned to the given IANA timezone.
func New(timezone string) (Clock, error) {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &realClock{loc: loc}, nil
}

func (c *realClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *realClock) Today() string {
	return c.Now().Format(constants.DateFormat)
}

func (c *realClock) Location() *time.Location {
	return c.loc
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

func (f Fixed) Today() string {
	return f.Instant.Format(constants.DateFormat)
}

func (f Fixed) Location() *time.Location {
	return f.Instant.Location()
}
