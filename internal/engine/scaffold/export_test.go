package scaffold

import "time"

// SetClock replaces the clock used for the generated date.
func (c *Creator) SetClock(now func() time.Time) {
	c.now = now
}
