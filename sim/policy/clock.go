package policy

import (
	"github.com/sirupsen/logrus"

	"github.com/paging-sim/paging-sim/sim/memory"
)

// Clock is the second-chance policy: a hand sweeps the frame table, clearing
// the referenced bit of each occupied frame it passes and evicting the first
// occupied frame found with the bit already clear.
type Clock struct {
	NoHooks
	frames FrameSet
	hand   int
}

// NewClock creates a clock policy with the hand on frame 0.
func NewClock(frames FrameSet) *Clock {
	return &Clock{frames: frames}
}

// Name implements ReplacementPolicy.
func (c *Clock) Name() string { return "clock" }

// Hand returns the index the next sweep starts from.
func (c *Clock) Hand() int { return c.hand }

// ChooseVictim implements ReplacementPolicy. The hand is left just past the
// victim. A sweep gives up after two full revolutions and falls back to the
// lowest-numbered occupied frame.
func (c *Clock) ChooseVictim() (memory.FrameID, error) {
	n := c.frames.Len()
	for i := 0; i < 2*n; i++ {
		id := memory.FrameID(c.hand)
		c.hand = (c.hand + 1) % n

		f := c.frames.Frame(id)
		if f.IsFree() {
			continue
		}
		if f.Referenced {
			c.frames.ClearReference(id)
			continue
		}
		return id, nil
	}

	for i := 0; i < n; i++ {
		id := memory.FrameID(i)
		if f := c.frames.Frame(id); !f.IsFree() {
			logrus.Warnf("clock: sweep bound of %d exhausted, falling back to frame %d", 2*n, id)
			return id, nil
		}
	}
	return memory.NoFrame, ErrNoOccupiedFrames
}
