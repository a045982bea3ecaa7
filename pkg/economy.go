package pkg

import "time"

// Tick credits production for every whole second since LastUpdate. The
// fractional remainder is carried to the next tick, so LastUpdate advances
// by the credited seconds rather than jumping to now. It returns the number
// of seconds credited.
func (s *State) Tick(now time.Time) int64 {
	elapsed := now.Sub(s.LastUpdate)
	if elapsed < time.Second {
		return 0
	}

	secs := int64(elapsed / time.Second)
	s.Points += s.TotalPps() * float64(secs)
	s.LastUpdate = s.LastUpdate.Add(time.Duration(secs) * time.Second)
	return secs
}
