package wcl

// seenSet is a bounded set of event keys with FIFO eviction. Event pages
// overlap at nextPageTimestamp boundaries, so the fetch loop records every
// accepted event and drops re-deliveries. With max <= 0 the set is
// unbounded.
type seenSet struct {
	max  int
	ring []string
	pos  int
	seen map[string]struct{}
}

func newSeenSet(max int) *seenSet {
	return &seenSet{
		max:  max,
		seen: make(map[string]struct{}),
	}
}

// seenAndRecord checks whether key was seen and records it if not.
// Returns true if key was already present.
func (s *seenSet) seenAndRecord(key string) bool {
	if _, ok := s.seen[key]; ok {
		return true
	}
	if s.max > 0 {
		if len(s.seen) >= s.max {
			delete(s.seen, s.ring[s.pos])
			s.ring[s.pos] = key
			s.pos = (s.pos + 1) % s.max
		} else {
			s.ring = append(s.ring, key)
		}
	}
	s.seen[key] = struct{}{}
	return false
}

// size returns the number of keys currently held.
func (s *seenSet) size() int {
	return len(s.seen)
}
