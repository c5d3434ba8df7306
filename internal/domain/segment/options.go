// Package segment partitions a run's enemy instances into ordered pulls.
package segment

import "time"

// Option applies a configuration option to the Segmenter.
type Option func(*Segmenter)

// WithGapThreshold sets the maximum gap tolerated between an instance's
// appearance and the latest activity already in the current pull before a
// new pull is started. Negative values are ignored; zero is valid and means
// only overlapping or back-to-back instances share a pull.
func WithGapThreshold(gap time.Duration) Option {
	return func(s *Segmenter) {
		if gap >= 0 {
			s.gap = gap
		}
	}
}
