// Package segment partitions a run's enemy instances into ordered pulls.
//
// Engagement in a dungeon run comes in bursts of enemies fought close
// together in time, separated by travel. A single gap threshold over the
// timeline is the whole heuristic; no spatial reasoning is attempted.
package segment

import (
	"context"
	"sort"
	"time"

	"github.com/veyra/wcl2mdt/internal/domain/model"
)

// defaultGapThreshold mirrors the 10s combat-inactivity reset used when
// identifying pulls from live logs. Run pace varies with gear and skill, so
// the threshold is tunable via WithGapThreshold.
const defaultGapThreshold = 10 * time.Second

// Segmenter groups enemy instances into pulls by timing proximity.
type Segmenter struct {
	gap time.Duration
}

// New creates a Segmenter with configuration options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{gap: defaultGapThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GapThreshold returns the configured gap threshold.
func (s *Segmenter) GapThreshold() time.Duration {
	return s.gap
}

// Segment partitions instances into pulls ordered by start time. The output
// is a partition: every input instance lands in exactly one pull, and pulls
// never share instances. Segment cannot fail on well-typed input.
//
// An instance joins the current pull when its FirstSeen is within the gap
// threshold of the pull's running EndTime. A long-lived instance extends
// EndTime via its LastSeen but is placed by FirstSeen only; it never
// retroactively merges pulls that were already closed.
func (s *Segmenter) Segment(_ context.Context, instances []model.EnemyInstance) []model.Pull {
	if len(instances) == 0 {
		return nil
	}

	sorted := make([]model.EnemyInstance, len(instances))
	copy(sorted, instances)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FirstSeen != sorted[j].FirstSeen {
			return sorted[i].FirstSeen < sorted[j].FirstSeen
		}
		return sorted[i].InstanceID < sorted[j].InstanceID
	})

	gapMS := s.gap.Milliseconds()
	var pulls []model.Pull
	var acc model.Pull

	for _, inst := range sorted {
		if len(acc.Instances) == 0 {
			acc = model.Pull{
				Instances: []model.EnemyInstance{inst},
				StartTime: inst.FirstSeen,
				EndTime:   inst.LastSeen,
			}
			continue
		}
		if inst.FirstSeen-acc.EndTime <= gapMS {
			acc.Instances = append(acc.Instances, inst)
			if inst.LastSeen > acc.EndTime {
				acc.EndTime = inst.LastSeen
			}
			continue
		}
		pulls = append(pulls, acc)
		acc = model.Pull{
			Instances: []model.EnemyInstance{inst},
			StartTime: inst.FirstSeen,
			EndTime:   inst.LastSeen,
		}
	}
	pulls = append(pulls, acc)

	return pulls
}
