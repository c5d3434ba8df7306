// Package model contains the value types passed between pipeline stages.
//
// Every stage of the pipeline consumes the complete, immutable output of the
// previous one: RawEvent -> EnemyInstance -> Pull -> PullPlan. Nothing here
// is mutated after construction.
package model

// EventKind classifies a single enemy lifecycle transition.
type EventKind int

// Lifecycle transitions reported by the event source.
const (
	KindAppear EventKind = iota
	KindEngage
	KindDeath
	KindDisappear
)

// String returns the lowercase name of the kind.
func (k EventKind) String() string {
	switch k {
	case KindAppear:
		return "appear"
	case KindEngage:
		return "engage"
	case KindDeath:
		return "death"
	case KindDisappear:
		return "disappear"
	default:
		return "unknown"
	}
}

// RawEvent is one lifecycle transition for an enemy unit as delivered by the
// event source. Timestamps are milliseconds since the start of the run and
// are non-decreasing within a single unit's own events; events of different
// units may interleave arbitrarily.
type RawEvent struct {
	UnitID    string    // unique per enemy instance within the run
	EnemyType int       // game-wide NPC id, resolved via the catalog
	Kind      EventKind // lifecycle transition
	Timestamp int64     // ms since run start
	X, Y      float64   // map position, valid only when HasPos is true
	HasPos    bool
}

// EnemyInstance is one enemy observed during the run, reduced to the time
// window in which it was relevant. FirstSeen <= LastSeen always holds.
type EnemyInstance struct {
	InstanceID   string
	CatalogIndex int
	FirstSeen    int64
	LastSeen     int64
}

// Pull is a non-empty group of enemies fought together. StartTime is the
// minimum FirstSeen among members, EndTime the maximum LastSeen.
type Pull struct {
	Instances []EnemyInstance
	StartTime int64
	EndTime   int64
}

// Size returns the number of enemy instances in the pull.
func (p Pull) Size() int {
	return len(p.Instances)
}

// PullComposition maps a catalog index to the number of enemies of that
// kind in one pull. Instance identity does not survive into a composition.
type PullComposition map[int]int

// Total returns the number of enemies across all kinds in the composition.
func (c PullComposition) Total() int {
	n := 0
	for _, count := range c {
		n += count
	}
	return n
}

// PullPlan is the export-ready route: per-pull enemy counts in pull order,
// plus the metadata the addon records alongside them.
type PullPlan struct {
	Pulls   []PullComposition
	Dungeon int
	Week    int
	Name    string
}

// Enemies returns the total enemy count across all pulls.
func (p PullPlan) Enemies() int {
	n := 0
	for _, pull := range p.Pulls {
		n += pull.Total()
	}
	return n
}

// Empty reports whether the plan contains no pulls.
func (p PullPlan) Empty() bool {
	return len(p.Pulls) == 0
}
