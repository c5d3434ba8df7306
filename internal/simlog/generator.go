// Package simlog generates synthetic combat logs: a run shaped like real
// dungeon play, with waves of enemies separated by travel gaps. Tests and
// the demo command use it to exercise the pipeline without API credentials.
package simlog

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/veyra/wcl2mdt/internal/domain/catalog"
	"github.com/veyra/wcl2mdt/internal/domain/model"
)

// Generation defaults. The seed is fixed so generated runs are reproducible
// across test runs.
const (
	defaultPullCount      = 6
	defaultEnemiesPerPull = 4
	defaultTravelGapMS    = 25_000
	defaultCombatSpanMS   = 8_000
	defaultSeed           = 42
	defaultDungeonID      = 503
	syntheticGameIDBase   = 200_000
	enemyKinds            = 5
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithPullCount sets how many pulls the synthetic run contains.
func WithPullCount(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.pulls = n
		}
	}
}

// WithEnemiesPerPull sets how many enemies each pull contains.
func WithEnemiesPerPull(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.perPull = n
		}
	}
}

// WithTravelGap sets the quiet time between pulls in milliseconds.
func WithTravelGap(ms int64) Option {
	return func(g *Generator) {
		if ms > 0 {
			g.travelMS = ms
		}
	}
}

// WithSeed sets the random seed, for runs that should differ.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible synthetic data
	}
}

// Generator produces one synthetic run at a time.
type Generator struct {
	rng      *rand.Rand
	pulls    int
	perPull  int
	travelMS int64
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:      rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // reproducible synthetic data
		pulls:    defaultPullCount,
		perPull:  defaultEnemiesPerPull,
		travelMS: defaultTravelGapMS,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalog returns the catalog matching the generator's synthetic enemy
// types.
func (g *Generator) Catalog() *catalog.Catalog {
	table := make(map[int]int, enemyKinds)
	for i := 0; i < enemyKinds; i++ {
		table[syntheticGameIDBase+i] = i + 1
	}
	return catalog.Static(defaultDungeonID, table)
}

// Events generates the raw event feed for one synthetic run. Each pull is a
// burst of engage events over a combat span with one death per enemy at the
// end, followed by a travel gap longer than any sane threshold within a
// pull.
func (g *Generator) Events(_ context.Context) []model.RawEvent {
	var events []model.RawEvent
	var clock int64

	for p := 0; p < g.pulls; p++ {
		for e := 0; e < g.perPull; e++ {
			unitID := uuid.New().String()
			enemyType := syntheticGameIDBase + g.rng.Intn(enemyKinds)
			first := clock + g.rng.Int63n(defaultCombatSpanMS/4)
			last := first + defaultCombatSpanMS/2 + g.rng.Int63n(defaultCombatSpanMS/2)

			events = append(events,
				model.RawEvent{UnitID: unitID, EnemyType: enemyType, Kind: model.KindEngage, Timestamp: first},
				model.RawEvent{UnitID: unitID, EnemyType: enemyType, Kind: model.KindEngage, Timestamp: (first + last) / 2},
				model.RawEvent{UnitID: unitID, EnemyType: enemyType, Kind: model.KindDeath, Timestamp: last},
			)
		}
		clock += defaultCombatSpanMS + g.travelMS
	}

	return events
}

// PullCount returns how many pulls the generator produces per run.
func (g *Generator) PullCount() int {
	return g.pulls
}
