// Package plan reduces ordered pulls to the export-ready pull plan.
package plan

import (
	"context"

	"github.com/veyra/wcl2mdt/internal/domain/model"
)

// Defaults recorded in the export table when the caller does not override
// them. Week 1 is the base affix rotation.
const (
	defaultWeek = 1
	defaultName = "Imported from WCL"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithDungeon sets the dungeon id recorded in the plan.
func WithDungeon(id int) Option {
	return func(b *Builder) {
		b.dungeon = id
	}
}

// WithWeek sets the affix week recorded in the plan.
func WithWeek(week int) Option {
	return func(b *Builder) {
		if week > 0 {
			b.week = week
		}
	}
}

// WithName sets the route name recorded in the plan.
func WithName(name string) Option {
	return func(b *Builder) {
		if name != "" {
			b.name = name
		}
	}
}

// Builder assembles a PullPlan from segmented pulls.
type Builder struct {
	dungeon int
	week    int
	name    string
}

// New creates a Builder with configuration options.
func New(opts ...Option) *Builder {
	b := &Builder{
		week: defaultWeek,
		name: defaultName,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build tallies each pull's members by catalog index and assembles the
// ordered plan. Pull order is preserved verbatim; instance identity is
// discarded, so two enemies of the same kind in one pull become a count of
// two rather than two entries. Build cannot fail; an empty pull slice
// yields a valid empty plan.
func (b *Builder) Build(_ context.Context, pulls []model.Pull) model.PullPlan {
	out := model.PullPlan{
		Pulls:   make([]model.PullComposition, 0, len(pulls)),
		Dungeon: b.dungeon,
		Week:    b.week,
		Name:    b.name,
	}
	for _, p := range pulls {
		comp := make(model.PullComposition, len(p.Instances))
		for _, inst := range p.Instances {
			comp[inst.CatalogIndex]++
		}
		out.Pulls = append(out.Pulls, comp)
	}
	return out
}
