// Package normalize turns the raw event feed for one run into the set of
// enemy instances it describes.
package normalize

import (
	"context"
	"fmt"
	"sort"

	"github.com/veyra/wcl2mdt/internal/domain/catalog"
	"github.com/veyra/wcl2mdt/internal/domain/model"
)

// Warning records an enemy instance that was skipped during normalization.
// Skipped instances affect completeness of the plan, not its correctness.
type Warning struct {
	InstanceID string
	EnemyType  int
	Err        error
}

func (w Warning) Error() string {
	return fmt.Sprintf("instance %s (type %d): %v", w.InstanceID, w.EnemyType, w.Err)
}

// Unwrap exposes the underlying sentinel for errors.Is.
func (w Warning) Unwrap() error {
	return w.Err
}

// Normalizer resolves raw events against a dungeon catalog. It is a pure
// function of its inputs; the catalog is passed in explicitly so tests and
// per-dungeon callers need no global setup.
type Normalizer struct {
	cat *catalog.Catalog
}

// New creates a Normalizer bound to the given catalog.
func New(cat *catalog.Catalog) *Normalizer {
	return &Normalizer{cat: cat}
}

// Normalize groups events by unit, resolves each unit's enemy type against
// the catalog and computes the first/last timestamp of the group. Units
// whose type is unknown to the catalog are skipped and reported as warnings;
// unknown trash adds, pets or clones must never abort the whole run.
//
// The returned instances are sorted by FirstSeen ascending, ties broken by
// InstanceID, so identical input always yields identical output.
func (n *Normalizer) Normalize(_ context.Context, events []model.RawEvent) ([]model.EnemyInstance, []Warning) {
	type group struct {
		enemyType int
		first     int64
		last      int64
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, ev := range events {
		g, ok := groups[ev.UnitID]
		if !ok {
			groups[ev.UnitID] = &group{enemyType: ev.EnemyType, first: ev.Timestamp, last: ev.Timestamp}
			order = append(order, ev.UnitID)
			continue
		}
		if ev.Timestamp < g.first {
			g.first = ev.Timestamp
		}
		if ev.Timestamp > g.last {
			g.last = ev.Timestamp
		}
	}

	instances := make([]model.EnemyInstance, 0, len(groups))
	var warnings []Warning
	for _, unitID := range order {
		g := groups[unitID]
		idx, ok := n.cat.Resolve(g.enemyType)
		if !ok {
			warnings = append(warnings, Warning{InstanceID: unitID, EnemyType: g.enemyType, Err: ErrUnknownEnemy})
			continue
		}
		instances = append(instances, model.EnemyInstance{
			InstanceID:   unitID,
			CatalogIndex: idx,
			FirstSeen:    g.first,
			LastSeen:     g.last,
		})
	}

	sort.Slice(instances, func(i, j int) bool {
		if instances[i].FirstSeen != instances[j].FirstSeen {
			return instances[i].FirstSeen < instances[j].FirstSeen
		}
		return instances[i].InstanceID < instances[j].InstanceID
	})

	return instances, warnings
}
