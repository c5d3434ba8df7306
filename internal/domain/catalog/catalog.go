// Package catalog resolves game-wide enemy ids to stable per-dungeon
// indices. A Catalog is plain data passed explicitly into the normalizer;
// there is no package-level default.
package catalog

import "sort"

// Actor describes one NPC from the report master data.
type Actor struct {
	ID     int    // report-local actor id
	GameID int    // game-wide NPC id
	Name   string
}

// Catalog maps enemy type ids to per-dungeon indices.
type Catalog struct {
	dungeonID int
	index     map[int]int
}

// Static builds a catalog from an explicit enemy-type to index table.
// The table is copied; the caller keeps ownership of its map.
func Static(dungeonID int, table map[int]int) *Catalog {
	index := make(map[int]int, len(table))
	for typeID, idx := range table {
		index[typeID] = idx
	}
	return &Catalog{dungeonID: dungeonID, index: index}
}

// FromActors derives a catalog from report master data. Distinct game ids
// are sorted ascending and indexed from 1, so the same report always yields
// the same catalog. Actors without a game id are ignored.
func FromActors(dungeonID int, actors []Actor) *Catalog {
	seen := make(map[int]struct{}, len(actors))
	ids := make([]int, 0, len(actors))
	for _, a := range actors {
		if a.GameID == 0 {
			continue
		}
		if _, ok := seen[a.GameID]; ok {
			continue
		}
		seen[a.GameID] = struct{}{}
		ids = append(ids, a.GameID)
	}
	sort.Ints(ids)

	index := make(map[int]int, len(ids))
	for i, id := range ids {
		index[id] = i + 1
	}
	return &Catalog{dungeonID: dungeonID, index: index}
}

// DungeonID returns the dungeon this catalog describes.
func (c *Catalog) DungeonID() int {
	return c.dungeonID
}

// Resolve returns the per-dungeon index for an enemy type id. The second
// return is false when the type is not part of this dungeon's catalog.
func (c *Catalog) Resolve(enemyType int) (int, bool) {
	idx, ok := c.index[enemyType]
	return idx, ok
}

// Len returns the number of enemy types the catalog knows.
func (c *Catalog) Len() int {
	return len(c.index)
}
