package wcl

import (
	"context"
	"fmt"

	"github.com/veyra/wcl2mdt/internal/domain/catalog"
	"github.com/veyra/wcl2mdt/internal/domain/model"
	"github.com/veyra/wcl2mdt/pkg/logger"
	"github.com/veyra/wcl2mdt/pkg/metrics"
)

const eventsQuery = `
query($code: String!, $fights: [Int!]!, $startTime: Float, $limit: Int) {
  reportData {
    report(code: $code) {
      events(fightIDs: $fights, startTime: $startTime, limit: $limit, dataType: All) {
        data
        nextPageTimestamp
      }
    }
  }
}`

// wireEvent is the subset of a WCL event this adapter reads. Unknown fields
// are ignored on decode.
type wireEvent struct {
	Type           string  `json:"type"`
	Timestamp      int64   `json:"timestamp"`
	SourceID       int     `json:"sourceID"`
	SourceInstance int     `json:"sourceInstance"`
	TargetID       int     `json:"targetID"`
	TargetInstance int     `json:"targetInstance"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
}

// FightEvents fetches all events for one fight and maps them onto the
// pipeline's raw events. Pages are chained through nextPageTimestamp; events
// re-delivered at page boundaries are dropped via a bounded seen-set.
//
// Only events that reference a known NPC actor survive: damage taken by an
// NPC and deaths of an NPC keep the target as the unit, casts by an NPC keep
// the source. Everything else in the feed is player activity the pipeline
// has no use for.
func (c *Client) FightEvents(ctx context.Context, code string, fightID int, actors []catalog.Actor) ([]model.RawEvent, error) {
	npcType := make(map[int]int, len(actors))
	for _, a := range actors {
		if a.GameID != 0 {
			npcType[a.ID] = a.GameID
		}
	}

	seen := newSeenSet(c.dedupeSize)
	var out []model.RawEvent
	var startTime float64

	for {
		var data struct {
			ReportData struct {
				Report struct {
					Events struct {
						Data              []wireEvent `json:"data"`
						NextPageTimestamp *float64    `json:"nextPageTimestamp"`
					} `json:"events"`
				} `json:"report"`
			} `json:"reportData"`
		}
		vars := map[string]any{
			"code":      code,
			"fights":    []int{fightID},
			"startTime": startTime,
			"limit":     c.pageLimit,
		}
		if err := c.graphql(ctx, eventsQuery, vars, &data); err != nil {
			return nil, err
		}

		page := data.ReportData.Report.Events
		metrics.RecordFetchPage(len(page.Data))
		for _, ev := range page.Data {
			raw, ok := mapEvent(ev, npcType)
			if !ok {
				continue
			}
			if seen.seenAndRecord(eventKey(ev)) {
				metrics.RecordDuplicateEvent()
				continue
			}
			out = append(out, raw)
		}

		if page.NextPageTimestamp == nil || *page.NextPageTimestamp == 0 {
			break
		}
		startTime = *page.NextPageTimestamp
		c.log.Debug(ctx, "fetching next event page",
			logger.Int("eventsSoFar", len(out)),
			logger.Float64("startTime", startTime),
		)
	}

	c.log.Info(ctx, "fight events fetched",
		logger.String("report", code),
		logger.Int("fight", fightID),
		logger.Int("enemyEvents", len(out)),
	)
	return out, nil
}

// mapEvent converts one wire event to a pipeline raw event. The second
// return is false when the event does not concern a known NPC.
func mapEvent(ev wireEvent, npcType map[int]int) (model.RawEvent, bool) {
	var actorID, instance int
	var kind model.EventKind

	switch ev.Type {
	case "damage":
		actorID, instance = ev.TargetID, ev.TargetInstance
		kind = model.KindEngage
	case "cast":
		actorID, instance = ev.SourceID, ev.SourceInstance
		kind = model.KindEngage
	case "death":
		actorID, instance = ev.TargetID, ev.TargetInstance
		kind = model.KindDeath
	default:
		return model.RawEvent{}, false
	}

	gameID, ok := npcType[actorID]
	if !ok {
		return model.RawEvent{}, false
	}

	return model.RawEvent{
		UnitID:    fmt.Sprintf("%d.%d", actorID, instance),
		EnemyType: gameID,
		Kind:      kind,
		Timestamp: ev.Timestamp,
		X:         ev.X,
		Y:         ev.Y,
		HasPos:    ev.X != 0 || ev.Y != 0,
	}, true
}

// eventKey builds the identity under which an event is deduplicated. WCL
// events carry no id, so the key is the full actor/time coordinate; two
// genuinely distinct events colliding here differ in nothing the pipeline
// reads.
func eventKey(ev wireEvent) string {
	return fmt.Sprintf("%s|%d|%d.%d|%d.%d", ev.Type, ev.Timestamp, ev.SourceID, ev.SourceInstance, ev.TargetID, ev.TargetInstance)
}
