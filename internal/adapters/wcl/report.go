package wcl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/veyra/wcl2mdt/internal/domain/catalog"
	"github.com/veyra/wcl2mdt/pkg/logger"
)

// reportCodeLength is the fixed length of a WCL report code.
const reportCodeLength = 16

// Fight is one recorded encounter in a report.
type Fight struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	StartTime     float64 `json:"startTime"`
	KeystoneLevel *int    `json:"keystoneLevel"`
}

// Keystone reports whether this fight is a keystone dungeon run.
func (f Fight) Keystone() bool {
	return f.KeystoneLevel != nil
}

// Overview carries the per-report data needed before fetching events: the
// zone, the fight list and the NPC master data.
type Overview struct {
	ZoneID int
	Fights []Fight
	Actors []catalog.Actor
}

const overviewQuery = `
query($code: String!) {
  reportData {
    report(code: $code) {
      zone {
        id
      }
      masterData {
        actors(type: "NPC") {
          id
          name
          gameID
        }
      }
      fights {
        id
        name
        startTime
        keystoneLevel
      }
    }
  }
}`

// ReportOverview fetches zone, master data and the fight list for a report.
func (c *Client) ReportOverview(ctx context.Context, code string) (*Overview, error) {
	var data struct {
		ReportData struct {
			Report struct {
				Zone struct {
					ID int `json:"id"`
				} `json:"zone"`
				MasterData struct {
					Actors []struct {
						ID     int    `json:"id"`
						Name   string `json:"name"`
						GameID int    `json:"gameID"`
					} `json:"actors"`
				} `json:"masterData"`
				Fights []Fight `json:"fights"`
			} `json:"report"`
		} `json:"reportData"`
	}
	if err := c.graphql(ctx, overviewQuery, map[string]any{"code": code}, &data); err != nil {
		return nil, err
	}

	report := data.ReportData.Report
	ov := &Overview{
		ZoneID: report.Zone.ID,
		Fights: report.Fights,
		Actors: make([]catalog.Actor, 0, len(report.MasterData.Actors)),
	}
	for _, a := range report.MasterData.Actors {
		ov.Actors = append(ov.Actors, catalog.Actor{ID: a.ID, GameID: a.GameID, Name: a.Name})
	}

	c.log.Info(ctx, "report overview fetched",
		logger.String("report", code),
		logger.Int("zone", ov.ZoneID),
		logger.Int("fights", len(ov.Fights)),
		logger.Int("npcActors", len(ov.Actors)),
	)
	return ov, nil
}

// SelectFight resolves a fight selector against the report's fight list.
// "last" (or empty) picks the last keystone fight, falling back to the
// literal last fight when the report has none; anything else must be a
// numeric fight id present in the report.
func (c *Client) SelectFight(fights []Fight, selector string) (Fight, error) {
	if len(fights) == 0 {
		return Fight{}, ErrNoFights
	}

	if selector == "" || selector == "last" {
		for i := len(fights) - 1; i >= 0; i-- {
			if fights[i].Keystone() {
				return fights[i], nil
			}
		}
		return fights[len(fights)-1], nil
	}

	id, err := strconv.Atoi(selector)
	if err != nil {
		return Fight{}, fmt.Errorf("%w: selector %q must be \"last\" or a number", ErrFightNotFound, selector)
	}
	for _, f := range fights {
		if f.ID == id {
			return f, nil
		}
	}
	return Fight{}, fmt.Errorf("%w: id %d", ErrFightNotFound, id)
}

// ParseReportURL extracts the 16-character report code from a pasted report
// URL, e.g. https://www.warcraftlogs.com/reports/<code>#fight=3. A bare
// report code is accepted as-is.
func ParseReportURL(raw string) (string, error) {
	code := raw
	if i := strings.Index(code, "/reports/"); i >= 0 {
		code = code[i+len("/reports/"):]
	}
	if i := strings.IndexAny(code, "?#/"); i >= 0 {
		code = code[:i]
	}
	if len(code) != reportCodeLength {
		return "", fmt.Errorf("%w: %q", ErrBadReportURL, raw)
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			continue
		}
		return "", fmt.Errorf("%w: %q", ErrBadReportURL, raw)
	}
	return code, nil
}
