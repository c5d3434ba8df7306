package normalize_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veyra/wcl2mdt/internal/domain/catalog"
	"github.com/veyra/wcl2mdt/internal/domain/model"
	"github.com/veyra/wcl2mdt/internal/domain/normalize"
)

func testCatalog() *catalog.Catalog {
	return catalog.Static(503, map[int]int{100: 1, 200: 2})
}

func TestNormalize(t *testing.T) {
	Convey("Given a normalizer over a two-enemy catalog", t, func() {
		n := normalize.New(testCatalog())
		ctx := context.Background()

		Convey("When events for one unit arrive out of order", func() {
			events := []model.RawEvent{
				{UnitID: "7.1", EnemyType: 100, Kind: model.KindEngage, Timestamp: 500},
				{UnitID: "7.1", EnemyType: 100, Kind: model.KindAppear, Timestamp: 100},
				{UnitID: "7.1", EnemyType: 100, Kind: model.KindDeath, Timestamp: 900},
			}
			instances, warnings := n.Normalize(ctx, events)

			Convey("Then one instance spans the min and max timestamps", func() {
				So(warnings, ShouldBeEmpty)
				So(instances, ShouldHaveLength, 1)
				So(instances[0].InstanceID, ShouldEqual, "7.1")
				So(instances[0].CatalogIndex, ShouldEqual, 1)
				So(instances[0].FirstSeen, ShouldEqual, 100)
				So(instances[0].LastSeen, ShouldEqual, 900)
			})
		})

		Convey("When units of different types interleave", func() {
			events := []model.RawEvent{
				{UnitID: "8.1", EnemyType: 200, Kind: model.KindEngage, Timestamp: 300},
				{UnitID: "7.1", EnemyType: 100, Kind: model.KindEngage, Timestamp: 100},
				{UnitID: "8.1", EnemyType: 200, Kind: model.KindDeath, Timestamp: 700},
				{UnitID: "7.1", EnemyType: 100, Kind: model.KindDeath, Timestamp: 400},
			}
			instances, warnings := n.Normalize(ctx, events)

			Convey("Then instances come back sorted by first appearance", func() {
				So(warnings, ShouldBeEmpty)
				So(instances, ShouldHaveLength, 2)
				So(instances[0].InstanceID, ShouldEqual, "7.1")
				So(instances[1].InstanceID, ShouldEqual, "8.1")
				So(instances[1].CatalogIndex, ShouldEqual, 2)
			})
		})

		Convey("When a unit's type is not in the catalog", func() {
			events := []model.RawEvent{
				{UnitID: "7.1", EnemyType: 100, Kind: model.KindEngage, Timestamp: 100},
				{UnitID: "9.1", EnemyType: 999, Kind: model.KindEngage, Timestamp: 150},
				{UnitID: "9.1", EnemyType: 999, Kind: model.KindDeath, Timestamp: 250},
			}
			instances, warnings := n.Normalize(ctx, events)

			Convey("Then the unit is skipped and surfaced as a warning", func() {
				So(instances, ShouldHaveLength, 1)
				So(instances[0].InstanceID, ShouldEqual, "7.1")
				So(warnings, ShouldHaveLength, 1)
				So(warnings[0].InstanceID, ShouldEqual, "9.1")
				So(warnings[0].EnemyType, ShouldEqual, 999)
				So(errors.Is(warnings[0], normalize.ErrUnknownEnemy), ShouldBeTrue)
			})
		})

		Convey("When there are no events", func() {
			instances, warnings := n.Normalize(ctx, nil)

			Convey("Then there are no instances and no warnings", func() {
				So(instances, ShouldBeEmpty)
				So(warnings, ShouldBeEmpty)
			})
		})

		Convey("When two units first appear at the same time", func() {
			events := []model.RawEvent{
				{UnitID: "9.1", EnemyType: 100, Kind: model.KindEngage, Timestamp: 100},
				{UnitID: "7.1", EnemyType: 100, Kind: model.KindEngage, Timestamp: 100},
			}
			first, _ := n.Normalize(ctx, events)
			second, _ := n.Normalize(ctx, events)

			Convey("Then ties break on instance id and repeat runs agree", func() {
				So(first[0].InstanceID, ShouldEqual, "7.1")
				So(first, ShouldResemble, second)
			})
		})
	})
}
