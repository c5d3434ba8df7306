package plan_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veyra/wcl2mdt/internal/domain/model"
	"github.com/veyra/wcl2mdt/internal/domain/plan"
)

func TestBuild(t *testing.T) {
	ctx := context.Background()

	Convey("Given segmented pulls", t, func() {
		pulls := []model.Pull{
			{
				Instances: []model.EnemyInstance{
					{InstanceID: "a", CatalogIndex: 3},
					{InstanceID: "b", CatalogIndex: 3},
					{InstanceID: "c", CatalogIndex: 5},
				},
				StartTime: 0, EndTime: 5000,
			},
			{
				Instances: []model.EnemyInstance{
					{InstanceID: "d", CatalogIndex: 1},
				},
				StartTime: 20000, EndTime: 22000,
			},
		}

		Convey("When building with explicit metadata", func() {
			b := plan.New(plan.WithDungeon(503), plan.WithWeek(2), plan.WithName("tyrannical route"))
			p := b.Build(ctx, pulls)

			Convey("Then instances of the same kind collapse into one count", func() {
				So(p.Pulls, ShouldHaveLength, 2)
				So(p.Pulls[0], ShouldResemble, model.PullComposition{3: 2, 5: 1})
				So(p.Pulls[1], ShouldResemble, model.PullComposition{1: 1})
			})

			Convey("Then pull order is preserved verbatim", func() {
				So(p.Enemies(), ShouldEqual, 4)
				So(p.Pulls[1].Total(), ShouldEqual, 1)
			})

			Convey("Then the metadata is recorded", func() {
				So(p.Dungeon, ShouldEqual, 503)
				So(p.Week, ShouldEqual, 2)
				So(p.Name, ShouldEqual, "tyrannical route")
			})
		})

		Convey("When building with defaults", func() {
			p := plan.New().Build(ctx, pulls)

			Convey("Then week and name fall back to their defaults", func() {
				So(p.Week, ShouldEqual, 1)
				So(p.Name, ShouldEqual, "Imported from WCL")
				So(p.Dungeon, ShouldEqual, 0)
			})
		})

		Convey("When building from no pulls", func() {
			p := plan.New(plan.WithDungeon(503)).Build(ctx, nil)

			Convey("Then the plan is valid and empty", func() {
				So(p.Empty(), ShouldBeTrue)
				So(p.Pulls, ShouldNotBeNil)
				So(p.Dungeon, ShouldEqual, 503)
			})
		})
	})
}
