package mdt_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veyra/wcl2mdt/internal/domain/model"
	"github.com/veyra/wcl2mdt/internal/encoding/mdt"
)

func samplePlan() model.PullPlan {
	return model.PullPlan{
		Pulls: []model.PullComposition{
			{1: 3},
			{2: 1, 4: 2},
			{1: 1, 2: 1, 3: 1},
		},
		Dungeon: 503,
		Week:    1,
		Name:    "Imported from WCL",
	}
}

func TestEncode(t *testing.T) {
	Convey("Given a pull plan", t, func() {
		p := samplePlan()

		Convey("When encoding it", func() {
			export, err := mdt.Encode(p)

			Convey("Then the string is headed and printable", func() {
				So(err, ShouldBeNil)
				So(strings.HasPrefix(export, "!"), ShouldBeTrue)
				So(export, ShouldNotContainSubstring, " ")
				So(export, ShouldNotContainSubstring, "\n")
			})

			Convey("Then encoding twice is byte-identical", func() {
				again, err := mdt.Encode(p)
				So(err, ShouldBeNil)
				So(again, ShouldEqual, export)
			})
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Given plans of every shape", t, func() {
		plans := map[string]model.PullPlan{
			"typical": samplePlan(),
			"empty": {
				Pulls: []model.PullComposition{},
				Week:  1,
				Name:  "Imported from WCL",
			},
			"single pull": {
				Pulls:   []model.PullComposition{{7: 1}},
				Dungeon: 12,
				Week:    3,
				Name:    "fortified",
			},
			"quoted name": {
				Pulls:   []model.PullComposition{{1: 2}},
				Dungeon: 1,
				Week:    1,
				Name:    `the "skip" route \o/`,
			},
		}

		for label, p := range plans {
			Convey("When round-tripping the "+label+" plan", func() {
				export, err := mdt.Encode(p)
				So(err, ShouldBeNil)

				decoded, err := mdt.Decode(export)

				Convey("Then decoding reproduces the plan exactly", func() {
					So(err, ShouldBeNil)
					So(decoded, ShouldResemble, p)
				})
			})
		}
	})
}

func TestDecodeRejections(t *testing.T) {
	Convey("Given malformed export strings", t, func() {
		Convey("Then a missing header is rejected", func() {
			export, err := mdt.Encode(samplePlan())
			So(err, ShouldBeNil)
			_, err = mdt.Decode(export[1:])
			So(errors.Is(err, mdt.ErrDecode), ShouldBeTrue)
		})

		Convey("Then characters outside the alphabet are rejected", func() {
			_, err := mdt.Decode("!abc_def")
			So(errors.Is(err, mdt.ErrDecode), ShouldBeTrue)
		})

		Convey("Then non-DEFLATE payloads are rejected", func() {
			_, err := mdt.Decode("!aaaaaaaaaaaa")
			So(errors.Is(err, mdt.ErrDecode), ShouldBeTrue)
		})

		Convey("Then a truncated string is rejected, not mis-decoded", func() {
			export, err := mdt.Encode(samplePlan())
			So(err, ShouldBeNil)
			_, err = mdt.Decode(export[:len(export)/2])
			So(err, ShouldNotBeNil)
		})
	})
}
