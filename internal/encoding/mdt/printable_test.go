package mdt

import (
	"bytes"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veyra/wcl2mdt/internal/domain/model"
)

func TestPrintableEncoding(t *testing.T) {
	Convey("Given the printable byte mapping", t, func() {
		Convey("Then known vectors encode as expected", func() {
			So(encodeForPrint(nil), ShouldEqual, "")
			So(encodeForPrint([]byte{0}), ShouldEqual, "aa")
			So(encodeForPrint([]byte{255}), ShouldEqual, ")d")
			So(encodeForPrint([]byte{1, 2, 3}), ShouldEqual, "biWa")
		})

		Convey("Then encoding uses only the closed alphabet", func() {
			data := make([]byte, 256)
			for i := range data {
				data[i] = byte(i)
			}
			s := encodeForPrint(data)
			for i := 0; i < len(s); i++ {
				So(sixBitValue[s[i]], ShouldBeGreaterThanOrEqualTo, 0)
			}
		})

		Convey("Then decoding inverts encoding for every remainder length", func() {
			rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test data
			for _, n := range []int{1, 2, 3, 4, 5, 6, 100, 257} {
				data := make([]byte, n)
				rng.Read(data)
				decoded, err := decodeForPrint(encodeForPrint(data))
				So(err, ShouldBeNil)
				So(bytes.Equal(decoded, data), ShouldBeTrue)
			}
		})

		Convey("Then characters outside the alphabet are rejected", func() {
			_, err := decodeForPrint("ab!c")
			So(err, ShouldNotBeNil)
			_, err = decodeForPrint("ab c")
			So(err, ShouldNotBeNil)
		})

		Convey("Then impossible lengths are rejected", func() {
			_, err := decodeForPrint("abcde")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSerializeCanonical(t *testing.T) {
	Convey("Given a plan with two pulls", t, func() {
		p := model.PullPlan{
			Pulls: []model.PullComposition{
				{5: 1, 3: 2},
				{1: 1},
			},
			Dungeon: 503,
			Week:    1,
			Name:    "Imported from WCL",
		}

		Convey("Then serialization is canonical and whitespace-free", func() {
			want := `{["pulls"]={[1]={["npcs"]={{["id"]=3,["count"]=2},{["id"]=5,["count"]=1}}},[2]={["npcs"]={{["id"]=1,["count"]=1}}}},["dungeon"]=503,["week"]=1,["version"]=2,["name"]="Imported from WCL"}`
			So(serialize(p), ShouldEqual, want)
		})

		Convey("Then map iteration order cannot leak into the output", func() {
			first := serialize(p)
			for i := 0; i < 20; i++ {
				So(serialize(p), ShouldEqual, first)
			}
		})
	})

	Convey("Given an empty plan", t, func() {
		p := model.PullPlan{Dungeon: 0, Week: 1, Name: "Imported from WCL"}

		Convey("Then the pulls table is empty but present", func() {
			So(serialize(p), ShouldEqual, `{["pulls"]={},["dungeon"]=0,["week"]=1,["version"]=2,["name"]="Imported from WCL"}`)
		})
	})

	Convey("Given a name needing escaping", t, func() {
		p := model.PullPlan{Week: 1, Name: `say "pull"` + "\n" + `\now`}

		Convey("Then the name is quoted as a Lua string literal", func() {
			So(serialize(p), ShouldContainSubstring, `["name"]="say \"pull\"\n\\now"`)
		})
	})
}
