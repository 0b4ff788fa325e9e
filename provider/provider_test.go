package provider

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streambox/streambox/provider/api/apitest"
)

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When getting a provider by name", t, func() {
		p, ok := Get("dramabox")
		Convey("Then it is found regardless of case", func() {
			So(ok, ShouldBeTrue)
			So(p.Name, ShouldEqual, "DramaBox")

			p, ok = Get("TENSEI")
			So(ok, ShouldBeTrue)
			So(p.ID, ShouldEqual, "tensei")
		})
	})
}

func TestClosest(t *testing.T) {
	Convey("A misspelled id suggests the nearest provider", t, func() {
		So(Closest("dramabx").ID, ShouldEqual, "dramabox")
		So(Closest("Tensai").ID, ShouldEqual, "tensei")
		So(Closest("movibox").ID, ShouldEqual, "moviebox")
	})
}

func TestBuiltins(t *testing.T) {
	upstream := apitest.NewUpstream(nil)
	defer upstream.Close()

	Convey("Given every built-in provider", t, func() {
		sources := Sources(upstream.Gateway())

		Convey("Ids are unique and match their sources", func() {
			So(len(sources), ShouldEqual, len(Builtins()))
			for _, p := range Builtins() {
				src := sources[p.ID]
				So(src, ShouldNotBeNil)
				So(src.ID(), ShouldEqual, p.ID)
				So(src.Name(), ShouldEqual, p.Name)
				So(len(src.Modes()), ShouldBeGreaterThan, 0)
			}
		})

		Convey("Every source offers a search mode", func() {
			for _, src := range sources {
				modes := src.Modes()
				found := false
				for _, m := range modes {
					found = found || m.Search
				}
				So(found, ShouldBeTrue)
			}
		})
	})

	Convey("IDs lists providers in display order", t, func() {
		So(IDs(), ShouldResemble, []string{"dramabox", "shortmax", "starshort", "tensei", "dramaid", "moviebox"})
	})
}
