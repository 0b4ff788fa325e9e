package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/filesystem"
	"github.com/streambox/streambox/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given remembered queries", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)
		So(Clear(), ShouldBeNil)

		So(Remember("Love Contract", "dramabox", 1), ShouldBeNil)
		So(Remember("love story", "dramaid", 5), ShouldBeNil)
		So(Remember("  LOVE STORY ", "dramabox", 1), ShouldBeNil)
		So(Remember("   ", "dramabox", 1), ShouldBeNil)

		Convey("Then matching suggestions are ranked by use", func() {
			So(SuggestMany("lov"), ShouldResemble, []string{"love story", "love contract"})
			So(Suggest("ctr").OrEmpty(), ShouldEqual, "love contract")
		})

		Convey("Then sources are tracked per query", func() {
			So(load()["love story"].Sources, ShouldResemble, []string{"dramaid", "dramabox"})
			So(len(load()), ShouldEqual, 2)
		})

		Convey("When suggestions are disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("lov"), ShouldBeEmpty)
			So(Suggest("lov").IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Input is normalized", t, func() {
		So(sanitize("  NARUTO  "), ShouldEqual, "naruto")
	})
}
