package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncate(t *testing.T) {
	Convey("Given a long line", t, func() {
		line := "Fated To Love You"

		Convey("It is cut to the width with an ellipsis", func() {
			So(Truncate(8)(line), ShouldEqual, "Fated T…")
		})

		Convey("Short lines are kept", func() {
			So(Truncate(40)(line), ShouldEqual, line)
		})

		Convey("A non-positive width disables truncation", func() {
			So(Truncate(0)(line), ShouldEqual, line)
		})
	})
}

func TestBadge(t *testing.T) {
	Convey("An empty badge renders nothing", t, func() {
		So(Badge(""), ShouldBeEmpty)
	})

	Convey("A badge keeps its text", t, func() {
		So(Badge("Ongoing"), ShouldContainSubstring, "Ongoing")
	})
}
