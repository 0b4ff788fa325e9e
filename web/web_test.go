package web

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIndex(t *testing.T) {
	Convey("The panel document is embedded", t, func() {
		So(bytes.HasPrefix(Index(), []byte("<!doctype html>")), ShouldBeTrue)
		So(string(Index()), ShouldContainSubstring, "/catalog")
	})
}
