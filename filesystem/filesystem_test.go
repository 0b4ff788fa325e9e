package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("The backend can be switched", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")

		SetMemMapFs()
		So(API().Name(), ShouldEqual, "MemMapFS")
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the memory backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}

		Convey("Files written through GacheFs land on the backend", func() {
			So(fs.MkdirAll("cache/streambox", 0o755), ShouldBeNil)

			f, err := fs.OpenFile("cache/streambox/queries.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = io.WriteString(f.(io.Writer), `{"love":{}}`)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("cache/streambox/queries.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"love":{}}`)
		})
	})
}
