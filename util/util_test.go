package util

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streambox/streambox/filesystem"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "source", "sources"), ShouldEqual, "1 source")
		So(Quantify(6, "source", "sources"), ShouldEqual, "6 sources")
		So(Quantify(0, "source", "sources"), ShouldEqual, "0 sources")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("already at last episode"), ShouldEqual, "Already at last episode")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMin(t *testing.T) {
	Convey("Min", t, func() {
		So(Min(3, 1, 2), ShouldEqual, 1)
		So(Min[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	filesystem.SetMemMapFs()

	Convey("Given a directory with a file", t, func() {
		fs := filesystem.API()
		dir := filepath.Join("cache", "streambox")
		So(fs.MkdirAll(dir, 0o755), ShouldBeNil)
		So(fs.WriteFile(filepath.Join(dir, "queries.json"), []byte("{}"), 0o644), ShouldBeNil)

		Convey("Deleting a file keeps the directory", func() {
			So(Delete(filepath.Join(dir, "queries.json")), ShouldBeNil)
			exists, _ := fs.Exists(dir)
			So(exists, ShouldBeTrue)
		})

		Convey("Deleting the directory removes everything", func() {
			So(Delete(dir), ShouldBeNil)
			exists, _ := fs.Exists(dir)
			So(exists, ShouldBeFalse)
		})

		Convey("A missing path is an error", func() {
			So(Delete("nowhere"), ShouldNotBeNil)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)

		item, ok := s.Pop()
		So(item, ShouldEqual, 2)
		So(ok, ShouldBeTrue)

		item, _ = s.Pop()
		So(item, ShouldEqual, 1)

		item, ok = s.Pop()
		So(item, ShouldEqual, 0)
		So(ok, ShouldBeFalse)

		s.Push(3)
		s.Clear()
		So(s.Len(), ShouldEqual, 0)
	})
}
