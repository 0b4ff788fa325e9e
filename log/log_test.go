package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/filesystem"
	"github.com/streambox/streambox/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Then nothing is enabled", func() {
			So(Enabled(), ShouldBeFalse)
			So(WithFields(map[string]any{"a": 1}), ShouldBeNil)
		})

		Convey("When attaching a writer", func() {
			var buf bytes.Buffer
			Attach(&buf)
			Info("gateway listening")

			Convey("Then entries reach the writer", func() {
				So(Enabled(), ShouldBeTrue)
				So(buf.String(), ShouldContainSubstring, "gateway listening")
			})
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup should open a log file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)
		})
	})
}

func TestPrune(t *testing.T) {
	Convey("Given four daily log files", t, func() {
		fs := filesystem.API()
		dir := filepath.Join("prune", "logs")
		lo.Must0(fs.MkdirAll(dir, 0o755))
		for _, day := range []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04"} {
			lo.Must0(fs.WriteFile(filepath.Join(dir, day+".log"), nil, 0o644))
		}
		lo.Must0(fs.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

		Convey("Keeping two removes the oldest ones", func() {
			So(prune(dir, 2), ShouldBeNil)
			entries := lo.Must(fs.ReadDir(dir))
			names := lo.Map(entries, func(e os.FileInfo, _ int) string { return e.Name() })
			So(names, ShouldResemble, []string{"2026-01-03.log", "2026-01-04.log", "notes.txt"})
		})

		Convey("Keeping zero keeps everything", func() {
			So(prune(dir, 0), ShouldBeNil)
			So(len(lo.Must(fs.ReadDir(dir))), ShouldEqual, 5)
		})
	})
}
