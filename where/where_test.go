package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/streambox/streambox/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Preferences() should live in the config directory", func() {
			So(filepath.Dir(Preferences()), ShouldEqual, Config())
		})

		Convey("Config path can be overridden", func() {
			t.Setenv(EnvConfigPath, "/tmp/streambox-test-config")
			So(Config(), ShouldEqual, "/tmp/streambox-test-config")
			So(lo.Must(filesystem.API().IsDir("/tmp/streambox-test-config")), ShouldBeTrue)
		})
	})
}
