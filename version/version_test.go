package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streambox/streambox/filesystem"
)

func TestCompare(t *testing.T) {
	Convey("Versions compare component-wise", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"0.3.0", "0.3.0", 0},
			{"v0.4.0", "0.3.9", 1},
			{"1.0.0", "1.0.1", -1},
			{"0.10.0", "0.9.0", 1},
		}
		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}
	})

	Convey("Malformed versions are an error", t, func() {
		_, err := Compare("latest", "0.1.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	filesystem.SetMemMapFs()

	Convey("Given a releases endpoint", t, func() {
		hits := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			_, _ = w.Write([]byte(`{"tag_name":"v1.2.3"}`))
		}))
		defer server.Close()

		previous := ReleasesURL
		ReleasesURL = server.URL
		defer func() { ReleasesURL = previous }()
		_ = versionCacher.Set("")

		Convey("The tag is returned without its prefix and cached", func() {
			ver, err := Latest()
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.2.3")

			ver, err = Latest()
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.2.3")
			So(hits, ShouldEqual, 1)
		})
	})
}
