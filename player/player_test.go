package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Known players are created by name", t, func() {
		p, err := New("MPV")
		So(err, ShouldBeNil)
		So(p, ShouldNotBeNil)

		_, err = New("winamp")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "mpv")
	})

	Convey("An unstarted player is not waiting", t, func() {
		p, _ := New(VLC)
		_, open := <-p.Wait()
		So(open, ShouldBeFalse)
		So(p.Close(), ShouldBeNil)
	})
}

func TestBinary(t *testing.T) {
	Convey("Process players name their executable", t, func() {
		So(Binary("mpv"), ShouldEqual, "mpv")
		So(Binary("VLC"), ShouldEqual, "vlc")
		So(Binary(System), ShouldBeEmpty)
		So(Binary(IINA), ShouldBeEmpty)
	})
}

func TestArguments(t *testing.T) {
	Convey("mpv receives the title and the stream last", t, func() {
		args := mpvArgs("https://cdn/v.mp4", "Ep 1")
		So(args, ShouldContain, "--force-media-title=Ep 1")
		So(args[len(args)-1], ShouldEqual, "https://cdn/v.mp4")
	})

	Convey("vlc exits after playing", t, func() {
		So(vlcArgs("https://cdn/v.mp4", "Ep 1"), ShouldContain, "--play-and-exit")
	})
}

func TestSanitize(t *testing.T) {
	Convey("Media targets must be http URLs", t, func() {
		_, err := sanitizeMediaTarget("https://cdn/v.m3u8")
		So(err, ShouldBeNil)

		for _, bad := range []string{"", "--script=x", "file:///etc/passwd", "https://cdn/\nv"} {
			_, err := sanitizeMediaTarget(bad)
			So(err, ShouldNotBeNil)
		}
	})

	Convey("Titles are flattened to one line", t, func() {
		So(sanitizeTitle(" Love\nStory\t\x00 "), ShouldEqual, "Love Story")
	})
}
