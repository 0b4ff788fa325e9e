package dramabox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streambox/streambox/provider/api/apitest"
	"github.com/streambox/streambox/source"
)

func listing(n int) string {
	items := make([]string, 0, n+1)
	items = append(items, `{"bookId":"b0","bookName":"First","cover":"https://img/0.jpg","chapterCount":80}`)
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(`{"bookId":"b%d","bookName":"Drama %d"}`, i, i))
	}
	return `{"data":{"list":[` + strings.Join(items, ",") + `]}}`
}

func TestListContent(t *testing.T) {
	upstream := apitest.NewUpstream(map[string]apitest.Reply{
		"/dramabox/api/foryou/2?lang=in":            apitest.JSON(listing(30)),
		"/dramabox/api/search/love story/1?lang=in": apitest.JSON(`{"data":{"list":[{"id":7,"title":"Love Story"}]}}`),
	})
	defer upstream.Close()

	src := New(upstream.Gateway())
	ctx := context.Background()

	Convey("Given the foryou listing", t, func() {
		items, err := src.ListContent(ctx, source.Query{Mode: "foryou", Page: 2})

		Convey("Then it is deduplicated, truncated and mapped", func() {
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, source.ListLimit)
			So(items[0].Title, ShouldEqual, "First")
			So(items[0].Badge, ShouldEqual, "80 Eps")
			So(items[1].ID, ShouldEqual, "b1")
			So(items[1].Badge, ShouldEqual, "- Eps")
			So(items[1].Source, ShouldEqual, ID)
		})
	})

	Convey("Given a search with spaces", t, func() {
		items, err := src.ListContent(ctx, source.Query{Mode: "search", Page: 1, Text: "love story"})

		Convey("Then the query is sent as a path segment", func() {
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)
			So(items[0].ID, ShouldEqual, "7")
			So(items[0].Title, ShouldEqual, "Love Story")
		})
	})

	Convey("Given an unknown mode", t, func() {
		before := len(upstream.Hits())
		_, err := src.ListContent(ctx, source.Query{Mode: "trending", Page: 1})

		Convey("Then it fails without contacting the upstream", func() {
			So(errors.Is(err, source.ErrUnknownMode), ShouldBeTrue)
			So(len(upstream.Hits()), ShouldEqual, before)
		})
	})
}

func TestEpisodesAndStreams(t *testing.T) {
	upstream := apitest.NewUpstream(map[string]apitest.Reply{
		"/dramabox/api/chapters/42?lang=in": apitest.JSON(`{"data":{"chapterList":[
			{"chapterIndex":2},{"chapterIndex":0},{"chapterIndex":"oops"},{"chapterIndex":"1"}
		]}}`),
		"/dramabox/api/chapters/empty?lang=in": apitest.JSON(`{"data":{"chapterList":[]}}`),
		"/dramabox/api/watch/player?bookId=42&index=1": apitest.JSON(`{"success":true,"data":{"qualities":[
			{"quality":1080,"videoPath":"//cdn.example.com/a.mp4","isDefault":0},
			{"quality":720,"videoUrl":"https://cdn.example.com/b.mp4","isDefault":1}
		]}}`),
		"/dramabox/api/watch/player?bookId=42&index=2": apitest.JSON(`{"success":false}`),
		"/dramabox/api/chapters/broken?lang=in":         {Status: 500, Body: `oops`},
	})
	defer upstream.Close()

	src := New(upstream.Gateway())
	ctx := context.Background()

	Convey("Given a chapter list", t, func() {
		episodes, err := src.ListEpisodes(ctx, "42")

		Convey("Then non-numeric chapters are dropped and the rest sorted", func() {
			So(err, ShouldBeNil)
			So(episodes.ContentID, ShouldEqual, "42")
			So(episodes.Len(), ShouldEqual, 3)
			So(episodes.At(0).Label, ShouldEqual, "Ep 1")
			So(episodes.At(1).Ordinal, ShouldEqual, 1)
			So(episodes.At(2).Key, ShouldEqual, "2")
		})

		Convey("When resolving the second episode", func() {
			streams, err := src.ResolveStreams(ctx, episodes.ContentID, episodes.At(1))

			Convey("Then flagged qualities are the default", func() {
				So(err, ShouldBeNil)
				So(len(streams), ShouldEqual, 2)
				So(streams[0].Label, ShouldEqual, "1080p")
				So(streams[0].URL, ShouldEqual, "https://cdn.example.com/a.mp4")
				So(source.DefaultIndex(streams), ShouldEqual, 1)
			})
		})

		Convey("When the player reports failure", func() {
			_, err := src.ResolveStreams(ctx, episodes.ContentID, episodes.At(2))

			Convey("Then an application error is returned", func() {
				var app *source.ApplicationError
				So(errors.As(err, &app), ShouldBeTrue)
			})
		})
	})

	Convey("Given an empty chapter list", t, func() {
		_, err := src.ListEpisodes(ctx, "empty")
		So(errors.Is(err, source.ErrEmpty), ShouldBeTrue)
	})

	Convey("Given an upstream failure", t, func() {
		_, err := src.ListEpisodes(ctx, "broken")

		Convey("Then the status is reported", func() {
			var transport *source.TransportError
			So(errors.As(err, &transport), ShouldBeTrue)
			So(transport.Status, ShouldEqual, 500)
			So(err.Error(), ShouldEqual, "HTTP 500")
		})
	})
}
