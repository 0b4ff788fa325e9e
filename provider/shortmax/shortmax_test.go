package shortmax

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streambox/streambox/provider/api/apitest"
	"github.com/streambox/streambox/source"
)

func TestShortMax(t *testing.T) {
	upstream := apitest.NewUpstream(map[string]apitest.Reply{
		"/shortmax/api/v1/home?page=1&lang=id": apitest.JSON(`{"data":[
			{"id":101,"name":"CEO's Secret","cover":"https://img/101.jpg","episodes":60},
			{"id":101,"name":"CEO's Secret (dup)"},
			{"id":102,"name":"Second Chance"}
		]}`),
		"/shortmax/api/v1/search?q=ceo&page=1": apitest.JSON(`{"data":[{"id":101,"name":"CEO's Secret"}]}`),
		"/shortmax/api/v1/episodes/101":        apitest.JSON(`{"data":[{"id":9,"episode":2,"locked":false},{"id":8,"episode":1,"locked":false}]}`),
		"/shortmax/api/v1/play/101?ep=2":       apitest.JSON(`{"data":{"video":{"video_1080":"https://cdn/1080.mp4","video_720":"//cdn/720.mp4","video_480":""}}}`),
		"/shortmax/api/v1/play/101?ep=1":       apitest.JSON(`{"data":{"video":{"video_480":"https://cdn/480.mp4"}}}`),
		"/shortmax/api/v1/play/102?ep=1":       apitest.JSON(`{"data":{"video":{}}}`),
	})
	defer upstream.Close()

	src := New(upstream.Gateway())
	ctx := context.Background()

	Convey("Given the home listing", t, func() {
		items, err := src.ListContent(ctx, source.Query{Mode: "home"})

		Convey("Then duplicates are dropped", func() {
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 2)
			So(items[0].ID, ShouldEqual, "101")
			So(items[0].Badge, ShouldEqual, "60 Eps")
			So(items[1].Title, ShouldEqual, "Second Chance")
		})
	})

	Convey("Given a search", t, func() {
		items, err := src.ListContent(ctx, source.Query{Mode: "search", Page: 1, Text: "ceo"})
		So(err, ShouldBeNil)
		So(len(items), ShouldEqual, 1)
	})

	Convey("Given the episodes of a drama", t, func() {
		episodes, err := src.ListEpisodes(ctx, "101")
		So(err, ShouldBeNil)

		Convey("Then they are numbered from 1 in order", func() {
			So(episodes.Len(), ShouldEqual, 2)
			So(episodes.At(0).Label, ShouldEqual, "Ep 1")
			So(episodes.At(1).Ordinal, ShouldEqual, 2)
		})

		Convey("When resolving an episode with several renditions", func() {
			streams, err := src.ResolveStreams(ctx, "101", episodes.At(1))

			Convey("Then 720p is the default and urls are absolute", func() {
				So(err, ShouldBeNil)
				So(len(streams), ShouldEqual, 2)
				So(streams[1].URL, ShouldEqual, "https://cdn/720.mp4")
				So(source.DefaultIndex(streams), ShouldEqual, 1)
			})
		})

		Convey("When 720p is missing", func() {
			streams, err := src.ResolveStreams(ctx, "101", episodes.At(0))

			Convey("Then the first rendition is the default", func() {
				So(err, ShouldBeNil)
				So(streams[0].Label, ShouldEqual, "480p")
				So(streams[0].Default, ShouldBeTrue)
			})
		})
	})

	Convey("Given an episode rebuilt from its key", t, func() {
		streams, err := src.ResolveStreams(ctx, "101", &source.Episode{Key: "2"})
		So(err, ShouldBeNil)
		So(streams[0].URL, ShouldEqual, "https://cdn/1080.mp4")
	})

	Convey("Given an episode without renditions", t, func() {
		_, err := src.ResolveStreams(ctx, "102", &source.Episode{Ordinal: 1, Key: "1"})
		So(errors.Is(err, source.ErrEmpty), ShouldBeTrue)
	})
}
