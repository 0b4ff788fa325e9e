package starshort

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streambox/streambox/provider/api/apitest"
	"github.com/streambox/streambox/source"
)

func TestStarShort(t *testing.T) {
	upstream := apitest.NewUpstream(map[string]apitest.Reply{
		"/starshort/api/v1/dramas/rising?offset=0&count=20":  apitest.JSON(`[{"id":"s1","title":"Rising Star","total_episodes":40}]`),
		"/starshort/api/v1/dramas/rising?offset=40&count=20": apitest.JSON(`{"code":0,"data":{"items":[{"id":"s9","title":"Page Three"}]}}`),
		"/starshort/api/v1/dramas/new?offset=0&count=20":     apitest.JSON(`{"code":5,"message":"maintenance"}`),
		"/starshort/api/v1/dramas/s1/episodes":               apitest.JSON(`{"drama_id":"s1","episodes":[{"episode":1,"free":true},{"episode":2,"free":false}]}`),
		"/starshort/api/v1/dramas/s1/episodes/1":             apitest.JSON(`{"video_url":"https://cdn/s1e1.m3u8","expires_in":"3600"}`),
		"/starshort/api/v1/dramas/s1/episodes/2": apitest.JSON(`{"videos":[
			{"definition":"540p","url":"https://cdn/540.mp4"},
			{"definition":"1080p","url":"https://cdn/1080.mp4"}
		]}`),
	})
	defer upstream.Close()

	src := New(upstream.Gateway())
	ctx := context.Background()

	Convey("Given the first page", t, func() {
		items, err := src.ListContent(ctx, source.Query{Mode: "rising", Page: 1})

		Convey("Then the bare array is listed", func() {
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)
			So(items[0].Badge, ShouldEqual, "40 Eps")
		})
	})

	Convey("Given the third page", t, func() {
		items, err := src.ListContent(ctx, source.Query{Mode: "rising", Page: 3})

		Convey("Then the offset is (page-1) * page size", func() {
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 1)
			So(items[0].ID, ShouldEqual, "s9")
		})
	})

	Convey("Given an upstream reporting a failure code", t, func() {
		_, err := src.ListContent(ctx, source.Query{Mode: "new", Page: 1})

		Convey("Then its message is surfaced", func() {
			var app *source.ApplicationError
			So(errors.As(err, &app), ShouldBeTrue)
			So(app.Message, ShouldEqual, "maintenance")
		})
	})

	Convey("Given a drama", t, func() {
		episodes, err := src.ListEpisodes(ctx, "s1")
		So(err, ShouldBeNil)
		So(episodes.Len(), ShouldEqual, 2)

		Convey("A single video url becomes one stream", func() {
			streams, err := src.ResolveStreams(ctx, "s1", episodes.At(0))
			So(err, ShouldBeNil)
			So(len(streams), ShouldEqual, 1)
			So(streams[0].Label, ShouldEqual, "Auto")
			So(streams[0].Default, ShouldBeTrue)
		})

		Convey("Definitions become streams with the first as default", func() {
			streams, err := src.ResolveStreams(ctx, "s1", episodes.At(1))
			So(err, ShouldBeNil)
			So(len(streams), ShouldEqual, 2)
			So(source.DefaultIndex(streams), ShouldEqual, 0)
		})

		Convey("An episode rebuilt from its key addresses the same upstream episode", func() {
			streams, err := src.ResolveStreams(ctx, "s1", &source.Episode{Key: "1"})
			So(err, ShouldBeNil)
			So(streams[0].Label, ShouldEqual, "Auto")
		})
	})
}
