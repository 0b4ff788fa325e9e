package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/streambox/streambox/source"
)

type stubSource struct {
	queries []source.Query
}

func (*stubSource) Name() string { return "Stub" }
func (*stubSource) ID() string   { return "stub" }

func (*stubSource) Modes() []source.Mode {
	return []source.Mode{{ID: "home"}, {ID: "search", Search: true}}
}

func (s *stubSource) ListContent(_ context.Context, q source.Query) ([]*source.Item, error) {
	s.queries = append(s.queries, q)
	return []*source.Item{
		{ID: "a", Title: "Alpha", Source: "stub"},
		{ID: "b", Title: "Beta", Source: "stub"},
	}, nil
}

func (*stubSource) ListEpisodes(_ context.Context, id string) (*source.Episodes, error) {
	list := make([]*source.Episode, 3)
	for i := range list {
		list[i] = &source.Episode{Ordinal: i + 1, Key: fmt.Sprint(i + 1), Label: source.EpisodeLabel(i + 1)}
	}
	return &source.Episodes{ContentID: "fixed-" + id, List: list}, nil
}

func (*stubSource) ResolveStreams(_ context.Context, id string, ep *source.Episode) ([]*source.Stream, error) {
	if ep.Key == "2" {
		return nil, &source.EmptyResultError{What: source.StreamUnavailable}
	}
	return []*source.Stream{
		{Label: "480p", URL: "https://cdn/" + id + "/" + ep.Key + "/480"},
		{Label: "720p", URL: "https://cdn/" + id + "/" + ep.Key + "/720", Default: true},
	}, nil
}

type fixedPreference string

func (f fixedPreference) Preferred(_, _ string) mo.Option[string] { return mo.Some(string(f)) }
func (fixedPreference) Save(_, _, _, _ string) error             { return nil }

func TestPickers(t *testing.T) {
	items := []*source.Item{{ID: "a", Title: "Alpha"}, {ID: "b", Title: "Beta"}}

	Convey("Item pickers", t, func() {
		for kind, want := range map[string]string{"first": "a", "last": "b", "1": "b", "9": "b"} {
			picker, err := ParseItemPicker(kind, "")
			So(err, ShouldBeNil)
			So(picker(items).ID, ShouldEqual, want)
		}

		exact, _ := ParseItemPicker("exact", "beta")
		So(exact(items).ID, ShouldEqual, "b")

		_, err := ParseItemPicker("random", "")
		So(err, ShouldNotBeNil)
	})

	Convey("Episode filters", t, func() {
		episodes := []*source.Episode{{Label: "Ep 1"}, {Label: "Ep 2"}, {Label: "Ep 3"}, {Label: "Ep 10"}}
		cases := map[string][]int{
			"first": {0},
			"last":  {3},
			"all":   {0, 1, 2, 3},
			"1-2":   {1, 2},
			"2-99":  {2, 3},
			"@1@":   {0, 3},
			"2":     {2},
			"7":     nil,
		}
		for description, want := range cases {
			filter, err := ParseEpisodesFilter(description)
			So(err, ShouldBeNil)
			So(filter(episodes), ShouldResemble, want)
		}

		for _, bad := range []string{"3-1", "x", "-"} {
			_, err := ParseEpisodesFilter(bad)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a search with a picked item and streams", t, func() {
		src := &stubSource{}
		picker, _ := ParseItemPicker("last", "")
		filter, _ := ParseEpisodesFilter("all")
		var buf bytes.Buffer

		err := Run(ctx, &Options{
			Out:            &buf,
			Source:         src,
			Query:          "love",
			Json:           true,
			ItemPicker:     mo.Some[ItemPicker](picker),
			EpisodesFilter: mo.Some[EpisodesFilter](filter),
			Streams:        true,
		})
		So(err, ShouldBeNil)

		var output Output
		So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)

		Convey("Then the search mode is used", func() {
			So(output.Mode, ShouldEqual, "search")
			So(src.queries[0].Text, ShouldEqual, "love")
			So(src.queries[0].Page, ShouldEqual, 1)
		})

		Convey("Then episodes use the corrected id and default streams", func() {
			So(len(output.Result), ShouldEqual, 1)
			entry := output.Result[0]
			So(entry.ContentID, ShouldEqual, "fixed-b")
			So(len(entry.Episodes), ShouldEqual, 3)
			So(entry.Episodes[0].Selected.Label, ShouldEqual, "720p")
			So(entry.Episodes[1].Error, ShouldEqual, source.StreamUnavailable)
			So(entry.Episodes[2].Selected.URL, ShouldEqual, "https://cdn/fixed-b/3/720")
		})
	})

	Convey("Given a remembered quality", t, func() {
		filter, _ := ParseEpisodesFilter("first")
		picker, _ := ParseItemPicker("first", "")
		var buf bytes.Buffer

		err := Run(ctx, &Options{
			Out:            &buf,
			Source:         &stubSource{},
			ItemPicker:     mo.Some[ItemPicker](picker),
			EpisodesFilter: mo.Some[EpisodesFilter](filter),
			Streams:        true,
			Preferences:    fixedPreference("480p"),
		})

		Convey("Then the text output prints the preferred stream", func() {
			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual, "Ep 1\thttps://cdn/fixed-a/1/480\n")
		})
	})

	Convey("Given a plain listing", t, func() {
		var buf bytes.Buffer
		err := Run(ctx, &Options{Out: &buf, Source: &stubSource{}})
		So(err, ShouldBeNil)
		So(strings.Split(strings.TrimSpace(buf.String()), "\n"), ShouldResemble, []string{"a\tAlpha", "b\tBeta"})
	})

	Convey("Given an unknown mode", t, func() {
		err := Run(ctx, &Options{Source: &stubSource{}, Mode: "nope", Out: &bytes.Buffer{}})
		So(err, ShouldNotBeNil)
	})

	Convey("An empty result is still a JSON array", t, func() {
		var buf bytes.Buffer
		So(writeJson(&buf, &Output{Query: "x"}), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, `"result": []`)
	})
}
