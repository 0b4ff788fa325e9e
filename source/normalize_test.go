package source

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDedupe(t *testing.T) {
	Convey("Given items with repeated keys", t, func() {
		keys := []string{"a", "b", "a", "c", "b"}

		Convey("When deduplicating", func() {
			unique := Dedupe(keys, func(s string) string { return s })

			Convey("Then the first occurrence of each key is kept in order", func() {
				So(unique, ShouldResemble, []string{"a", "b", "c"})
			})
		})
	})
}

func TestTruncate(t *testing.T) {
	Convey("Given 30 items", t, func() {
		items := make([]int, 30)
		for i := range items {
			items[i] = i
		}

		Convey("Truncating to ListLimit keeps the first 15", func() {
			truncated := Truncate(items, ListLimit)
			So(len(truncated), ShouldEqual, 15)
			So(truncated[14], ShouldEqual, 14)
		})

		Convey("Truncating a short list is a no-op", func() {
			So(len(Truncate(items[:3], ListLimit)), ShouldEqual, 3)
		})
	})
}

func TestMappingItems(t *testing.T) {
	mapping := &Mapping{
		ID:            []string{"bookId", "id"},
		Title:         []string{"bookName", "name", "title"},
		Image:         []string{"cover", "bookCover"},
		Badge:         []string{"chapterCount", "chapter_count"},
		TitleFallback: "Untitled",
		BadgeFallback: "-",
		BadgeSuffix:   " Eps",
	}

	Convey("Given 30 raw records with duplicates", t, func() {
		records := make([]Record, 0, 32)
		for i := 0; i < 30; i++ {
			records = append(records, Record{"bookId": fmt.Sprint(i), "bookName": fmt.Sprintf("Drama %d", i)})
		}
		records = append([]Record{{"bookId": "0", "bookName": "Duplicate"}}, records...)

		Convey("When normalizing", func() {
			items := mapping.Items(records, "dramabox")

			Convey("Then the listing is deduplicated and truncated", func() {
				So(len(items), ShouldEqual, ListLimit)
				So(items[0].Title, ShouldEqual, "Duplicate")
				So(items[1].ID, ShouldEqual, "1")
				So(items[0].Source, ShouldEqual, "dramabox")
			})
		})
	})

	Convey("Given a record with missing fields", t, func() {
		item := mapping.Item(Record{"id": 42.0, "bookCover": "http://img/x.jpg"}, "dramabox")

		Convey("Then fallbacks are used", func() {
			So(item.ID, ShouldEqual, "42")
			So(item.Title, ShouldEqual, "Untitled")
			So(item.ImageURL, ShouldEqual, "http://img/x.jpg")
			So(item.Badge, ShouldEqual, "- Eps")
		})
	})

	Convey("Given a record with a numeric badge", t, func() {
		item := mapping.Item(Record{"bookId": "7", "chapter_count": 61.0}, "dramabox")
		So(item.Badge, ShouldEqual, "61 Eps")
	})
}

func TestCleanTitle(t *testing.T) {
	Convey("Given a noisy drama title", t, func() {
		title := "Nonton Drama Fated To Love You (2014) Sub Indo"

		Convey("Then boilerplate and year are removed", func() {
			So(CleanTitle(title), ShouldEqual, "Fated To Love You")
		})
	})

	Convey("Given a drakor title", t, func() {
		So(CleanTitle("Nonton Drakor Goblin Sub Indo"), ShouldEqual, "Goblin")
	})

	Convey("Given a clean title", t, func() {
		So(CleanTitle("Goblin"), ShouldEqual, "Goblin")
	})
}

func TestUpgradeImage(t *testing.T) {
	Convey("Given a thumbnail url", t, func() {
		url := "https://cdn.example.com/img.jpg?resize=247,350&q=80"
		So(UpgradeImage(url), ShouldEqual, "https://cdn.example.com/img.jpg?resize=400,560&q=80")
	})

	Convey("Given a url without resize parameter", t, func() {
		So(UpgradeImage("https://cdn.example.com/img.jpg"), ShouldEqual, "https://cdn.example.com/img.jpg")
		So(UpgradeImage(""), ShouldEqual, "")
	})
}

func TestAbsoluteURL(t *testing.T) {
	Convey("Given a protocol-relative url", t, func() {
		So(AbsoluteURL("//cdn.example.com/v.mp4"), ShouldEqual, "https://cdn.example.com/v.mp4")
	})

	Convey("Given an absolute url", t, func() {
		So(AbsoluteURL("http://cdn.example.com/v.mp4"), ShouldEqual, "http://cdn.example.com/v.mp4")
	})
}

func TestCorrectIdentifier(t *testing.T) {
	Convey("Given an identifier with a glued prefix", t, func() {
		So(CorrectIdentifier("animeone-piece", "anime"), ShouldEqual, "one-piece")
	})

	Convey("Given an identifier with whitespace and repeated dashes", t, func() {
		So(CorrectIdentifier(" anime one  piece--sub ", "anime"), ShouldEqual, "-one-piece-sub")
	})
}
