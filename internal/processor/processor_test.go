package processor

import (
	"testing"

	"github.com/LJTian/fastladder-bookwalker/internal/collector"
	"github.com/LJTian/fastladder-bookwalker/internal/feed"
)

func sampleBooks() []collector.Book {
	return []collector.Book{
		{
			Title:    "Title 1",
			Author:   "Author 1",
			Link:     "https://bookwalker.jp/de1/",
			ThumbURL: "https://c.bookwalker.jp/1.jpg",
			Shop:     "Shop 1",
			Price:    feed.Label{Kind: feed.PriceLabel, Text: "660円"},
			GUID:     "https://bookwalker.jp/de1",
		},
		{
			Title:    "Title 1 duplicate by link",
			Link:     "https://bookwalker.jp/de1/",
			ThumbURL: "https://c.bookwalker.jp/1.jpg",
			Shop:     "Shop 1",
			GUID:     "https://bookwalker.jp/de1",
		},
		{
			Title:    "Title 2",
			Author:   "Author 2",
			Link:     "https://bookwalker.jp/de2/",
			ThumbURL: "https://c.bookwalker.jp/2.jpg",
			Shop:     "Shop 2",
			Price:    feed.Label{Kind: feed.SeriesLabel, Text: "Series"},
			GUID:     "https://bookwalker.jp/de2",
		},
	}
}

func TestSimpleProcessorFillsPageMetadata(t *testing.T) {
	p := NewSimpleProcessor()
	const (
		src   = "https://bookwalker.jp/new/st1/?list=0"
		title = "BOOK WALKER /new/st1/?list=0"
	)

	out := p.Process(sampleBooks(), src, title)
	if len(out) != 3 {
		t.Fatalf("expected 3 feeds (no dedupe), got %d", len(out))
	}

	for i, f := range out {
		if f.FeedLink != src || f.FeedTitle != title {
			t.Fatalf("feed %d: page metadata not filled: %+v", i, f)
		}
		if f.Category != "bookwalker" {
			t.Fatalf("feed %d: category = %q, want %q", i, f.Category, "bookwalker")
		}
	}
}

func TestSimpleProcessorCarriesItemFields(t *testing.T) {
	books := sampleBooks()
	out := NewSimpleProcessor().Process(books, "src", "title")

	for i, b := range books {
		f := out[i]
		if f.Title != b.Title || f.Author != b.Author || f.Link != b.Link || f.ThumbURL != b.ThumbURL ||
			f.Shop != b.Shop || f.Price != b.Price || f.GUID != b.GUID {
			t.Fatalf("feed %d does not carry book fields unchanged:\nbook=%+v\nfeed=%+v", i, b, f)
		}
	}
}

func TestSimpleProcessorEmptyInput(t *testing.T) {
	out := NewSimpleProcessor().Process(nil, "src", "title")
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestProcessPage(t *testing.T) {
	page := collector.Page{
		URL:   "https://bookwalker.jp/schedule/ct2/?list=0",
		Title: "BOOK WALKER /schedule/ct2/?list=0",
		Books: sampleBooks()[:1],
	}
	out := NewSimpleProcessor().ProcessPage(page)
	if len(out) != 1 {
		t.Fatalf("expected 1 feed, got %d", len(out))
	}
	if out[0].FeedLink != page.URL || out[0].FeedTitle != page.Title {
		t.Fatalf("unexpected page metadata: %+v", out[0])
	}
}
