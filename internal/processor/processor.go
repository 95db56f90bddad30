package processor

import (
	"github.com/LJTian/fastladder-bookwalker/internal/collector"
	"github.com/LJTian/fastladder-bookwalker/internal/feed"
)

// SimpleProcessor 把列表页解析出的书目补齐页面级信息，生成订阅源记录
type SimpleProcessor struct {
	category string
}

func NewSimpleProcessor() *SimpleProcessor {
	return &SimpleProcessor{category: feed.Category}
}

// Process 保持输入顺序，不去重（Fastladder 端按 guid 去重）
func (p *SimpleProcessor) Process(books []collector.Book, sourceURL, feedTitle string) []feed.Feed {
	out := make([]feed.Feed, 0, len(books))
	for _, b := range books {
		out = append(out, feed.Feed{
			FeedLink:  sourceURL,
			FeedTitle: feedTitle,
			Author:    b.Author,
			Title:     b.Title,
			ThumbURL:  b.ThumbURL,
			Link:      b.Link,
			Shop:      b.Shop,
			Price:     b.Price,
			Category:  p.category,
			GUID:      b.GUID,
		})
	}
	return out
}

// ProcessPage 等价于 Process(page.Books, page.URL, page.Title)
func (p *SimpleProcessor) ProcessPage(page collector.Page) []feed.Feed {
	return p.Process(page.Books, page.URL, page.Title)
}
