package collector

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/LJTian/fastladder-bookwalker/internal/feed"
)

// BOOK WALKER 列表页的结构选择器
const (
	itemSelector   = ".bookItemInner"
	imageSelector  = ".img-book"
	authorSelector = ".book-name"
	titleSelector  = ".book-tl"
	shopSelector   = ".shop-name"
)

// labelCandidates 按优先级排列：价格优先，其次系列名
var labelCandidates = []struct {
	selector string
	kind     feed.LabelKind
}{
	{".book-price", feed.PriceLabel},
	{".book-series", feed.SeriesLabel},
}

// ExtractBooks 解析列表页 HTML，按文档顺序返回每个条目。任一条目缺少必填字段时整页失败
func ExtractBooks(document string, pageURL *url.URL) ([]Book, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, err
	}

	items := doc.Find(itemSelector)
	books := make([]Book, 0, items.Length())
	for i := range items.Nodes {
		book, err := extractBook(items.Eq(i), pageURL)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

func extractBook(item *goquery.Selection, pageURL *url.URL) (Book, error) {
	imageBlock, err := first(item, imageSelector, "image block")
	if err != nil {
		return Book{}, err
	}
	anchor, err := first(imageBlock, "a", "link anchor")
	if err != nil {
		return Book{}, err
	}
	href, err := attr(anchor, "href")
	if err != nil {
		return Book{}, err
	}
	link, err := resolve(pageURL, "href", href)
	if err != nil {
		return Book{}, err
	}

	img, err := first(anchor, "img", "thumbnail image")
	if err != nil {
		return Book{}, err
	}
	src, err := attr(img, "src")
	if err != nil {
		return Book{}, err
	}
	thumb, err := resolve(pageURL, "src", src)
	if err != nil {
		return Book{}, err
	}

	author, err := text(item, authorSelector, "author")
	if err != nil {
		return Book{}, err
	}
	title, err := text(item, titleSelector, "title")
	if err != nil {
		return Book{}, err
	}
	if title == "" {
		return Book{}, &feed.MissingFieldError{Field: "title"}
	}
	shop, err := text(item, shopSelector, "shop")
	if err != nil {
		return Book{}, err
	}

	return Book{
		Title:    title,
		Author:   author,
		Link:     link,
		ThumbURL: thumb,
		Shop:     shop,
		Price:    extractLabel(item),
		GUID:     feed.GUID(link),
	}, nil
}

// extractLabel 价格与系列名都是可选的，都不存在时返回零值
func extractLabel(item *goquery.Selection) feed.Label {
	for _, c := range labelCandidates {
		sel := item.Find(c.selector).First()
		if sel.Length() > 0 {
			return feed.Label{Kind: c.kind, Text: strings.TrimSpace(sel.Text())}
		}
	}
	return feed.Label{}
}

func first(scope *goquery.Selection, selector, field string) (*goquery.Selection, error) {
	sel := scope.Find(selector).First()
	if sel.Length() == 0 {
		return nil, &feed.MissingFieldError{Field: field}
	}
	return sel, nil
}

func text(scope *goquery.Selection, selector, field string) (string, error) {
	sel, err := first(scope, selector, field)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sel.Text()), nil
}

func attr(sel *goquery.Selection, name string) (string, error) {
	v, ok := sel.Attr(name)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", &feed.MissingFieldError{Field: name}
	}
	return v, nil
}

// resolve 把相对链接补全为绝对 URL
func resolve(base *url.URL, field, raw string) (string, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return "", &feed.URLParseError{Field: field, Value: raw, Err: err}
	}
	abs := ref
	if base != nil {
		abs = base.ResolveReference(ref)
	}
	if abs.Scheme == "" || abs.Host == "" {
		return "", &feed.URLParseError{Field: field, Value: raw}
	}
	return abs.String(), nil
}
