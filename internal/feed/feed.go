package feed

import (
	"net/url"
	"strings"
)

// Category 所有条目固定的分类标签，用于在 Fastladder 中识别来源
const Category = "bookwalker"

// LabelKind 区分价格标签与系列标签
type LabelKind int

const (
	NoLabel LabelKind = iota
	PriceLabel
	SeriesLabel
)

func (k LabelKind) String() string {
	switch k {
	case PriceLabel:
		return "price"
	case SeriesLabel:
		return "series"
	default:
		return "none"
	}
}

// Label 是可选的价格/系列文案：要么是价格，要么是系列名，要么不存在
type Label struct {
	Kind LabelKind
	Text string
}

func (l Label) Present() bool {
	return l.Kind != NoLabel
}

// Feed 一条书目转换成订阅源记录后的结构，构造后不再修改
type Feed struct {
	FeedLink  string
	FeedTitle string
	Author    string
	Title     string
	ThumbURL  string
	Link      string
	Shop      string
	Price     Label
	Category  string
	GUID      string
}

// GUID 根据详情页链接生成稳定的唯一标识：去掉 query/fragment 以及末尾的空路径段，
// 这样 "/de123/?adpcnt=1" 与 "/de123" 视为同一本书。无法解析的链接原样返回。
func GUID(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}
	// 使用转义后的 path，"/de%2Fa" 与 "/de/a" 是不同的书
	return u.Scheme + "://" + u.Host + strings.TrimRight(u.EscapedPath(), "/")
}
