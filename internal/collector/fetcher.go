package collector

import "github.com/LJTian/fastladder-bookwalker/internal/feed"

// Mode 列表类型：新刊或预约
type Mode string

const (
	ModeNew      Mode = "new"
	ModeSchedule Mode = "schedule"
)

// Book 从列表页一个条目块中解析出的字段
type Book struct {
	Title    string
	Author   string
	Link     string
	ThumbURL string
	Shop     string
	Price    feed.Label
	GUID     string
}

// Page 单个标识符对应列表页的解析结果
type Page struct {
	URL   string
	Title string
	Books []Book
}

// Fetcher 抽象书目列表的数据源
type Fetcher interface {
	Name() string
	Books(mode Mode, id string) (Page, error)
}
