package fastladder

import (
	"io"

	"github.com/LJTian/fastladder-bookwalker/internal/feed"
)

// Printer 是 dry-run 用的发布器：只把编码后的批次写到 w，不访问网络
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Publish(feeds []feed.Feed) error {
	out, err := Render(feeds)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.w, out+"\n")
	return err
}

// Render 返回与实时推送时 feeds 字段完全相同的文本
func Render(feeds []feed.Feed) (string, error) {
	payload, err := feed.EncodeBatch(feeds)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
