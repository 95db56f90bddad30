package feed

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// Record 是 Fastladder /rpc/update_feeds 接受的扁平结构，字段顺序即 JSON 输出顺序
type Record struct {
	FeedLink  string `json:"feedlink"`
	FeedTitle string `json:"feedtitle"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Link      string `json:"link"`
	Category  string `json:"category"`
	GUID      string `json:"guid"`
}

func Encode(f Feed) Record {
	return Record{
		FeedLink:  f.FeedLink,
		FeedTitle: f.FeedTitle,
		Author:    f.Author,
		Title:     f.Title,
		Body:      Body(f),
		Link:      f.Link,
		Category:  f.Category,
		GUID:      f.GUID,
	}
}

// Body 拼出条目正文：封面图 + 作者 + 书店，有价格/系列时再追加一段。插值全部做 HTML 转义
func Body(f Feed) string {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(html.EscapeString(f.ThumbURL))
	b.WriteString(`"/>`)
	writeParagraph(&b, f.Author)
	writeParagraph(&b, f.Shop)
	if f.Price.Present() {
		writeParagraph(&b, f.Price.Text)
	}
	return b.String()
}

func writeParagraph(b *strings.Builder, text string) {
	b.WriteString("<p>")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</p>")
}

// EncodeBatch 把整批条目序列化为 JSON 数组；空批次输出 []
func EncodeBatch(feeds []Feed) ([]byte, error) {
	records := make([]Record, 0, len(feeds))
	for _, f := range feeds {
		records = append(records, Encode(f))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// body 是 HTML，避免尖括号被转义成 unicode 序列
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeBatch 是 EncodeBatch 的逆操作，供 stub 服务端与 dry-run 校验使用
func DecodeBatch(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
