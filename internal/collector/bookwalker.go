package collector

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/LJTian/fastladder-bookwalker/internal/feed"
)

const (
	DefaultBaseURL   = "https://bookwalker.jp"
	DefaultUserAgent = "fastladder-bookwalker/dev"
)

type ClientOptions struct {
	BaseURL   string
	UserAgent string
	// 为 0 时使用 colly 默认超时
	Timeout time.Duration
}

// BookwalkerClient 抓取 BOOK WALKER 新刊/预约列表页
type BookwalkerClient struct {
	baseURL   *url.URL
	userAgent string
	timeout   time.Duration
}

func NewBookwalkerClient(opts ClientOptions) (*BookwalkerClient, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, &feed.URLParseError{Field: "base URL", Value: raw, Err: err}
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, &feed.URLParseError{Field: "base URL", Value: raw}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &BookwalkerClient{baseURL: baseURL, userAgent: ua, timeout: opts.Timeout}, nil
}

func (c *BookwalkerClient) Name() string {
	return "bookwalker"
}

// ListingPath 返回列表页的相对路径，例如 /new/st1/?list=0
func ListingPath(mode Mode, id string) string {
	return fmt.Sprintf("/%s/%s/?list=0", mode, url.PathEscape(id))
}

func (c *BookwalkerClient) NewBooks(id string) (Page, error) {
	return c.Books(ModeNew, id)
}

func (c *BookwalkerClient) ScheduledBooks(id string) (Page, error) {
	return c.Books(ModeSchedule, id)
}

func (c *BookwalkerClient) Books(mode Mode, id string) (Page, error) {
	if mode != ModeNew && mode != ModeSchedule {
		return Page{}, fmt.Errorf("unknown listing mode %q", mode)
	}

	path := ListingPath(mode, id)
	target, err := c.resolve(path)
	if err != nil {
		return Page{}, err
	}

	slog.Info("fetch BOOK WALKER listing...", "mode", mode, "id", id)
	doc, err := c.get(target)
	if err != nil {
		return Page{}, err
	}

	books, err := ExtractBooks(doc, target)
	if err != nil {
		return Page{}, fmt.Errorf("extract %s: %w", target, err)
	}
	if len(books) == 0 {
		slog.Warn("BOOK WALKER listing got 0 items", "url", target.String())
	}

	return Page{
		URL:   target.String(),
		Title: "BOOK WALKER " + path,
		Books: books,
	}, nil
}

// Fetch 以 GET 获取 baseURL + path 的原始 HTML
func (c *BookwalkerClient) Fetch(path string) (string, error) {
	target, err := c.resolve(path)
	if err != nil {
		return "", err
	}
	return c.get(target)
}

func (c *BookwalkerClient) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, &feed.URLParseError{Field: "path", Value: path, Err: err}
	}
	return c.baseURL.ResolveReference(ref), nil
}

func (c *BookwalkerClient) newCollector() *colly.Collector {
	col := colly.NewCollector(
		colly.AllowedDomains(c.baseURL.Hostname()),
		colly.UserAgent(c.userAgent),
	)
	if c.timeout > 0 {
		col.SetRequestTimeout(c.timeout)
	}
	// 跳转意味着 ID 无效或站点改版，交给调用方作为错误处理
	col.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	})
	return col
}

func (c *BookwalkerClient) get(target *url.URL) (string, error) {
	col := c.newCollector()

	var (
		body     string
		fetchErr error
	)
	col.OnResponse(func(r *colly.Response) {
		if r.StatusCode != http.StatusOK {
			fetchErr = &feed.HTTPStatusError{URL: target.String(), Code: r.StatusCode, Body: string(r.Body)}
			return
		}
		body = string(r.Body)
	})
	col.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = &feed.HTTPStatusError{URL: target.String(), Code: r.StatusCode, Body: string(r.Body)}
			return
		}
		fetchErr = &feed.TransportError{URL: target.String(), Err: err}
	})

	err := col.Visit(target.String())
	if fetchErr != nil {
		return "", fetchErr
	}
	if err != nil {
		return "", &feed.TransportError{URL: target.String(), Err: err}
	}

	slog.Debug("fetched BOOK WALKER listing", "url", target.String(), "bytes", len(body))
	return body, nil
}
