package fastladder

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/LJTian/fastladder-bookwalker/internal/feed"
)

const updateFeedsPath = "/rpc/update_feeds"

type ClientOptions struct {
	BaseURL   *url.URL
	APIKey    string
	UserAgent string
}

// Client 通过 /rpc/update_feeds 把整批条目推送给 Fastladder
type Client struct {
	endpoint *url.URL
	apiKey   string
	http     *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	// 绝对路径：与 URL join 一致，会替换 BaseURL 自带的 path
	endpoint := opts.BaseURL.ResolveReference(&url.URL{Path: updateFeedsPath})

	client := resty.New()
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{
		endpoint: endpoint,
		apiKey:   opts.APIKey,
		http:     client,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Publish 发送一次 POST，表单字段为 api_key 与 feeds（JSON 数组）
func (c *Client) Publish(feeds []feed.Feed) error {
	payload, err := feed.EncodeBatch(feeds)
	if err != nil {
		return err
	}

	slog.Info("post feeds to fastladder", "endpoint", c.endpoint.String(), "count", len(feeds))
	res, err := c.http.R().
		SetFormData(map[string]string{
			"api_key": c.apiKey,
			"feeds":   string(payload),
		}).
		Post(c.endpoint.String())
	if err != nil {
		return &feed.TransportError{URL: c.endpoint.String(), Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return &feed.HTTPStatusError{
			Method: http.MethodPost,
			URL:    c.endpoint.String(),
			Code:   res.StatusCode(),
			Body:   res.String(),
		}
	}
	return nil
}
