package collector

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/LJTian/fastladder-bookwalker/internal/feed"
)

// newStorefront 启动一个模拟 BOOK WALKER 的 gin 服务，pages 的 key 为 "mode/id"
func newStorefront(t *testing.T, pages map[string]string, hits *int32) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handler := func(mode string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if hits != nil {
				atomic.AddInt32(hits, 1)
			}
			if c.Query("list") != "0" {
				c.String(http.StatusBadRequest, "list=0 expected")
				return
			}
			body, ok := pages[mode+"/"+c.Param("id")]
			if !ok {
				c.String(http.StatusNotFound, "no such listing")
				return
			}
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
		}
	}
	r.GET("/new/:id/", handler("new"))
	r.GET("/schedule/:id/", handler("schedule"))
	r.GET("/moved/:id/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/new/"+c.Param("id")+"/?list=0")
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *BookwalkerClient {
	t.Helper()
	client, err := NewBookwalkerClient(ClientOptions{BaseURL: baseURL, UserAgent: "test-agent"})
	require.NoError(t, err)
	return client
}

func TestListingPath(t *testing.T) {
	require.Equal(t, "/new/st1/?list=0", ListingPath(ModeNew, "st1"))
	require.Equal(t, "/schedule/ct2/?list=0", ListingPath(ModeSchedule, "ct2"))
}

func TestBooksFetchesAndExtracts(t *testing.T) {
	srv := newStorefront(t, map[string]string{
		"new/st1":      readFixture(t, "new_st1.html"),
		"schedule/ct2": listing(completeItem("9").html()),
	}, nil)
	client := newTestClient(t, srv.URL)

	page, err := client.NewBooks("st1")
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/new/st1/?list=0", page.URL)
	require.Equal(t, "BOOK WALKER /new/st1/?list=0", page.Title)
	require.Len(t, page.Books, 3)
	// 相对链接按列表页地址补全
	require.Equal(t, srv.URL+"/de0a1b2c3d-0002/", page.Books[1].Link)

	page, err = client.ScheduledBooks("ct2")
	require.NoError(t, err)
	require.Equal(t, "BOOK WALKER /schedule/ct2/?list=0", page.Title)
	require.Len(t, page.Books, 1)
	require.Equal(t, "title 9", page.Books[0].Title)
}

func TestFetchReturnsRawDocument(t *testing.T) {
	doc := listing(completeItem("1").html())
	srv := newStorefront(t, map[string]string{"new/st1": doc}, nil)

	body, err := newTestClient(t, srv.URL).Fetch("/new/st1/?list=0")
	require.NoError(t, err)
	require.Equal(t, doc, body)
}

func TestFetchStatusError(t *testing.T) {
	srv := newStorefront(t, map[string]string{}, nil)

	_, err := newTestClient(t, srv.URL).NewBooks("zz9")
	var statusErr *feed.HTTPStatusError
	require.True(t, errors.As(err, &statusErr), "want HTTPStatusError, got %v", err)
	require.Equal(t, http.StatusNotFound, statusErr.Code)
	require.Equal(t, "no such listing", statusErr.Body)
	require.Contains(t, err.Error(), "404")
	require.Contains(t, err.Error(), "no such listing")
}

func TestFetchDoesNotFollowRedirects(t *testing.T) {
	var hits int32
	srv := newStorefront(t, map[string]string{"new/st1": listing()}, &hits)

	_, err := newTestClient(t, srv.URL).Fetch("/moved/st1/")
	var statusErr *feed.HTTPStatusError
	require.True(t, errors.As(err, &statusErr), "want HTTPStatusError, got %v", err)
	require.Equal(t, http.StatusFound, statusErr.Code)
	require.Zero(t, atomic.LoadInt32(&hits), "redirect target must not be requested")
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := newTestClient(t, base).NewBooks("st1")
	var transportErr *feed.TransportError
	require.True(t, errors.As(err, &transportErr), "want TransportError, got %v", err)
}

func TestBooksExtractionErrorNamesPage(t *testing.T) {
	broken := completeItem("1")
	broken.shop = ""
	srv := newStorefront(t, map[string]string{"new/st1": listing(broken.html())}, nil)

	_, err := newTestClient(t, srv.URL).NewBooks("st1")
	var missing *feed.MissingFieldError
	require.True(t, errors.As(err, &missing), "want MissingFieldError, got %v", err)
	require.Equal(t, "shop", missing.Field)
	require.Contains(t, err.Error(), "/new/st1/?list=0")
}

func TestNewBookwalkerClientRejectsRelativeBase(t *testing.T) {
	_, err := NewBookwalkerClient(ClientOptions{BaseURL: "bookwalker.jp"})
	var parseErr *feed.URLParseError
	require.True(t, errors.As(err, &parseErr), "want URLParseError, got %v", err)

	client, err := NewBookwalkerClient(ClientOptions{})
	require.NoError(t, err)
	require.Equal(t, "bookwalker", client.Name())
}

func TestBooksRejectsUnknownMode(t *testing.T) {
	client := newTestClient(t, "https://bookwalker.jp")
	_, err := client.Books(Mode("ranking"), "st1")
	require.Error(t, err)
}
