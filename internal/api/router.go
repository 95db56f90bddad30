package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/LJTian/fastladder-bookwalker/internal/feed"
)

// Server 模拟 Fastladder 的 /rpc/update_feeds，收到的批次只保存在内存里
type Server struct {
	apiKey string

	mu      sync.Mutex
	batches [][]feed.Record
}

func NewServer(apiKey string) *Server {
	return &Server{apiKey: apiKey}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.POST("/rpc/update_feeds", s.updateFeeds)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/feeds", s.listFeeds)
	}
}

// Batches 返回已接收批次的副本，按接收顺序排列
func (s *Server) Batches() [][]feed.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]feed.Record, len(s.batches))
	copy(out, s.batches)
	return out
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) updateFeeds(c *gin.Context) {
	key := c.PostForm("api_key")
	if s.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
		c.String(http.StatusForbidden, "invalid api_key")
		return
	}

	records, err := feed.DecodeBatch([]byte(c.PostForm("feeds")))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid feeds: %v", err)
		return
	}

	s.mu.Lock()
	s.batches = append(s.batches, records)
	s.mu.Unlock()

	slog.Info("received feeds", "count", len(records))
	c.JSON(http.StatusOK, gin.H{"isSuccess": true})
}

func (s *Server) listFeeds(c *gin.Context) {
	items := make([]feed.Record, 0)
	for _, batch := range s.Batches() {
		items = append(items, batch...)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}
