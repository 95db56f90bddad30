package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/LJTian/fastladder-bookwalker/internal/api"
	"github.com/LJTian/fastladder-bookwalker/internal/config"
)

// 本地调试用的 Fastladder 替身：接收 /rpc/update_feeds 并在内存中保存
func main() {
	cfg := config.Load()
	if cfg.FastladderAPIKey == "" {
		log.Fatalf("FASTLADDER_API_KEY is required")
	}

	r := gin.Default()
	api.NewServer(cfg.FastladderAPIKey).RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting ladder stub at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
