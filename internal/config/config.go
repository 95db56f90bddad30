package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/LJTian/fastladder-bookwalker/internal/collector"
)

// Version 构建时通过 -ldflags 注入
var Version = "dev"

type Config struct {
	// stub 服务端口
	AppPort string

	BookwalkerURL  string
	UserAgent      string
	RequestTimeout time.Duration

	FastladderURL    string
	FastladderAPIKey string

	Debug bool
}

// Publisher 实际推送到 Fastladder 所需的配置
type Publisher struct {
	BaseURL *url.URL
	APIKey  string
}

func Load() *Config {
	cfg := &Config{
		AppPort:          getEnv("APP_PORT", "9000"),
		BookwalkerURL:    getEnv("BOOKWALKER_URL", collector.DefaultBaseURL),
		UserAgent:        getEnv("USER_AGENT", "fastladder-bookwalker/"+Version),
		RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 0),
		FastladderURL:    os.Getenv("FASTLADDER_URL"),
		FastladderAPIKey: os.Getenv("FASTLADDER_API_KEY"),
		Debug:            DebugEnabled(),
	}

	slog.Debug("config loaded", "bookwalker_url", cfg.BookwalkerURL, "fastladder_url", cfg.FastladderURL)
	return cfg
}

// DebugEnabled 报告 DEBUG 是否开启，日志需要在 Load 之前按它初始化
func DebugEnabled() bool {
	return os.Getenv("DEBUG") != ""
}

// Publisher 校验实时推送所需的环境变量，缺失时在任何网络请求之前报错
func (c *Config) Publisher() (Publisher, error) {
	if c.FastladderAPIKey == "" {
		return Publisher{}, fmt.Errorf("FASTLADDER_API_KEY is required to post feeds")
	}
	if c.FastladderURL == "" {
		return Publisher{}, fmt.Errorf("FASTLADDER_URL is required to post feeds")
	}
	u, err := url.Parse(c.FastladderURL)
	if err != nil {
		return Publisher{}, fmt.Errorf("unparsable FASTLADDER_URL %q: %w", c.FastladderURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Publisher{}, fmt.Errorf("unparsable FASTLADDER_URL %q: absolute URL expected", c.FastladderURL)
	}
	return Publisher{BaseURL: u, APIKey: c.FastladderAPIKey}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}
