package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/LJTian/fastladder-bookwalker/internal/collector"
	"github.com/LJTian/fastladder-bookwalker/internal/feed"
	"github.com/LJTian/fastladder-bookwalker/internal/processor"
)

// Publisher 接收一整批条目；实时推送与 dry-run 输出都实现它
type Publisher interface {
	Publish(feeds []feed.Feed) error
}

// Job 一次采集的参数：列表类型 + 按命令行顺序排列的标识符
type Job struct {
	Mode collector.Mode
	IDs  []string
}

type Scheduler struct {
	cron      *cron.Cron
	job       Job
	fetcher   collector.Fetcher
	processor *processor.SimpleProcessor
	publisher Publisher
}

func New(job Job, fetcher collector.Fetcher, p *processor.SimpleProcessor, pub Publisher) *Scheduler {
	// 上一轮未结束时跳过本轮，保证任意时刻只有一轮采集
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	return &Scheduler{
		cron:      c,
		job:       job,
		fetcher:   fetcher,
		processor: p,
		publisher: pub,
	}
}

// Every 按 cron 表达式周期执行 RunOnce，需要再调用 Start
func (s *Scheduler) Every(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止调度，返回的 context 在正在执行的一轮结束后 Done
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce 依次采集所有标识符后一次性发布；任何错误都会中止本轮且不发布
func (s *Scheduler) RunOnce() error {
	feeds, err := s.Collect()
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(feeds); err != nil {
		return err
	}
	slog.Info("collect job done", "mode", s.job.Mode, "ids", len(s.job.IDs), "feeds", len(feeds))
	return nil
}

// Collect 按标识符顺序抓取并拼接结果，第一个错误即返回
func (s *Scheduler) Collect() ([]feed.Feed, error) {
	slog.Info("start collect job...", "source", s.fetcher.Name(), "mode", s.job.Mode)

	feeds := make([]feed.Feed, 0)
	for _, id := range s.job.IDs {
		page, err := s.fetcher.Books(s.job.Mode, id)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", s.job.Mode, id, err)
		}
		processed := s.processor.ProcessPage(page)
		slog.Info("listing done", "id", id, "fetched", len(page.Books))
		feeds = append(feeds, processed...)
	}
	return feeds, nil
}

func (s *Scheduler) runScheduled() {
	if err := s.RunOnce(); err != nil {
		slog.Error("collect job failed", "mode", s.job.Mode, "error", err)
	}
}
