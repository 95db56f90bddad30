package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/LJTian/fastladder-bookwalker/internal/collector"
	"github.com/LJTian/fastladder-bookwalker/internal/config"
	"github.com/LJTian/fastladder-bookwalker/internal/fastladder"
	"github.com/LJTian/fastladder-bookwalker/internal/processor"
	"github.com/LJTian/fastladder-bookwalker/internal/scheduler"
)

const (
	exitOK = iota
	exitFailure
)

type options struct {
	DryRun  bool   `short:"n" long:"dry-run" description:"Print the feeds JSON to stdout instead of posting it"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug logging"`
	Cron    string `long:"cron" value-name:"SPEC" description:"Keep running and repeat the job on this cron schedule"`
	Version bool   `long:"version" description:"Print the version and exit"`
}

type listingCommand struct {
	Args struct {
		IDs []string `positional-arg-name:"ID" required:"1" description:"Listing identifier such as st1, st2 or ct1"`
	} `positional-args:"yes" required:"yes"`
}

// 采集 BOOK WALKER 新刊/预约列表并推送到 Fastladder
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	var newCmd, scheduleCmd listingCommand

	p := flags.NewNamedParser("fastladder-bookwalker", flags.HelpFlag)
	p.ShortDescription = "Relay BOOK WALKER listings to Fastladder"
	p.SubcommandsOptional = true
	if _, err := p.AddGroup("Application Options", "", &opts); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	if _, err := p.AddCommand("new", "Get newly released books", "Get newly released books", &newCmd); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	if _, err := p.AddCommand("schedule", "Get scheduled books", "Get scheduled books", &scheduleCmd); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	rest, err := p.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(stdout)
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		p.WriteHelp(stderr)
		return exitFailure
	}

	if opts.Version {
		fmt.Fprintln(stdout, config.Version)
		return exitOK
	}

	var job scheduler.Job
	switch {
	case p.Active == nil && len(rest) > 0:
		fmt.Fprintf(stderr, "unknown command %q, expected new or schedule\n", rest[0])
		p.WriteHelp(stderr)
		return exitFailure
	case p.Active == nil:
		fmt.Fprintln(stderr, "a command is required: new or schedule")
		p.WriteHelp(stderr)
		return exitFailure
	case p.Active.Name == "new":
		job = scheduler.Job{Mode: collector.ModeNew, IDs: newCmd.Args.IDs}
	default:
		job = scheduler.Job{Mode: collector.ModeSchedule, IDs: scheduleCmd.Args.IDs}
	}

	setupLogger(stderr, opts.Verbose || config.DebugEnabled())
	cfg := config.Load()

	if err := execute(ctx, cfg, opts, job, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func execute(ctx context.Context, cfg *config.Config, opts options, job scheduler.Job, stdout io.Writer) error {
	// 实时推送的配置必须在任何抓取之前校验
	var pub scheduler.Publisher
	if opts.DryRun {
		pub = fastladder.NewPrinter(stdout)
	} else {
		target, err := cfg.Publisher()
		if err != nil {
			return err
		}
		pub = fastladder.NewClient(fastladder.ClientOptions{
			BaseURL:   target.BaseURL,
			APIKey:    target.APIKey,
			UserAgent: cfg.UserAgent,
		})
	}

	client, err := collector.NewBookwalkerClient(collector.ClientOptions{
		BaseURL:   cfg.BookwalkerURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	s := scheduler.New(job, client, processor.NewSimpleProcessor(), pub)
	if opts.Cron == "" {
		return s.RunOnce()
	}

	if err := s.Every(opts.Cron); err != nil {
		return err
	}
	s.Start()
	slog.Info("scheduler started", "cron", opts.Cron, "mode", job.Mode, "ids", job.IDs)

	<-ctx.Done()
	slog.Info("shutting down, waiting for the running job...")
	<-s.Stop().Done()
	return nil
}

func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
