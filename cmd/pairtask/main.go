package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/hibiken/asynq"

	"github.com/jihoon-ko/pairtask/internal/model"
	"github.com/jihoon-ko/pairtask/internal/notify"
	"github.com/jihoon-ko/pairtask/internal/remind"
	"github.com/jihoon-ko/pairtask/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		logger.Error("loading config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Error("opening store", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}

	// Prefer the Redis-backed push queue when configured; otherwise live
	// notifications stay in-process.
	var channel notify.Channel
	var worker *notify.Worker
	if cfg.Redis.Addr != "" {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}

		ch, err := notify.NewAsynqChannel(redisOpt, cfg.Notify.Queue)
		if err != nil {
			logger.Error("connecting push queue", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}
		channel = ch

		worker = notify.NewWorker(redisOpt, st, notify.WorkerConfig{
			Queue:    cfg.Notify.Queue,
			Endpoint: cfg.Notify.PushEndpoint,
		}, logger)
		go func() {
			if err := worker.Start(); err != nil {
				logger.Error("push worker stopped", "error", err)
			}
		}()
		logger.Info("push queue enabled", "addr", cfg.Redis.Addr, "queue", cfg.Notify.Queue)
	} else {
		channel = notify.NewMemoryChannel()
		logger.Info("push queue disabled, using in-process notifications")
	}

	dispatcher := notify.NewDispatcher(st, channel, logger)

	scheduler, err := remind.NewScheduler(st, dispatcher, cfg.Remind.Schedule, logger)
	if err != nil {
		logger.Error("creating reminder scheduler", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("reminder scheduler started", "schedule", cfg.Remind.Schedule)

	shutdownCtx, forceShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer forceShutdown()

	shutdownChan := gfshutdown.GracefulShutdown(shutdownCtx, shutdownTimeout, map[string]gfshutdown.Operation{
		"scheduler": func(ctx context.Context) error {
			<-scheduler.Stop().Done()
			return nil
		},
		"notify": func(ctx context.Context) error {
			if worker != nil {
				worker.Shutdown()
			}
			return channel.Close()
		},
		"store": func(ctx context.Context) error {
			return st.Close()
		},
	})

	exitCode := <-shutdownChan
	if exitCode != 0 {
		logger.Error("shutdown finished with errors", "exit_code", exitCode)
		os.Exit(exitCode)
	}
	logger.Info("shutdown complete")
}
