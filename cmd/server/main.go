package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/hots-draft-tracker/internal/banmatch"
	"github.com/DoyleJ11/hots-draft-tracker/internal/config"
	"github.com/DoyleJ11/hots-draft-tracker/internal/detector"
	"github.com/DoyleJ11/hots-draft-tracker/internal/gamedata"
	"github.com/DoyleJ11/hots-draft-tracker/internal/httpapi"
	"github.com/DoyleJ11/hots-draft-tracker/internal/hub"
	"github.com/DoyleJ11/hots-draft-tracker/internal/logging"
	"github.com/DoyleJ11/hots-draft-tracker/internal/screen"
	"github.com/DoyleJ11/hots-draft-tracker/internal/storage"
	"github.com/DoyleJ11/hots-draft-tracker/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict, err := gamedata.Load(cfg.GameDataFile)
	if err != nil {
		return err
	}
	layout, err := screen.LoadLayout(cfg.LayoutFile)
	if err != nil {
		return err
	}
	ocr, err := screen.NewTesseract(cfg.OCRLanguage)
	if err != nil {
		return err
	}
	defer ocr.Close()

	matcher := banmatch.New(banmatch.Options{
		Dirs:      []string{cfg.BanDir, cfg.UserBanDir},
		LearnDir:  cfg.UserBanDir,
		Width:     cfg.BanCompareWidth,
		Height:    cfg.BanCompareHeight,
		Threshold: cfg.BanThreshold,
	}, log)

	deps := detector.Deps{
		Sampler:   screen.NewSampler(layout, screen.Display{Index: cfg.DisplayIndex}, ocr, log),
		Inspector: screen.Inspector{Tolerance: screen.DefaultTolerance},
		Dict:      dict,
		Bans:      matcher,
		Log:       log,
	}
	if cfg.DatabaseURL != "" {
		store, err := storage.Open(cfg.DatabaseURL, log)
		if err != nil {
			log.Warn("recent picks disabled", zap.Error(err))
		} else {
			defer store.Close()
			deps.RecentPicks = store
		}
	}

	h := hub.NewHub(ctx)
	tr := tracker.New(ctx, tracker.Deps{
		Detector: detector.New(deps),
		Bans:     matcher,
		Heroes:   dict,
		Hub:      h,
		Log:      log,
		Interval: cfg.CycleInterval,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.SetupRoutes(h, tr, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.Duration("cycle", cfg.CycleInterval))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	tr.Inbox() <- tracker.Shutdown{}
	<-tr.Done()
	return nil
}
