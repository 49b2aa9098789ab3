package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Amr-9/pumpvanity/internal/config"
	"github.com/Amr-9/pumpvanity/internal/log"
	"github.com/Amr-9/pumpvanity/internal/metrics"
	"github.com/Amr-9/pumpvanity/internal/ui"
	"github.com/Amr-9/pumpvanity/internal/wallet"
	"github.com/Amr-9/pumpvanity/pkg/generator"
	"github.com/Amr-9/pumpvanity/pkg/generator/cpu"
	"github.com/Amr-9/pumpvanity/pkg/generator/solana"
	"github.com/Amr-9/pumpvanity/pkg/vanity"
)

const updateRate = 100 * time.Millisecond

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(log.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, File: cfg.Log.File})
	defer logger.Close()

	logger.Debug().
		Str("config_file", cfgFile).
		Str("network", cfg.Search.Network).
		Str("pattern", cfg.Description()).
		Int("workers", cfg.Search.Workers).
		Dur("timeout", cfg.Search.Timeout).
		Str("output", cfg.Output.File).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Configuration loaded")

	if cfg.Search.HighPriority {
		if err := setHighPriority(logger.Component("priority")); err != nil {
			logger.Warn().Err(err).Msg("could not raise process priority")
		}
	}

	// Ask for the passphrase before spending minutes on the search.
	var passphrase []byte
	if cfg.Output.Encrypt {
		if passphrase, err = wallet.ReadPassphrase(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Search.Timeout)
		defer cancel()
	}

	var (
		m    *metrics.Metrics
		opts = []cpu.Option{cpu.WithLogger(logger.Component("search"))}
	)
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics()
		opts = append(opts, cpu.WithRecorder(m))
		startMetricsServer(ctx, cfg, m, logger.Component("metrics"))
	}

	scheme, err := vanity.SchemeFor(cfg.Network())
	if err != nil {
		return err
	}
	spec := cfg.MatchSpec()

	out := color.Output
	ui.PrintBanner(out, Version)
	ui.PrintSearchInfo(out, scheme.Network(), spec, cfg.Search.Workers)

	search, err := cpu.NewCPUGenerator(opts...).Start(ctx, scheme, spec, cfg.Search.Workers)
	if err != nil {
		return err
	}

	res, err := watch(search, ui.NewProgress(os.Stderr, ui.EstimateDifficulty(spec)), m)
	if err != nil {
		if errors.Is(err, generator.ErrCancelled) {
			ui.PrintCancelled(out, cancelReason(ctx), search.Stats())
			return nil
		}
		return err
	}

	if res.Network == generator.Solana {
		if err := solana.Verify(res.Keypair); err != nil {
			return err
		}
	}

	if cfg.Output.File != "" {
		rec, err := wallet.NewRecord(scheme, res, passphrase)
		if err != nil {
			return err
		}
		if err := wallet.Save(cfg.Output.File, cfg.Output.Format, rec, res); err != nil {
			ui.PrintError(out, err)
			logger.Error().Err(err).Str("file", cfg.Output.File).Msg("failed to save keypair")
		} else {
			logger.Info().Str("file", cfg.Output.File).Str("format", cfg.Output.Format).Msg("keypair saved")
		}
	}

	ui.PrintSuccess(out, scheme, res, cfg.Output.File)
	return nil
}

// watch redraws progress until the search finishes.
func watch(search *cpu.Search, progress *ui.Progress, m *metrics.Metrics) (*generator.SearchResult, error) {
	ticker := time.NewTicker(updateRate)
	defer ticker.Stop()

	for {
		select {
		case <-search.Done():
			progress.Clear()
			return search.Wait()
		case <-ticker.C:
			stats := search.Stats()
			progress.Update(stats)
			if m != nil {
				m.ObserveStats(search.Network(), stats)
			}
		}
	}
}

func startMetricsServer(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) {
	srv := metrics.NewServer(cfg.Metrics.ListenAddr, cfg.Metrics.Path, m, logger)
	go func() {
		if err := srv.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func cancelReason(ctx context.Context) string {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	case ctx.Err() != nil:
		return "interrupted"
	default:
		return "stopped"
	}
}
