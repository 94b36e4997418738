// Command pawdeck is a terminal swipe-deck for rating cat pictures.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/abelbrown/pawdeck/internal/config"
	"github.com/abelbrown/pawdeck/internal/gesture"
	"github.com/abelbrown/pawdeck/internal/logging"
	"github.com/abelbrown/pawdeck/internal/provider"
	"github.com/abelbrown/pawdeck/internal/session"
	"github.com/abelbrown/pawdeck/internal/store"
	"github.com/abelbrown/pawdeck/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		batchSize int
		threshold float64
	)

	rootCmd := &cobra.Command{
		Use:           "pawdeck",
		Short:         "Swipe through a deck of cats in your terminal",
		Long:          "pawdeck fetches a batch of cat pictures and deals them one at a time. Drag the card with the mouse (or use the arrow keys) to like or dismiss each cat, then see which ones you kept.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(batchSize, threshold)
		},
	}

	rootCmd.Flags().IntVar(&batchSize, "batch-size", 0, "cats per session (overrides config)")
	rootCmd.Flags().Float64Var(&threshold, "threshold", 0, "swipe decision distance in cells (overrides config)")

	return rootCmd
}

func run(batchSize int, threshold float64) error {
	if err := logging.Init(); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if batchSize > 0 {
		cfg.BatchSize = batchSize
	}
	if threshold > 0 {
		cfg.SwipeThreshold = threshold
	}

	cache, err := store.Open()
	if err != nil {
		return fmt.Errorf("open image cache: %w", err)
	}
	defer cache.Close()

	client := provider.NewClient(cfg.ProviderURL, cfg.FetchTimeout, cfg.RatePerSecond)
	fetcher := provider.NewBatchFetcher(client, cache, cfg.FallbackURL, cfg.BatchSize, cfg.FetchConcurrency)

	ctrl := session.NewController(cfg.BatchSize, cache)
	tracker := gesture.NewTracker(cfg.SwipeThreshold)

	ctx := context.Background()

	app := ui.NewApp(ctrl, tracker, ui.AppConfig{
		FetchBatch: func(gen uint64) tea.Cmd {
			return func() tea.Msg {
				return ui.BatchReady{Gen: gen, Items: fetcher.Fetch(ctx, gen)}
			}
		},
		ImageSize: func(gen uint64, slot int) int64 {
			n, err := cache.Size(gen, slot)
			if err != nil {
				return 0
			}
			return n
		},
	})

	program := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := program.Run()
	if err != nil {
		logging.Error("application error", "error", err)
		return err
	}

	// Teardown: release whatever batch is still cached.
	if err := cache.ReleaseGeneration(ctrl.Generation()); err != nil {
		logging.Warn("failed to release final batch", "error", err)
	}

	if a, ok := final.(ui.App); ok && a.Err() != nil {
		return a.Err()
	}
	return nil
}
