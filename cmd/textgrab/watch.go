package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/textgrab/textgrab/internal/capture"
	"github.com/textgrab/textgrab/internal/common"
	"github.com/textgrab/textgrab/internal/config"
	"github.com/textgrab/textgrab/internal/engine"
	"github.com/textgrab/textgrab/internal/service"
	"github.com/textgrab/textgrab/internal/shell"
	"github.com/textgrab/textgrab/internal/vision"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for screenshots and clipboard images",
		Long: `Watch the screenshot directory and the clipboard for new images and run
text recognition on each one, committing the detected text per your
preferences.

Examples:
  textgrab watch                    # Watch screenshots and the clipboard
  textgrab watch --no-pasteboard    # Screenshot files only
  textgrab watch --no-screenshots   # Clipboard images only`,
		RunE: runWatch,
	}

	cmd.Flags().Bool("no-screenshots", false, "Don't watch the screenshot directory")
	cmd.Flags().Bool("no-pasteboard", false, "Don't watch the clipboard for images")

	_ = viper.BindPFlag("watch.no_screenshots", cmd.Flags().Lookup("no-screenshots"))
	_ = viper.BindPFlag("watch.no_pasteboard", cmd.Flags().Lookup("no-pasteboard"))

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer func() { _ = store.Close() }()

	pasteboard, err := shell.NewClipboard()
	if err != nil {
		return common.NewUserError("clipboard access unavailable", err)
	}

	prefs := store.Snapshot()
	if prefs.Paused {
		slog.Info("Watch starting paused; run 'textgrab resume' to enable detection")
	}

	var sources []service.CaptureSource
	if !viper.GetBool("watch.no_screenshots") {
		dir := config.ExpandPath(prefs.ScreenshotDir)
		sources = append(sources, capture.NewScreenshotWatcher(capture.ScreenshotConfig{Dir: dir}))
	}
	if !viper.GetBool("watch.no_pasteboard") {
		sources = append(sources, capture.NewPasteboardWatcher())
	}
	if len(sources) == 0 {
		return common.NewUserError("nothing to watch", common.ErrInvalidConfig)
	}

	events, err := capture.Merge(ctx, sources...)
	if err != nil {
		// A partial watch is still useful; say so and carry on.
		slog.Warn("Some capture sources failed to start", "error", err)
	}

	e := engine.New(store, vision.NewTesseractRecognizer(), pasteboard, shell.NewNotifier(), newConfirmer())
	if err := e.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
