package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/textgrab/textgrab/internal/cli"
	"github.com/textgrab/textgrab/internal/engine"
	"github.com/textgrab/textgrab/internal/model"
	"github.com/textgrab/textgrab/internal/service"
	"github.com/textgrab/textgrab/internal/shell"
	"github.com/textgrab/textgrab/internal/vision"
)

func recognizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recognize <image>...",
		Short: "Recognize text in image files",
		Long: `Run text recognition over one or more image files.

By default the detected text is printed to stdout. With --copy the text is
committed to the clipboard through the same pipeline the watcher uses,
honoring your append, linebreak, confirmation and notification preferences.

Examples:
  textgrab recognize shot.png
  textgrab recognize --copy shot.png
  textgrab recognize *.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRecognize,
	}

	cmd.Flags().Bool("copy", false, "Commit detected text to the clipboard instead of printing")
	_ = viper.BindPFlag("recognize.copy", cmd.Flags().Lookup("copy"))

	return cmd
}

func runRecognize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	copyToClipboard := viper.GetBool("recognize.copy")

	store, err := initStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer func() { _ = store.Close() }()

	recognizer := vision.NewTesseractRecognizer()
	prefs := store.Snapshot()
	// An explicit recognize run is a direct user action; pause only governs
	// the background watchers.
	prefs.Paused = false

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.Default(int64(len(args)), "recognizing")
	}

	if copyToClipboard {
		pasteboard, clipErr := shell.NewClipboard()
		if clipErr != nil {
			return clipErr
		}
		e := engine.New(unpausedStore{store}, recognizer, pasteboard, shell.NewNotifier(), newConfirmer())
		for _, path := range args {
			e.HandleEvent(ctx, model.CaptureEvent{
				At:     time.Now(),
				Source: model.SourceManual,
				Path:   path,
			})
			if bar != nil {
				_ = bar.Add(1)
			}
		}
		stats := e.Stats()
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d of %d image(s) committed", stats.Committed, stats.Processed)))
		if tx, ok := e.LastTransaction(); ok && tx.Committed {
			fmt.Println(cli.SubtleStyle.Render(engine.Preview(tx.Text, 80)))
		}
		return nil
	}

	for _, path := range args {
		result, recErr := recognizer.RecognizeFile(ctx, path, engine.RecognizeOptionsFor(prefs))
		if recErr != nil {
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: no text detected", path)))
			if bar != nil {
				_ = bar.Add(1)
			}
			continue
		}

		// Print exactly what the pipeline would commit, minus clipboard modes.
		printPrefs := prefs
		printPrefs.AppendToClipboard = false
		printPrefs.ClearClipboardFirst = false
		printPrefs.ConfirmBeforeCommit = false
		action := engine.Decide(result, "", printPrefs)
		if action.Kind == model.ActionSuppressed {
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: nothing above the confidence threshold", path)))
		} else {
			fmt.Println(action.Text)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return nil
}

// unpausedStore overrides the pause flag for explicit one-shot runs.
type unpausedStore struct {
	service.PreferenceStore
}

func (s unpausedStore) Snapshot() model.Preferences {
	prefs := s.PreferenceStore.Snapshot()
	prefs.Paused = false
	return prefs
}
