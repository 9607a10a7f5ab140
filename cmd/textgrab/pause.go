package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/textgrab/textgrab/internal/cli"
	"github.com/textgrab/textgrab/internal/storage"
)

func pauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause text detection",
		Long:  `Pause text detection. Capture events are ignored until you run resume.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setPaused(cmd, true, "Text detection paused")
		},
	}
}

func resumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume text detection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setPaused(cmd, false, "Text detection resumed")
		},
	}
}

func setPaused(cmd *cobra.Command, paused bool, message string) error {
	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SetBool(storage.KeyPaused, paused); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess(message))
	return nil
}
