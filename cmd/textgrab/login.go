package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/textgrab/textgrab/internal/cli"
	"github.com/textgrab/textgrab/internal/shell"
	"github.com/textgrab/textgrab/internal/storage"
)

// launchAgentLabel names the per-user launch agent for the watch daemon.
const launchAgentLabel = "com.textgrab.watch"

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <enable|disable|status>",
		Short: "Manage launch-at-login registration",
		Long: `Register or unregister the watch daemon as a login item.

Examples:
  textgrab login enable
  textgrab login disable
  textgrab login status`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"enable", "disable", "status"},
		RunE:      runLogin,
	}
	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	agent, err := shell.NewLaunchAgent(launchAgentLabel)
	if err != nil {
		return err
	}

	switch args[0] {
	case "status":
		if agent.Enabled() {
			fmt.Println("launch at login: enabled")
		} else {
			fmt.Println("launch at login: disabled")
		}
		return nil
	case "enable":
		if err := agent.Enable(); err != nil {
			return fmt.Errorf("failed to enable launch at login: %w", err)
		}
	case "disable":
		if err := agent.Disable(); err != nil {
			return fmt.Errorf("failed to disable launch at login: %w", err)
		}
	default:
		return fmt.Errorf("unknown argument %q (want enable, disable or status)", args[0])
	}

	store, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SetBool(storage.KeyLaunchAtLogin, args[0] == "enable"); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess("launch at login " + args[0] + "d"))
	return nil
}
