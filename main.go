package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kastheco/webmon/app"
	cmd2 "github.com/kastheco/webmon/cmd"
	"github.com/kastheco/webmon/config"
	sentrypkg "github.com/kastheco/webmon/internal/sentry"
	"github.com/kastheco/webmon/internal/webmnt"
	"github.com/kastheco/webmon/log"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotTerminal = errors.New("webmon needs an interactive terminal")

var (
	version    = "0.1.0"
	configFlag string
	rootCmd    = &cobra.Command{
		Use:           "webmon",
		Short:         "webmon - watch and manage the sessions of a webmnt server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}

			path, err := configPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path, config.Prompt)
			if err != nil {
				return err
			}

			if err := sentrypkg.Init(version, cfg.SentryDSN, cfg.TelemetryEnabled); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize(cfg.TelemetryEnabled)
			defer log.Close()

			server := cfg.Host + ":" + cfg.Port
			sentrypkg.SetContext(server, cfg.Environment)

			audit, err := cmd2.OpenAuditLog(cfg, path)
			if err != nil {
				// the dashboard works without an audit trail
				log.WarningLog.Printf("audit log disabled: %v", err)
			} else {
				defer audit.Close()
			}

			client := webmnt.NewClient(webmnt.Options{
				BaseURL: webmnt.BaseURL(cfg.Host, cfg.Port),
				Timeout: cfg.RequestTimeout(),
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.Run(ctx, cfg, app.Deps{Remote: client, Audit: audit}); err != nil {
				log.ErrorLog.Printf("%s: %v", server, err)
				return err
			}
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config and log paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", path)
			fmt.Fprintf(out, "Log: %s\n", log.FileName())

			cfg, err := config.LoadFrom(path)
			if err != nil {
				fmt.Fprintf(out, "Config not loaded: %v\n", err)
				return nil
			}
			if auditPath, ok := cfg.AuditPath(path); ok {
				fmt.Fprintf(out, "Audit: %s\n", auditPath)
			} else {
				fmt.Fprintln(out, "Audit: off")
			}
			configJson, _ := json.MarshalIndent(cfg.Redacted(), "", "  ")
			fmt.Fprintf(out, "%s\n", configJson)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of webmon",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "webmon version %s\n", version)
		},
	}
)

// configPath is --config when given, else the default location.
func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.DefaultPath()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"Path to the config file (default ~/.config/webmon/config.toml)")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cmd2.NewAuditCmd(configPath))
	rootCmd.AddCommand(cmd2.NewKeysCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "webmon:", err)
		os.Exit(1)
	}
}
