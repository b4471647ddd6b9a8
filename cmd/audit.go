package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kastheco/webmon/config"
	"github.com/kastheco/webmon/config/auditlog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// OpenAuditLog opens the audit trail configured for cfg. It returns a no-op
// logger when auditing is off.
func OpenAuditLog(cfg *config.Config, configPath string) (auditlog.Logger, error) {
	path, ok := cfg.AuditPath(configPath)
	if !ok {
		return auditlog.NopLogger(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	l, err := auditlog.NewSQLiteLogger(path)
	if err != nil {
		return nil, err
	}
	l.SetOrigin(cfg.Host+":"+cfg.Port, cfg.Environment)
	return l, nil
}

// parseKinds validates a comma separated list of event kinds.
func parseKinds(s string) ([]auditlog.EventKind, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	known := make(map[auditlog.EventKind]bool)
	for _, k := range auditlog.Kinds() {
		known[k] = true
	}
	var kinds []auditlog.EventKind
	for _, part := range strings.Split(s, ",") {
		k := auditlog.EventKind(strings.TrimSpace(part))
		if !known[k] {
			return nil, fmt.Errorf("unknown event kind %q", k)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// executeAuditList renders the events matching filter, newest first.
// Exported for testing without cobra plumbing.
func executeAuditList(l auditlog.Logger, filter auditlog.QueryFilter) (string, error) {
	events, err := l.Query(filter)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "no audit events\n", nil
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.Timestamp.Local().Format(time.DateTime),
			string(e.Kind),
			e.Server,
			strings.Join(e.SessionIDs, ","),
			e.Message,
		})
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("TIME", "KIND", "SERVER", "SESSIONS", "MESSAGE").
		Rows(rows...)
	return t.String() + "\n", nil
}

// NewAuditCmd returns the `audit` command. configPath resolves the config
// file when the command runs.
func NewAuditCmd(configPath func() (string, error)) *cobra.Command {
	var (
		limit    int
		kinds    string
		actionID string
	)
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "show the audit trail of deletions, messages and errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			filterKinds, err := parseKinds(kinds)
			if err != nil {
				return err
			}
			path, err := configPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}
			l, err := OpenAuditLog(cfg, path)
			if err != nil {
				return err
			}
			defer l.Close()

			out, err := executeAuditList(l, auditlog.QueryFilter{
				Kinds:    filterKinds,
				ActionID: actionID,
				Limit:    limit,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	auditCmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of events to show")
	auditCmd.Flags().StringVar(&kinds, "kind", "",
		"comma separated event kinds ("+kindList()+")")
	auditCmd.Flags().StringVar(&actionID, "action", "", "only show events of one action")
	return auditCmd
}

func kindList() string {
	names := make([]string, 0, len(auditlog.Kinds()))
	for _, k := range auditlog.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
