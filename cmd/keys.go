package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kastheco/webmon/keys"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// keysMarkdown is the key reference as a markdown document.
func keysMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# webmon keys\n\n")
	sb.WriteString("## Dashboard\n\n| key | action |\n| --- | --- |\n")
	for _, name := range keys.FooterKeys {
		writeKeyRow(&sb, name)
	}
	sb.WriteString("\n## Dialogs\n\n| key | action |\n| --- | --- |\n")
	for _, name := range []keys.KeyName{keys.KeyConfirm, keys.KeyDismiss, keys.KeyForceQuit} {
		writeKeyRow(&sb, name)
	}
	sb.WriteString("\nIn the delete dialog `y`, `Y`, `s` or `S` confirm and any other key cancels. " +
		"The details dialog closes on any key. While an error is shown, only the dismiss keys work.\n")
	return sb.String()
}

func writeKeyRow(sb *strings.Builder, name keys.KeyName) {
	help := keys.GlobalkeyBindings[name].Help()
	fmt.Fprintf(sb, "| `%s` | %s |\n", help.Key, help.Desc)
}

// renderKeys renders the key reference. style is a glamour standard style
// such as "dark" or "notty".
func renderKeys(style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(keysMarkdown())
}

// NewKeysCmd returns the `keys` command.
func NewKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "print the key reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, width := "notty", 80
			if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
				style = "dark"
				if w, _, err := term.GetSize(fd); err == nil && w > 0 {
					width = w
				}
			}
			out, err := renderKeys(style, width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
