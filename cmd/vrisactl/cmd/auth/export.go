package auth

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/config"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

var (
	shellFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session token as shell variables",
	Long: `Outputs shell commands setting VRISA_TOKEN, VRISA_API_HOST and VRISA_API_PORT, so scripts and
other vrisactl invocations (for example in CI) can reuse the current session
without touching the session store.

Supported shells:
  - posix (bash, zsh, sh) - default
  - fish
  - powershell

Usage:
  # POSIX shells (bash/zsh/sh)
  eval $(vrisactl auth export)

  # Fish shell
  eval (vrisactl auth export --shell fish)

  # PowerShell
  vrisactl auth export --shell powershell | Invoke-Expression`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&shellFormat, "shell", "", "Shell format: posix, fish, powershell (auto-detected if not specified)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.MustFromContext(cmd.Context())

	store, err := cfg.ClientProvider.Store(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	session, err := sdk.LoadSession(cmd.Context(), store)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("%w\n\nPlease run 'vrisactl auth login' first", sdk.ErrNotAuthenticated)
	}
	if session.IsExpired() {
		return fmt.Errorf("access token has expired\n\nPlease run 'vrisactl auth refresh' or 'vrisactl auth login'")
	}

	vars := [][2]string{{"VRISA_TOKEN", session.AccessToken}}
	if cfg.Settings.APIHost != "" {
		vars = append(vars, [2]string{"VRISA_API_HOST", cfg.Settings.APIHost})
	}
	if cfg.Settings.APIPort != "" {
		vars = append(vars, [2]string{"VRISA_API_PORT", cfg.Settings.APIPort})
	}

	shell := shellFormat
	if shell == "" {
		shell = detectShell()
	}

	return writeExports(os.Stdout, strings.ToLower(shell), vars, isTerminal(os.Stdout))
}

// detectShell attempts to detect the current shell from the SHELL environment variable
func detectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return "posix"
	}

	switch filepath.Base(shell) {
	case "fish":
		return "fish"
	case "pwsh", "powershell":
		return "powershell"
	default:
		return "posix"
	}
}

func writeExports(w io.Writer, shell string, vars [][2]string, interactive bool) error {
	var line func(name, value string) string
	var hint string
	switch shell {
	case "posix", "bash", "zsh", "sh":
		line = func(name, value string) string { return fmt.Sprintf("export %s=%q", name, value) }
		hint = "eval $(vrisactl auth export)"
	case "fish":
		line = func(name, value string) string { return fmt.Sprintf("set -x %s %q", name, value) }
		hint = "eval (vrisactl auth export --shell fish)"
	case "powershell", "pwsh", "ps1":
		line = func(name, value string) string { return fmt.Sprintf("$env:%s=%q", name, value) }
		hint = "vrisactl auth export --shell powershell | Invoke-Expression"
	default:
		return fmt.Errorf("unsupported shell format: %s\n\nSupported formats: posix, fish, powershell", shell)
	}

	// Only print instructions when stdout is a TTY (not being piped/eval'd)
	if interactive {
		fmt.Fprintln(os.Stderr, "# Run this command to configure your environment:")
		fmt.Fprintf(os.Stderr, "#   %s\n\n", hint)
	}

	for _, kv := range vars {
		fmt.Fprintln(w, line(kv[0], kv[1]))
	}
	return nil
}
