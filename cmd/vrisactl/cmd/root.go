package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/auth"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/cmdutil"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/dashboard"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/institution"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/maintenance"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/measurement"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/report"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/sensor"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/station"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd/user"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/client"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/config"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/logging"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
)

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "vrisactl",
	Short: "VriSA CLI - air-quality monitoring client",
	Long: `vrisactl is the command-line client for VriSA, the air-quality monitoring
network. Use it to sign in, browse stations and sensors, follow measurements and
the air-quality index, manage registration workflows and download reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(config.LoadOptions{
			ConfigFile: configFile,
			EnvFile:    envFile,
			Flags:      cmd.Flags(),
		})
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(settings.Output)
		if err != nil {
			return err
		}

		logger := logging.New(settings.LogLevel, settings.LogFormat, os.Stderr)

		providerOpts := settings.ProviderOptions()
		providerOpts.Logger = logger

		cfg := &config.GlobalConfig{
			Settings:       settings,
			Logger:         logger,
			ClientProvider: client.NewProvider(providerOpts),
			Printer:        output.NewPrinter(os.Stdout, format),
		}
		if cfg.Printer.Structured() {
			pterm.DisableStyling()
		}

		cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", cmdutil.Describe(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/vrisa/config.yaml)")
	flags.StringVar(&envFile, "env-file", ".env", "Dotenv file providing API_HOST/API_PORT")
	flags.String("api-host", "", "API host (env VRISA_API_HOST or API_HOST)")
	flags.String("api-port", "", "API port; 443 selects https (env VRISA_API_PORT or API_PORT)")
	flags.String("api-scheme", "", "Force http or https")
	flags.Duration("timeout", 30*time.Second, "Per-attempt request timeout")
	flags.Uint("max-retries", 3, "Attempts for idempotent requests on transport failures")
	flags.String("session-backend", "keyring", "Session storage: keyring, file or memory")
	flags.String("export-dir", "", "Directory for downloaded reports (default user cache dir)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.StringP("output", "o", "table", "Output format: table, json or yaml")
	flags.Bool("no-open", false, "Do not open downloaded reports")

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(station.StationCmd)
	rootCmd.AddCommand(sensor.SensorCmd)
	rootCmd.AddCommand(maintenance.MaintenanceCmd)
	rootCmd.AddCommand(measurement.MeasurementCmd)
	rootCmd.AddCommand(report.ReportCmd)
	rootCmd.AddCommand(institution.InstitutionCmd)
	rootCmd.AddCommand(user.UserCmd)
	rootCmd.AddCommand(dashboard.DashboardCmd)
}
