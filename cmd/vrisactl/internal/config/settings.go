package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/auth"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/client"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
)

// EnvPrefix is the prefix of every environment variable read by vrisactl.
const EnvPrefix = "VRISA"

// Settings is the resolved configuration of one invocation.
type Settings struct {
	APIHost        string        `mapstructure:"api_host"`
	APIPort        string        `mapstructure:"api_port"`
	APIScheme      string        `mapstructure:"api_scheme"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     uint          `mapstructure:"max_retries"`
	SessionBackend string        `mapstructure:"session_backend"`
	ExportDir      string        `mapstructure:"export_dir"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
	Output         string        `mapstructure:"output"`
	NoOpen         bool          `mapstructure:"no_open"`
	Token          string        `mapstructure:"token"`
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is an explicit config file path; it must exist when set.
	ConfigFile string
	// EnvFile is the dotenv file to load; missing files are ignored.
	EnvFile string
	// Flags are bound over env and file values when changed on the command line.
	Flags *pflag.FlagSet
}

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"api-host":        "api_host",
	"api-port":        "api_port",
	"api-scheme":      "api_scheme",
	"timeout":         "request_timeout",
	"max-retries":     "max_retries",
	"session-backend": "session_backend",
	"export-dir":      "export_dir",
	"log-level":       "log_level",
	"log-format":      "log_format",
	"output":          "output",
	"no-open":         "no_open",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_scheme", "")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("max_retries", 3)
	v.SetDefault("session_backend", auth.BackendKeyring)
	v.SetDefault("export_dir", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("output", string(output.FormatTable))
	v.SetDefault("no_open", false)
	v.SetDefault("token", "")
}

// Load resolves settings from defaults, the config file, the dotenv file, the
// environment and finally changed flags, in increasing priority.
func Load(opts LoadOptions) (*Settings, error) {
	if err := loadDotEnv(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	// The mobile app read API_HOST/API_PORT from .env; keep honouring them.
	if err := v.BindEnv("api_host", EnvPrefix+"_API_HOST", "API_HOST"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("api_port", EnvPrefix+"_API_PORT", "API_PORT"); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "vrisa"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Validate checks the enumerated settings. Host and port are checked later,
// when a command first needs the API.
func (s *Settings) Validate() error {
	if !slices.Contains(auth.Backends, strings.ToLower(s.SessionBackend)) {
		return fmt.Errorf("invalid session backend %q (expected one of %s)", s.SessionBackend, strings.Join(auth.Backends, ", "))
	}
	if _, err := output.ParseFormat(s.Output); err != nil {
		return err
	}
	if s.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}

// ProviderOptions converts the settings into client provider options.
func (s *Settings) ProviderOptions() client.Options {
	return client.Options{
		APIHost:        s.APIHost,
		APIPort:        s.APIPort,
		APIScheme:      s.APIScheme,
		Timeout:        s.RequestTimeout,
		MaxAttempts:    s.MaxRetries,
		SessionBackend: s.SessionBackend,
		ExportDir:      s.ExportDir,
		Token:          s.Token,
	}
}
