package config

import (
	"context"
	"log/slog"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/client"
	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
)

type contextKey string

const configKey contextKey = "vrisactl-config"

// GlobalConfig holds shared configuration for all vrisactl commands.
// This is injected into the cobra command context by the root command's
// PersistentPreRunE hook and consumed by all subcommands.
type GlobalConfig struct {
	Settings       *Settings
	Logger         *slog.Logger
	ClientProvider *client.Provider
	Printer        *output.Printer
}

// InjectConfig adds config to the cobra command context.
// This should be called in the root command's PersistentPreRunE.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the cobra command context.
// Returns (nil, false) if config is not present.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics.
// This should only be used in command RunE functions where we know
// the config has been injected by the root command.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("vrisactl: config not found in context - this is a bug in vrisactl")
	}
	return cfg
}
