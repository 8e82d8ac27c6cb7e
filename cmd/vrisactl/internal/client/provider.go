package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/auth"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// Options describes how the Provider builds its clients.
type Options struct {
	APIHost        string
	APIPort        string
	APIScheme      string
	Timeout        time.Duration
	MaxAttempts    uint
	SessionBackend string
	ExportDir      string
	// Token is an ephemeral access token that bypasses the session store (for CI).
	Token  string
	Logger *slog.Logger
}

// Provider lazily yields the session store, SDK client and session manager
// shared by every command of one invocation.
type Provider struct {
	opts Options

	storeOnce sync.Once
	store     sdk.SessionStore
	storeErr  error

	sdkOnce   sync.Once
	sdkClient *sdk.Client
	sdkErr    error

	sessionOnce sync.Once
	session     *sdk.SessionManager
}

// NewProvider constructs a Provider for the given options.
func NewProvider(opts Options) *Provider {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{opts: opts}
}

// BaseURL resolves the API base URL from the configured host, port and scheme.
func (p *Provider) BaseURL() (string, error) {
	base, err := sdk.ResolveBaseURL(p.opts.APIHost, p.opts.APIPort, p.opts.APIScheme)
	if errors.Is(err, sdk.ErrMissingAPIHost) {
		return "", fmt.Errorf("%w: set VRISA_API_HOST and VRISA_API_PORT (or API_HOST/API_PORT in .env), or pass --api-host/--api-port", err)
	}
	return base, err
}

// Store returns the session store selected by the configuration. An ephemeral
// token yields an in-memory store seeded with it so nothing touches disk.
func (p *Provider) Store(ctx context.Context) (sdk.SessionStore, error) {
	p.storeOnce.Do(func() {
		if p.opts.Token != "" {
			store := sdk.NewMemoryStore()
			p.storeErr = sdk.SaveTokens(ctx, store, p.opts.Token, "")
			p.store = store
			return
		}
		p.store, p.storeErr = auth.NewSessionStore(p.opts.SessionBackend)
	})
	if p.storeErr != nil {
		return nil, p.storeErr
	}
	return p.store, nil
}

// SDKClient returns the SDK client bound to the configured API and store.
func (p *Provider) SDKClient(ctx context.Context) (*sdk.Client, error) {
	p.sdkOnce.Do(func() {
		baseURL, err := p.BaseURL()
		if err != nil {
			p.sdkErr = err
			return
		}

		store, err := p.Store(ctx)
		if err != nil {
			p.sdkErr = fmt.Errorf("failed to open session store: %w", err)
			return
		}

		clientOpts := []sdk.ClientOption{
			sdk.WithSessionStore(store),
			sdk.WithLogger(p.opts.Logger),
		}
		if p.opts.Timeout > 0 {
			clientOpts = append(clientOpts, sdk.WithTimeout(p.opts.Timeout))
		}
		if p.opts.MaxAttempts > 0 {
			clientOpts = append(clientOpts, sdk.WithMaxAttempts(p.opts.MaxAttempts))
		}

		p.sdkClient = sdk.NewClient(baseURL, clientOpts...)
	})

	if p.sdkErr != nil {
		return nil, p.sdkErr
	}
	return p.sdkClient, nil
}

// SessionManager returns the session manager wrapping SDKClient.
func (p *Provider) SessionManager(ctx context.Context) (*sdk.SessionManager, error) {
	client, err := p.SDKClient(ctx)
	if err != nil {
		return nil, err
	}
	p.sessionOnce.Do(func() {
		p.session = sdk.NewSessionManager(client)
	})
	return p.session, nil
}

// ReportExporter returns an exporter writing under the configured export
// directory and handing results to sharer (nil skips the share step).
func (p *Provider) ReportExporter(ctx context.Context, sharer sdk.Sharer) (*sdk.ReportExporter, error) {
	client, err := p.SDKClient(ctx)
	if err != nil {
		return nil, err
	}

	var opts []sdk.ExporterOption
	if sharer != nil {
		opts = append(opts, sdk.WithSharer(sharer))
	}
	return sdk.NewReportExporter(client, p.opts.ExportDir, opts...), nil
}

// WithTimeout bounds ctx by timeout unless it already carries a deadline.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}
