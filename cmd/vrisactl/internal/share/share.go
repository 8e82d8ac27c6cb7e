package share

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skratchdot/open-golang/open"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// Opener hands a saved report to the desktop's default viewer, the terminal
// equivalent of the mobile share sheet.
type Opener struct {
	open   func(path string) error
	logger *slog.Logger
}

var _ sdk.Sharer = (*Opener)(nil)

// NewOpener returns an Opener using the platform's open command.
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Opener{open: open.Start, logger: logger}
}

// Share opens path with the default application. A missing opener (headless
// host, no xdg-open) yields sdk.ErrShareUnavailable.
func (o *Opener) Share(ctx context.Context, path, mimeType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.logger.DebugContext(ctx, "opening exported report", "path", path, "mime", mimeType)
	if err := o.open(path); err != nil {
		return fmt.Errorf("%w: %v", sdk.ErrShareUnavailable, err)
	}
	return nil
}
