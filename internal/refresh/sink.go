package refresh

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"a11ylens/internal/overlay"
)

// Frame is a surface whose content can be exported.
type Frame interface {
	overlay.Surface
	EncodePNG(w io.Writer) error
}

var _ Frame = (*overlay.Canvas)(nil)

// Sink receives every rendered frame.
type Sink interface {
	Write(ctx context.Context, f Frame) error
}

// PNGSink replaces Path with each frame. Readers never observe a partially
// written image.
type PNGSink struct {
	Path string
}

func (s PNGSink) Write(ctx context.Context, f Frame) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".frame-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temp frame: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()           //nolint:errcheck
			_ = os.Remove(tmp.Name()) //nolint:errcheck
		}
	}()

	if err = f.EncodePNG(tmp); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	// same directory as s.Path, so readers see the old frame or the new one
	if err = os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to publish frame: %w", err)
	}
	return nil
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, f Frame) error

func (fn SinkFunc) Write(ctx context.Context, f Frame) error { return fn(ctx, f) }
