package dom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat is returned by Load for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format identifies a snapshot encoding.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatMsgpack
	FormatHTML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	case FormatHTML:
		return "html"
	}
	return "unknown"
}

// FormatOf detects the encoding from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".msgpack", ".mp":
		return FormatMsgpack
	case ".html", ".htm":
		return FormatHTML
	}
	return FormatUnknown
}

// DecodeJSON reads a browser-exported snapshot.
func DecodeJSON(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode json snapshot: %w", err)
	}
	snap.Reindex()
	return &snap, nil
}

// EncodeJSON writes the snapshot in the export format.
func EncodeJSON(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// DecodeMsgpack reads the msgpack variant of the export format.
func DecodeMsgpack(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode msgpack snapshot: %w", err)
	}
	snap.Reindex()
	return &snap, nil
}

// EncodeMsgpack writes the msgpack variant of the export format.
func EncodeMsgpack(w io.Writer, snap *Snapshot) error {
	return msgpack.NewEncoder(w).Encode(snap)
}

// Load reads a snapshot file. vp is the viewport used for HTML input and as
// a fallback when an exported snapshot carries a zero-size viewport.
func Load(path string, vp Viewport) (*Snapshot, error) {
	format := FormatOf(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap *Snapshot
	switch format {
	case FormatJSON:
		snap, err = DecodeJSON(f)
	case FormatMsgpack:
		snap, err = DecodeMsgpack(f)
	case FormatHTML:
		snap, err = ParseHTML(f, vp)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if snap.Viewport.Width <= 0 || snap.Viewport.Height <= 0 {
		snap.Viewport.Width, snap.Viewport.Height = vp.Width, vp.Height
	}
	if snap.Source == "" {
		snap.Source = path
	}
	return snap, nil
}

// Source yields the current document state. Implementations must return a
// fresh snapshot on every call.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// FileSource re-reads a snapshot file on each call, so a collector that keeps
// rewriting the file is observed as a live document.
type FileSource struct {
	Path     string
	Viewport Viewport
}

func (s FileSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path, s.Viewport)
}

// IsSnapshotFile reports whether path has a loadable extension.
func IsSnapshotFile(path string) bool {
	return FormatOf(path) != FormatUnknown
}
