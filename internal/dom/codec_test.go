package dom

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSON = `{
  "source": "https://example.test/form",
  "viewport": {"width": 1024, "height": 768, "scroll_x": 0, "scroll_y": 120},
  "elements": [
    {"tag": "IMG", "attrs": {"src": "a.png"}, "visible": true, "box": {"x": 1, "y": 2, "w": 3, "h": 4}},
    null,
    {"tag": "input", "attrs": {"id": "q", "tabindex": "1"}, "visible": true, "visibility": "hidden", "box": {"x": 5, "y": 6, "w": 7, "h": 8}}
  ]
}`

func TestDecodeJSON(t *testing.T) {
	snap, err := DecodeJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if snap.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (null entries dropped)", snap.Len())
	}
	if snap.Elements[0].Tag != "img" {
		t.Errorf("tag not lower-cased: %q", snap.Elements[0].Tag)
	}
	if snap.Elements[1].Index != 1 {
		t.Errorf("index = %d, want 1", snap.Elements[1].Index)
	}
	if snap.Viewport.ScrollY != 120 {
		t.Errorf("scroll_y = %v", snap.Viewport.ScrollY)
	}
	if snap.Elements[1].Visibility != "hidden" {
		t.Errorf("visibility lost")
	}
}

func TestMsgpackMatchesJSON(t *testing.T) {
	snap, err := DecodeJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeMsgpack(&buf, snap); err != nil {
		t.Fatalf("EncodeMsgpack: %v", err)
	}
	back, err := DecodeMsgpack(&buf)
	if err != nil {
		t.Fatalf("DecodeMsgpack: %v", err)
	}
	if back.Len() != snap.Len() || back.Viewport != snap.Viewport {
		t.Fatalf("msgpack snapshot differs: %+v vs %+v", back.Viewport, snap.Viewport)
	}
	for i := range snap.Elements {
		a, b := snap.Elements[i], back.Elements[i]
		if a.Tag != b.Tag || a.Box != b.Box || a.ID() != b.ID() || b.Index != i {
			t.Errorf("element %d differs: %s vs %s", i, a, b)
		}
	}
}

func TestLoadDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	vp := Viewport{Width: 640, Height: 480}

	jsonPath := filepath.Join(dir, "page.json")
	if err := os.WriteFile(jsonPath, []byte(`{"elements":[{"tag":"a","visible":true}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	htmlPath := filepath.Join(dir, "page.HTML")
	if err := os.WriteFile(htmlPath, []byte(`<img alt="">`), 0o600); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(jsonPath, vp)
	if err != nil {
		t.Fatalf("Load json: %v", err)
	}
	if snap.Viewport.Width != 640 || snap.Source != jsonPath {
		t.Errorf("fallback viewport/source not applied: %+v %q", snap.Viewport, snap.Source)
	}

	snap, err = Load(htmlPath, vp)
	if err != nil {
		t.Fatalf("Load html: %v", err)
	}
	if len(snap.All(Tag("img"))) != 1 {
		t.Errorf("html snapshot missing img")
	}

	_, err = Load(filepath.Join(dir, "page.txt"), vp)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFileSourceRereads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.html")
	src := FileSource{Path: path, Viewport: Viewport{Width: 10, Height: 10}}

	if err := os.WriteFile(path, []byte(`<img>`), 0o600); err != nil {
		t.Fatal(err)
	}
	first, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`<img><img>`), 0o600); err != nil {
		t.Fatal(err)
	}
	second, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(first.All(Tag("img"))) != 1 || len(second.All(Tag("img"))) != 2 {
		t.Fatalf("source did not observe the mutation")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Snapshot(ctx); err == nil {
		t.Fatalf("expected error on cancelled context")
	}
}
