package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"a11ylens/internal/dom"
	"a11ylens/internal/inspect"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.html"), `<img><img alt="">`)
	writeFile(t, filepath.Join(dir, "a.json"), `{"elements":[{"tag":"a","visible":true,"attrs":{"tabindex":"-1"}}]}`)
	writeFile(t, filepath.Join(dir, "sub", "c.htm"), `<a></a>`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `ignored`)
	writeFile(t, filepath.Join(dir, ".cache", "x.html"), `<img>`)

	out := filepath.Join(t.TempDir(), "frames")
	events := make(chan Event, 64)
	results, err := ScanDir(context.Background(), dir, Options{
		Jobs:     2,
		Viewport: dom.Viewport{Width: 40, Height: 30},
		Inspect:  inspect.DefaultOptions(),
		OutDir:   out,
		Events:   events,
	})
	if err != nil {
		t.Fatal(err)
	}
	close(events)

	wantRel := []string{"a.json", "b.html", "broken.json", filepath.Join("sub", "c.htm")}
	if len(results) != len(wantRel) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Rel != wantRel[i] {
			t.Errorf("result %d = %s, want %s", i, r.Rel, wantRel[i])
		}
	}

	if results[0].Stats.Findings != 1 || results[1].Stats.Findings != 2 {
		t.Errorf("findings: a=%d b=%d", results[0].Stats.Findings, results[1].Stats.Findings)
	}
	if results[2].Err() == nil || results[2].Result() != nil || results[2].PNG != "" {
		t.Errorf("broken snapshot should fail alone: %+v", results[2])
	}
	if results[3].Err() != nil || results[3].Result().Path.Len() != 1 {
		t.Errorf("nested snapshot: %+v", results[3].Stats)
	}
	for _, r := range []FileResult{results[0], results[1], results[3]} {
		if _, err := os.Stat(r.PNG); err != nil {
			t.Errorf("overlay for %s not written: %v", r.Rel, err)
		}
	}

	final := map[string]Status{}
	for ev := range events {
		final[ev.File] = ev.Status
	}
	if final[filepath.Join(dir, "broken.json")] != StatusError || final[filepath.Join(dir, "b.html")] != StatusDone {
		t.Errorf("final statuses = %v", final)
	}
}

func TestOverlaysOfSameStemDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.html"), `<img>`)
	writeFile(t, filepath.Join(dir, "page.json"), `{"elements":[{"tag":"img","visible":true}]}`)

	out := filepath.Join(t.TempDir(), "frames")
	results, err := ScanDir(context.Background(), dir, Options{
		Viewport: dom.Viewport{Width: 20, Height: 20},
		Inspect:  inspect.DefaultOptions(),
		OutDir:   out,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].PNG == results[1].PNG {
		t.Fatalf("overlay paths collide: %+v", results)
	}
	for _, r := range results {
		if r.PNG != filepath.Join(out, r.Rel+".png") {
			t.Errorf("%s: overlay = %s", r.Rel, r.PNG)
		}
		if _, err := os.Stat(r.PNG); err != nil {
			t.Errorf("overlay for %s not written: %v", r.Rel, err)
		}
	}
}

func TestScanDirEmptyAndCancelled(t *testing.T) {
	dir := t.TempDir()
	results, err := ScanDir(context.Background(), dir, Options{})
	if err != nil || results != nil {
		t.Fatalf("empty dir: %v %v", results, err)
	}

	writeFile(t, filepath.Join(dir, "a.html"), `<img>`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ScanDir(ctx, dir, Options{}); err == nil {
		t.Fatalf("cancelled scan succeeded")
	}
	if _, err := ScanDir(context.Background(), filepath.Join(dir, "missing"), Options{}); err == nil {
		t.Fatalf("missing dir accepted")
	}
}
